package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"cheat-server/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	a := assert.New(t)

	msg, err := Decode([]byte(`{"join": "alice"}`))
	a.NoError(err)
	a.Equal(&Message{Kind: KindJoin, Name: "alice"}, msg)

	msg, err = Decode([]byte(`{"ready": true, "context": "abc"}`))
	a.NoError(err)
	a.Equal(&Message{Kind: KindReady, Context: "abc"}, msg)

	msg, err = Decode([]byte(`{"discard": ["D4", "h7"], "claimRank": 4}`))
	a.NoError(err)
	a.Equal(KindDiscard, msg.Kind)
	a.Equal(4, msg.ClaimRank)
	a.Equal([]deck.Card{{Rank: 4, Suit: deck.Diamonds}, {Rank: 7, Suit: deck.Hearts}}, msg.Cards)

	// extra keys sent by the web client are ignored
	msg, err = Decode([]byte(`{"callout": true, "data": "liar"}`))
	a.NoError(err)
	a.Equal(KindCallout, msg.Kind)

	msg, err = Decode([]byte(`{"leave": true}`))
	a.NoError(err)
	a.Equal(KindLeave, msg.Kind)
}

func TestDecode_emptyDiscardIsLeftToTheGame(t *testing.T) {
	msg, err := Decode([]byte(`{"discard": [], "claimRank": 4}`))
	assert.NoError(t, err)
	assert.Equal(t, KindDiscard, msg.Kind)
	assert.Empty(t, msg.Cards)

	// so is an out of range claim
	msg, err = Decode([]byte(`{"discard": ["D4"], "claimRank": 20}`))
	assert.NoError(t, err)
	assert.Equal(t, 20, msg.ClaimRank)
}

func TestDecode_validationErrors(t *testing.T) {
	for name, input := range map[string]string{
		"not json":          `join alice`,
		"wrong type":        `{"join": 5}`,
		"no action":         `{"context": "x"}`,
		"two actions":       `{"ready": true, "callout": true}`,
		"ready false":       `{"ready": false}`,
		"callout false":     `{"callout": false}`,
		"leave false":       `{"leave": false}`,
		"missing claimRank": `{"discard": ["D4"]}`,
		"bad card":          `{"discard": ["D14"], "claimRank": 4}`,
		"stray claimRank":   `{"ready": true, "claimRank": 4}`,
		"string claimRank":  `{"discard": ["D4"], "claimRank": "4"}`,
	} {
		msg, err := Decode([]byte(input))
		assert.Nil(t, msg, name)

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "%s: expected a ValidationError, got %v", name, err)
	}
}

func TestErrorMessage_json(t *testing.T) {
	b, err := json.Marshal(ErrorMessage{Error: ErrorBody{Kind: ErrorKindRuleViolation, Code: "NotYourTurn", Message: "it is not your turn"}})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"error": {"kind": "ruleViolation", "code": "NotYourTurn", "message": "it is not your turn"}}`, string(b))
}
