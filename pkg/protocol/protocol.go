// Package protocol decodes messages sent by players and defines the envelopes sent back
package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cheat-server/pkg/deck"
)

// Kind is the action a message asks for
type Kind int

// message kinds
const (
	KindJoin Kind = iota + 1
	KindReady
	KindDiscard
	KindCallout
	KindLeave
)

func (k Kind) String() string {
	switch k {
	case KindJoin:
		return "join"
	case KindReady:
		return "ready"
	case KindDiscard:
		return "discard"
	case KindCallout:
		return "callout"
	case KindLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// ValidationError is a message that does not have the expected shape
type ValidationError struct {
	Reason string
}

func (v *ValidationError) Error() string {
	return "invalid message: " + v.Reason
}

func invalid(format string, a ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, a...)}
}

// PayloadIn is the format we expect from the JS client
// Exactly one of the action keys must be present
type PayloadIn struct {
	Join      *string  `json:"join"`
	Ready     *bool    `json:"ready"`
	Discard   []string `json:"discard"`
	ClaimRank *int     `json:"claimRank"`
	Callout   *bool    `json:"callout"`
	Leave     *bool    `json:"leave"`
	// Context will be passed back on any direct reply
	Context string `json:"context"`
}

// Message is a validated PayloadIn
type Message struct {
	Kind      Kind
	Name      string
	Cards     []deck.Card
	ClaimRank int
	Context   string
}

// Decode parses and validates a raw client message
// Rule checks (turn order, ownership, rank legality) are left to the game.
func Decode(data []byte) (*Message, error) {
	var payload PayloadIn
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&payload); err != nil {
		return nil, invalid("malformed JSON: %v", err)
	}

	return payload.Validate()
}

// Validate converts the payload into a Message
func (p *PayloadIn) Validate() (*Message, error) {
	var kinds []Kind
	if p.Join != nil {
		kinds = append(kinds, KindJoin)
	}
	if p.Ready != nil {
		kinds = append(kinds, KindReady)
	}
	if p.Discard != nil {
		kinds = append(kinds, KindDiscard)
	}
	if p.Callout != nil {
		kinds = append(kinds, KindCallout)
	}
	if p.Leave != nil {
		kinds = append(kinds, KindLeave)
	}

	switch len(kinds) {
	case 0:
		return nil, invalid("expected one of join, ready, discard, callout or leave")
	case 1:
	default:
		return nil, invalid("expected a single action, got %d", len(kinds))
	}

	msg := &Message{
		Kind:    kinds[0],
		Context: p.Context,
	}

	switch msg.Kind {
	case KindJoin:
		msg.Name = *p.Join
	case KindReady:
		if !*p.Ready {
			return nil, invalid("ready must be true")
		}
	case KindCallout:
		if !*p.Callout {
			return nil, invalid("callout must be true")
		}
	case KindLeave:
		if !*p.Leave {
			return nil, invalid("leave must be true")
		}
	case KindDiscard:
		if p.ClaimRank == nil {
			return nil, invalid("discard requires claimRank")
		}

		cards, err := deck.CardsFromKeys(p.Discard)
		if err != nil {
			return nil, invalid("%v", err)
		}

		msg.Cards = cards
		msg.ClaimRank = *p.ClaimRank
	}

	if msg.Kind != KindDiscard && p.ClaimRank != nil {
		return nil, invalid("claimRank is only allowed with discard")
	}

	return msg, nil
}
