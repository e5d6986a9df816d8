package cheat

import (
	"encoding/json"
	"testing"

	"cheat-server/pkg/snapshot"

	"github.com/stretchr/testify/assert"
)

func TestGame_GetPlayerState(t *testing.T) {
	g := setupFourPlayers(t)
	assert.NoError(t, g.Play("id0", cards("D4"), 4))

	snapshot.ValidateSnapshot(t, g.GetPlayerState("id1"), 0)
}

func TestGame_GetPlayerState_hidesOtherHands(t *testing.T) {
	a := assert.New(t)
	g := setupFourPlayers(t)
	assert.NoError(t, g.Play("id0", cards("D4"), 4))

	state := g.GetPlayerState("id0")
	a.False(state.OwnTurn)
	a.Equal("waiting for p1", state.Message)
	a.Equal("p1", state.WaitingFor)
	a.Len(state.Hand, 12)
	a.Len(state.PlayerInfo, 3)

	b, err := json.Marshal(state)
	a.NoError(err)
	for _, key := range []string{"H7", "C7", "S7"} {
		a.NotContains(string(b), key)
	}

	var wire map[string]interface{}
	a.NoError(json.Unmarshal(b, &wire))
	for _, key := range []string{"hand", "stack-size", "own-turn", "current_rank", "player_info"} {
		a.Contains(wire, key)
	}

	info := wire["player_info"].([]interface{})[0].(map[string]interface{})
	a.Equal("p1", info["name"])
	a.Equal(float64(13), info["cards"])
	a.Equal(float64(0), info["last-discard"])
}

func TestGame_GetPlayerState_lobby(t *testing.T) {
	a := assert.New(t)
	g := newTestGame()

	state := g.GetPlayerState("")
	a.Equal("lobby", state.Phase)
	a.Equal("enter a name to join", state.Message)
	a.Equal([]string{}, state.Hand)
	a.Equal("ABCD", state.Code)

	alice, _ := g.Join("alice")
	state = g.GetPlayerState(alice)
	a.Equal("alice", state.Name)
	a.Equal("waiting for more players", state.Message)

	bob, _ := g.Join("bob")
	_, _ = g.MarkReady(bob)
	state = g.GetPlayerState(alice)
	a.Equal("waiting for 1 player to ready up", state.Message)
	a.Equal([]*PlayerInfo{{Name: "bob", Cards: 0, Message: "ready"}}, state.PlayerInfo)

	_, _ = g.Join("carol")
	state = g.GetPlayerState(bob)
	a.Equal("waiting for 2 players to ready up", state.Message)
}

func TestGame_GetPlayerState_statusLines(t *testing.T) {
	a := assert.New(t)
	g := setupFourPlayers(t)

	a.NoError(g.Disconnect("id2"))
	state := g.GetPlayerState("id3")
	a.Equal("playing", state.PlayerInfo[0].Message)
	a.Equal("waiting", state.PlayerInfo[1].Message)
	a.Equal("disconnected", state.PlayerInfo[2].Message)

	a.NoError(g.Play("id0", cards("D4"), 4))
	a.NoError(g.Play("id1", cards("H7,H8"), 4))
	state = g.GetPlayerState("id3")
	a.Equal(1, state.PlayerInfo[0].LastDiscard)
	a.Equal(2, state.PlayerInfo[1].LastDiscard)
	a.Equal(0, state.PlayerInfo[2].LastDiscard)

	_, err := g.Challenge("id3")
	a.NoError(err)

	state = g.GetPlayerState("id0")
	a.Equal(0, state.PlayerInfo[0].LastDiscard, "a challenge clears the last discard")
	a.Equal("picked up 3 cards", state.PlayerInfo[0].Message)
	a.Equal("called cheat", state.PlayerInfo[2].Message)
	a.Equal("p3 correctly called p1's bluff", state.Log[len(state.Log)-1])
}

func TestGame_GetPlayerState_finished(t *testing.T) {
	g := setupTestGame(t, "D1", "H1,H2")
	assert.NoError(t, g.Play("id0", cards("D1"), 1))

	assert.Equal(t, "you won", g.GetPlayerState("id0").Message)

	state := g.GetPlayerState("id1")
	assert.Equal(t, "p0 won", state.Message)
	assert.Equal(t, "p0", state.Winner)
	assert.Equal(t, "finished", state.Phase)
	assert.False(t, state.OwnTurn)
	assert.Equal(t, "won the game", state.PlayerInfo[0].Message)
}

func TestGame_logLimit(t *testing.T) {
	g := newTestGame()
	for i := 0; i < 40; i++ {
		g.addLogMessage(nil, "message %d", i)
	}

	messages := g.LogMessages()
	assert.Len(t, messages, 25)
	assert.Equal(t, "message 15", messages[0].Message)
	assert.Equal(t, "message 39", messages[24].Message)
}
