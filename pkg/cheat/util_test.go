package cheat

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"cheat-server/pkg/deck"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestGame() *Game {
	g := NewGame("ABCD", rand.New(rand.NewSource(0)), logrus.StandardLogger()) // nolint:gosec

	n := 0
	g.newID = func() string {
		id := fmt.Sprintf("id%d", n)
		n++
		return id
	}

	return g
}

// setupTestGame starts a game with one player per hand, named p0, p1, ... with ids id0, id1, ...
// The dealt cards are replaced by hands, which are comma separated card keys
func setupTestGame(t *testing.T, hands ...string) *Game {
	t.Helper()

	g := newTestGame()
	for i := range hands {
		_, err := g.Join(fmt.Sprintf("p%d", i))
		require.NoError(t, err)
	}

	for _, p := range g.players {
		_, err := g.MarkReady(p.ID)
		require.NoError(t, err)
	}

	require.Equal(t, PhaseInProgress, g.phase)

	for i, p := range g.players {
		p.hand = deck.CardsFromString(hands[i])
	}

	return g
}

// suitHand returns all 13 cards of a suit
func suitHand(suit deck.Suit) string {
	keys := make([]string, 0, 13)
	for rank := deck.MinRank; rank <= deck.MaxRank; rank++ {
		keys = append(keys, deck.Card{Rank: rank, Suit: suit}.Key())
	}

	return strings.Join(keys, ",")
}

// setupFourPlayers deals each player a full suit: p0 diamonds, p1 hearts, p2 clubs, p3 spades
func setupFourPlayers(t *testing.T) *Game {
	t.Helper()
	return setupTestGame(t, suitHand(deck.Diamonds), suitHand(deck.Hearts), suitHand(deck.Clubs), suitHand(deck.Spades))
}

func cards(s string) []deck.Card {
	return deck.CardsFromString(s)
}

// assertFullDeck checks that hands + pile hold every card exactly once
func assertFullDeck(t *testing.T, g *Game) {
	t.Helper()

	seen := make(map[deck.Card]int)
	for _, p := range g.players {
		for _, c := range p.hand {
			seen[c]++
		}
	}

	for _, e := range g.pile.entries {
		seen[e.Card]++
	}

	require.Len(t, seen, deck.Size)
	for c, n := range seen {
		require.Equal(t, 1, n, "card %s appears %d times", c.Key(), n)
	}

	require.Equal(t, deck.Size, g.cardCount())
}
