// Package bot decides the moves of the computer controlled seat
package bot

import (
	"cheat-server/internal/rng"
	"cheat-server/pkg/cheat"
	"cheat-server/pkg/deck"
)

// Name is the default name of the bot
const Name = "otis"

// suspiciousCount is the size of a claim the bot may call out on a hunch
const suspiciousCount = 3

// View is what the bot knows when it decides
type View struct {
	Hand        deck.Hand
	OwnTurn     bool
	CurrentRank int

	// Last is the most recent play, if LastOK
	Last   cheat.LastPlay
	LastOK bool
	// Judged is true once the bot has already considered calling out Last
	Judged bool
	// Self is the bot's player id
	Self string
}

// NewView returns the bot's view of the game
// NOTE: must be called from the dealer's run loop
func NewView(g *cheat.Game, playerID string) View {
	v := View{
		CurrentRank: g.CurrentRank(),
		Self:        playerID,
	}

	if p, ok := g.Player(playerID); ok {
		v.Hand = p.Hand()
	}

	if current, ok := g.CurrentPlayer(); ok {
		v.OwnTurn = current.ID == playerID
	}

	v.Last, v.LastOK = g.LastPlay()
	return v
}

// Action is a move the bot wants to make
type Action struct {
	Callout   bool
	Cards     []deck.Card
	ClaimRank int
}

// Decide returns the bot's next action
// false is returned when the bot has nothing to do
func Decide(v View, gen rng.Generator) (Action, bool) {
	if shouldCallOut(v, gen) {
		return Action{Callout: true}, true
	}

	if !v.OwnTurn || len(v.Hand) == 0 {
		return Action{}, false
	}

	return play(v, gen), true
}

func shouldCallOut(v View, gen rng.Generator) bool {
	if !v.LastOK || v.Judged || v.Last.PlayerID == v.Self {
		return false
	}

	held := 0
	for _, card := range v.Hand {
		if card.Rank == v.Last.ClaimedRank {
			held++
		}
	}

	// there are only four cards of each rank
	if held+v.Last.Count > len(deck.Suits) {
		return true
	}

	return v.Last.Count >= suspiciousCount && gen.Intn(2) == 0
}

// play puts down every card of the legal rank the bot holds most of
// With no legal card in hand it bluffs a single random card as the current rank
func play(v View, gen rng.Generator) Action {
	byRank := make(map[int][]deck.Card)
	for _, card := range v.Hand {
		byRank[card.Rank] = append(byRank[card.Rank], card)
	}

	best := cheat.NoRank
	for rank := deck.MinRank; rank <= deck.MaxRank; rank++ {
		if cheat.IsLegalClaim(v.CurrentRank, rank) && len(byRank[rank]) > len(byRank[best]) {
			best = rank
		}
	}

	if best != cheat.NoRank {
		return Action{Cards: byRank[best], ClaimRank: best}
	}

	card := v.Hand[gen.Intn(len(v.Hand))]
	return Action{Cards: []deck.Card{card}, ClaimRank: v.CurrentRank}
}
