package cheat

import (
	"fmt"

	"cheat-server/pkg/deck"
)

// Play discards cards from the player's hand face down, claiming they are all claimedRank
func (g *Game) Play(playerID string, cards []deck.Card, claimedRank int) error {
	p, err := g.seatedPlayer(playerID)
	if err != nil {
		return err
	}

	if p.Seat != g.currentTurn {
		return ErrNotYourTurn
	}

	if len(cards) == 0 {
		return ErrEmptyPlay
	}

	seen := make(map[deck.Card]bool, len(cards))
	for _, card := range cards {
		if seen[card] || !p.hand.HasCard(card) {
			return ErrCardNotOwned
		}

		seen[card] = true
	}

	if !IsLegalClaim(g.currentRank, claimedRank) {
		return ErrInvalidRank
	}

	for _, card := range cards {
		p.hand.Discard(card)
	}

	g.pile.Push(p.ID, claimedRank, cards)
	g.currentRank = claimedRank
	p.lastDiscard = len(cards)
	p.status = fmt.Sprintf("discarded %s", describeClaim(len(cards), claimedRank))

	g.addLogMessage([]string{p.ID}, "%s discarded %s", p.Name, describeClaim(len(cards), claimedRank))

	if len(p.hand) == 0 {
		g.finish(p)
		return nil
	}

	g.currentTurn = g.nextSeatWithCards(p.Seat)
	return nil
}

// seatedPlayer returns the player if the game is in progress and they hold a seat
func (g *Game) seatedPlayer(playerID string) (*Player, error) {
	switch g.phase {
	case PhaseLobby:
		return nil, ErrGameNotStarted
	case PhaseFinished:
		return nil, ErrGameIsOver
	}

	p, ok := g.idToPlayer[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	return p, nil
}

func (g *Game) finish(winner *Player) {
	g.phase = PhaseFinished
	g.winner = winner
	winner.status = "won the game"

	g.addLogMessage([]string{winner.ID}, "%s has no cards left and wins", winner.Name)
	g.logger.WithField("winner", winner.Name).Info("game finished")
}

// IsLegalClaim returns true if claimedRank may follow currentRank
// With no active claim any rank is allowed. Otherwise the claim must be the same
// rank or one step away, wrapping between king and ace.
func IsLegalClaim(currentRank, claimedRank int) bool {
	if claimedRank < deck.MinRank || claimedRank > deck.MaxRank {
		return false
	}

	if currentRank == NoRank {
		return true
	}

	return claimedRank == currentRank ||
		claimedRank == NextRank(currentRank) ||
		claimedRank == PreviousRank(currentRank)
}

// NextRank returns the rank above rank, wrapping from king to ace
func NextRank(rank int) int {
	return rank%deck.MaxRank + 1
}

// PreviousRank returns the rank below rank, wrapping from ace to king
func PreviousRank(rank int) int {
	return (rank+deck.MaxRank-2)%deck.MaxRank + 1
}

func describeClaim(count, rank int) string {
	if count == 1 {
		return fmt.Sprintf("1 card as %s", deck.RankName(rank))
	}

	return fmt.Sprintf("%d cards as %ss", count, deck.RankName(rank))
}
