package cheat

import (
	"fmt"

	"cheat-server/pkg/deck"

	"github.com/sirupsen/logrus"
)

// ChallengeResult is the outcome of a "cheat" call
// It is the only message that reveals cards to players who do not own them
type ChallengeResult struct {
	ChallengerID string `json:"challengerId"`
	Challenger   string `json:"challenger"`
	// Accused is the player who made the most recent play
	AccusedID string `json:"accusedId"`
	Accused   string `json:"accused"`
	WinnerID  string `json:"winnerId"`
	Winner    string `json:"winner"`
	LoserID   string `json:"loserId"`
	Loser     string `json:"loser"`

	ClaimedRank int `json:"claimedRank"`
	// Cards are the disputed cards, bottom to top
	Cards []string `json:"cards"`
	// Truthful is true if every disputed card matched the claim
	Truthful bool `json:"truthful"`
	// PileSize is how many cards the loser picked up
	PileSize int `json:"pileSize"`
}

// Challenge disputes the most recent claim on behalf of challengerID
func (g *Game) Challenge(challengerID string) (*ChallengeResult, error) {
	challenger, err := g.seatedPlayer(challengerID)
	if err != nil {
		return nil, err
	}

	if g.pile.Len() == 0 {
		return nil, ErrNothingToChallenge
	}

	result := g.resolve(challenger)
	g.lastChallenge = result
	return result, nil
}

// resolve inspects the disputed run, hands the whole pile to the loser and
// passes the turn to the seat after the loser
func (g *Game) resolve(challenger *Player) *ChallengeResult {
	run := g.pile.TopRun()
	top := run[len(run)-1]
	accused := g.idToPlayer[top.PlayerID]

	disputed := make([]deck.Card, len(run))
	var liar *Player
	for i, entry := range run {
		disputed[i] = entry.Card
		if entry.Card.Rank != entry.ClaimedRank {
			// the most recent false claim wins out
			liar = g.idToPlayer[entry.PlayerID]
		}
	}

	winner, loser := accused, challenger
	switch {
	case liar == challenger:
		// the challenger exposed their own bluff
	case liar != nil:
		winner, loser = challenger, liar
	}

	// nobody wins a challenge against yourself
	if winner == loser {
		winner = nil
	}

	pile := g.pile.Take()
	loser.hand.AddCards(pile...)

	g.currentRank = NoRank
	g.currentTurn = g.nextSeatWithCards(loser.Seat)

	for _, p := range g.players {
		p.status = ""
		p.lastDiscard = 0
	}
	challenger.status = "called cheat"
	loser.status = fmt.Sprintf("picked up %d cards", len(pile))

	switch {
	case liar == challenger:
		g.addLogMessage([]string{challenger.ID}, "%s called cheat and exposed their own bluff", challenger.Name)
	case liar != nil:
		g.addLogMessage([]string{challenger.ID, liar.ID}, "%s correctly called %s's bluff", challenger.Name, liar.Name)
	case accused == challenger:
		g.addLogMessage([]string{challenger.ID}, "%s called cheat on their own honest play", challenger.Name)
	default:
		g.addLogMessage([]string{challenger.ID, accused.ID}, "%s incorrectly called %s's bluff", challenger.Name, accused.Name)
	}

	g.logger.WithFields(logrus.Fields{
		"challenger": challenger.Name,
		"loser":      loser.Name,
		"cards":      len(pile),
	}).Debug("challenge resolved")

	result := &ChallengeResult{
		ChallengerID: challenger.ID,
		Challenger:   challenger.Name,
		AccusedID:    accused.ID,
		Accused:      accused.Name,
		LoserID:      loser.ID,
		Loser:        loser.Name,
		ClaimedRank:  top.ClaimedRank,
		Cards:        deck.CardsToKeys(disputed),
		Truthful:     liar == nil,
		PileSize:     len(pile),
	}
	if winner != nil {
		result.WinnerID = winner.ID
		result.Winner = winner.Name
	}

	return result
}
