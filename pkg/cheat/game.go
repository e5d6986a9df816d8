package cheat

import (
	"cheat-server/internal/rng"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Phase is the lifecycle phase of a session
type Phase int

const (
	// PhaseLobby is when players are joining and readying up
	PhaseLobby Phase = iota
	// PhaseInProgress is when cards have been dealt and turns are being taken
	PhaseInProgress
	// PhaseFinished is when a player has emptied their hand
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseInProgress:
		return "inProgress"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// TurnState is the state of the turn engine
type TurnState int

// turn states
const (
	// TurnInactive is reported while the session is still in the lobby
	TurnInactive TurnState = iota
	// TurnAwaitingFirstPlay is when there is no active claim, so any rank may be claimed
	TurnAwaitingFirstPlay
	// TurnAwaitingPlay is when the claim must be adjacent to or equal to the current rank
	TurnAwaitingPlay
	// TurnFinished is when the game is over
	TurnFinished
)

// NoRank is the current rank when no claim is active
const NoRank = 0

// Game is a single session of Cheat
// A Game is not safe for concurrent use. The room dealer owns it and calls
// every method from its run loop.
type Game struct {
	code   string
	rng    rng.Generator
	logger logrus.FieldLogger
	newID  func() string

	phase Phase
	// players is in join order, which becomes seat order when the game starts
	players    []*Player
	idToPlayer map[string]*Player

	pile        Pile
	currentRank int
	currentTurn int
	winner      *Player

	lastChallenge *ChallengeResult
	logMessages   []*LogMessage

	// botName seats a computer player when the game starts
	botName string
}

// NewGame returns a new game in the lobby phase
func NewGame(code string, gen rng.Generator, logger logrus.FieldLogger) *Game {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Game{
		code:       code,
		rng:        gen,
		logger:     logger.WithField("code", code),
		newID:      func() string { return uuid.New().String() },
		phase:      PhaseLobby,
		players:    make([]*Player, 0, 4),
		idToPlayer: make(map[string]*Player),
	}
}

// Code returns the join code of the session
func (g *Game) Code() string {
	return g.code
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// CurrentRank returns the rank currently being claimed, or NoRank
func (g *Game) CurrentRank() int {
	return g.currentRank
}

// PileSize returns the number of cards on the discard pile
func (g *Game) PileSize() int {
	return g.pile.Len()
}

// Winner returns the winning player once the game is finished
func (g *Game) Winner() (*Player, bool) {
	return g.winner, g.winner != nil
}

// LastPlay returns the most recent play on the pile, if any
func (g *Game) LastPlay() (LastPlay, bool) {
	return g.pile.LastPlay()
}

// LastChallenge returns the most recent challenge result, if any
func (g *Game) LastChallenge() *ChallengeResult {
	return g.lastChallenge
}

// TurnState returns the state of the turn engine and the seat that is expected to play
func (g *Game) TurnState() (TurnState, int) {
	switch {
	case g.phase == PhaseLobby:
		return TurnInactive, -1
	case g.phase == PhaseFinished:
		return TurnFinished, -1
	case g.currentRank == NoRank:
		return TurnAwaitingFirstPlay, g.currentTurn
	default:
		return TurnAwaitingPlay, g.currentTurn
	}
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() (*Player, bool) {
	if g.phase != PhaseInProgress {
		return nil, false
	}

	return g.players[g.currentTurn], true
}

// nextSeatWithCards returns the first seat after seat whose hand is not empty
// If no other seat has cards, seat is returned
func (g *Game) nextSeatWithCards(seat int) int {
	n := len(g.players)
	for i := 1; i < n; i++ {
		next := (seat + i) % n
		if len(g.players[next].hand) > 0 {
			return next
		}
	}

	return seat
}

// cardCount returns every card held by players or on the pile
func (g *Game) cardCount() int {
	count := g.pile.Len()
	for _, p := range g.players {
		count += len(p.hand)
	}

	return count
}
