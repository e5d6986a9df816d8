package cheat

import "cheat-server/pkg/deck"

// ConnectionStatus is whether a player currently has a live connection
type ConnectionStatus int

// connection statuses
const (
	Connected ConnectionStatus = iota
	Disconnected
)

func (c ConnectionStatus) String() string {
	if c == Connected {
		return "connected"
	}

	return "disconnected"
}

// Player is a participant in a session
type Player struct {
	ID   string
	Name string
	// Seat is -1 until the game starts
	Seat   int
	Ready  bool
	Status ConnectionStatus
	// Bot is true for the computer controlled seat
	Bot bool

	hand deck.Hand
	// left is set by an explicit leave once the game has started
	left bool
	// lastDiscard is the number of cards in the player's most recent play
	lastDiscard int
	// status is the human readable status line shown to other players
	status string
}

func newPlayer(id, name string) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Seat:   -1,
		Status: Connected,
		status: "not ready",
	}
}

// Hand returns a copy of the player's hand
func (p *Player) Hand() deck.Hand {
	return p.hand.Clone()
}

// CardCount returns the number of cards in the player's hand
func (p *Player) CardCount() int {
	return len(p.hand)
}
