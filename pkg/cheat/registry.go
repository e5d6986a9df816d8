package cheat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"cheat-server/pkg/deck"
)

// MaxNameLength is the longest display name allowed
const MaxNameLength = 12

// Join adds a player to the lobby and returns their id
func (g *Game) Join(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrInvalidName
	}

	if g.phase != PhaseLobby || len(g.players) >= deck.MaxPlayers {
		return "", ErrSessionFull
	}

	if g.nameTaken(name) {
		return "", ErrNameTaken
	}

	p := newPlayer(g.newID(), name)
	g.players = append(g.players, p)
	g.idToPlayer[p.ID] = p

	g.addLogMessage([]string{p.ID}, "%s joined", p.Name)
	g.logger.WithField("player", p.Name).Debug("player joined")

	return p.ID, nil
}

func (g *Game) nameTaken(name string) bool {
	for _, p := range g.players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}

	return false
}

// EnableBot adds a computer player with the name to the game when it starts
// The bot does not count towards the players needed to start.
func (g *Game) EnableBot(name string) {
	g.botName = name
}

// seatBot adds the bot to the end of the seat order if there is room
func (g *Game) seatBot() {
	if g.botName == "" || len(g.players) >= deck.MaxPlayers {
		return
	}

	name := g.botName
	for i := 2; g.nameTaken(name); i++ {
		name = fmt.Sprintf("%s%d", g.botName, i)
	}

	p := newPlayer(g.newID(), name)
	p.Bot = true
	p.Ready = true
	g.players = append(g.players, p)
	g.idToPlayer[p.ID] = p

	g.addLogMessage([]string{p.ID}, "%s joined", p.Name)
}

// Player returns the player with the id
func (g *Game) Player(playerID string) (*Player, bool) {
	p, ok := g.idToPlayer[playerID]
	return p, ok
}

// Players returns the players in join (seat) order
func (g *Game) Players() []*Player {
	return append([]*Player{}, g.players...)
}

// MarkReady marks the player as ready
// When every joined player is ready, and there are enough of them, the cards are
// dealt and started is true
func (g *Game) MarkReady(playerID string) (started bool, err error) {
	p, ok := g.idToPlayer[playerID]
	if !ok {
		return false, ErrPlayerNotFound
	}

	switch g.phase {
	case PhaseInProgress:
		return false, nil
	case PhaseFinished:
		return false, ErrGameIsOver
	}

	if !p.Ready {
		p.Ready = true
		p.status = "ready"
		g.addLogMessage([]string{p.ID}, "%s is ready", p.Name)
	}

	if !g.allReady() {
		return false, nil
	}

	if err := g.start(); err != nil {
		return false, err
	}

	return true, nil
}

func (g *Game) allReady() bool {
	if len(g.players) < deck.MinPlayers {
		return false
	}

	for _, p := range g.players {
		if !p.Ready {
			return false
		}
	}

	return true
}

// start freezes seat order and deals
func (g *Game) start() error {
	g.seatBot()

	hands, err := deck.Deal(len(g.players), g.rng)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPlayerCount, err)
	}

	for seat, p := range g.players {
		p.Seat = seat
		p.hand = hands[seat]
		p.status = ""
	}

	g.phase = PhaseInProgress
	g.currentTurn = 0
	g.currentRank = NoRank

	g.addLogMessage(nil, "the game has started with %d players", len(g.players))
	g.logger.WithField("players", len(g.players)).Info("game started")

	return nil
}

// Disconnect records that the player's connection has gone away
// In the lobby the player is removed. Once seated, the seat and hand are kept so
// the player can reconnect.
func (g *Game) Disconnect(playerID string) error {
	p, ok := g.idToPlayer[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	if g.phase == PhaseLobby {
		g.remove(p)
		g.addLogMessage([]string{p.ID}, "%s left", p.Name)

		// everyone who is left may already be ready
		if g.allReady() {
			return g.start()
		}

		return nil
	}

	if p.Status != Disconnected {
		p.Status = Disconnected
		g.addLogMessage([]string{p.ID}, "%s disconnected", p.Name)
	}

	return nil
}

// Reconnect marks a seated player as connected again
func (g *Game) Reconnect(playerID string) error {
	p, ok := g.idToPlayer[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	p.left = false
	if p.Status != Connected {
		p.Status = Connected
		g.addLogMessage([]string{p.ID}, "%s reconnected", p.Name)
	}

	return nil
}

// Leave is an explicit leave
// In the lobby this is the same as a disconnect. Once seated, cards are never
// removed from play, so the seat is kept and marked as left.
func (g *Game) Leave(playerID string) error {
	if g.phase == PhaseLobby {
		return g.Disconnect(playerID)
	}

	p, ok := g.idToPlayer[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	if !p.left {
		p.left = true
		p.Status = Disconnected
		g.addLogMessage([]string{p.ID}, "%s left", p.Name)
	}

	return nil
}

// AllLeft returns true when no human player remains in the session
// Players that only disconnected may still come back, so they count as remaining.
func (g *Game) AllLeft() bool {
	for _, p := range g.players {
		if !p.Bot && !p.left {
			return false
		}
	}

	return true
}

func (g *Game) remove(p *Player) {
	delete(g.idToPlayer, p.ID)
	for i, other := range g.players {
		if other == p {
			g.players = append(g.players[:i], g.players[i+1:]...)
			break
		}
	}
}

// ConnectedCount returns the number of players that are currently connected
func (g *Game) ConnectedCount() int {
	count := 0
	for _, p := range g.players {
		if p.Status == Connected {
			count++
		}
	}

	return count
}
