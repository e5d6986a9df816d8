package cheat

import "fmt"

// Snapshot is the state of the session as seen by a single player
// Only the player's own hand is revealed; everyone else is reduced to a card count.
type Snapshot struct {
	Hand        []string      `json:"hand"`
	StackSize   int           `json:"stack-size"`
	OwnTurn     bool          `json:"own-turn"`
	CurrentRank int           `json:"current_rank"`
	PlayerInfo  []*PlayerInfo `json:"player_info"`

	Name       string   `json:"name"`
	Code       string   `json:"code"`
	Phase      string   `json:"phase"`
	WaitingFor string   `json:"waiting-for"`
	Message    string   `json:"message"`
	Winner     string   `json:"winner"`
	Log        []string `json:"log"`
}

// PlayerInfo is what a player can see about another player
type PlayerInfo struct {
	Name  string `json:"name"`
	Cards int    `json:"cards"`
	// LastDiscard is how many cards the player put down on their latest play
	LastDiscard int    `json:"last-discard"`
	Message     string `json:"message"`
	Bot         bool   `json:"bot,omitempty"`
}

// GetPlayerState returns the snapshot for the player
// An empty or unknown playerID gets the view of someone who has not joined yet
func (g *Game) GetPlayerState(playerID string) *Snapshot {
	viewer := g.idToPlayer[playerID]

	s := &Snapshot{
		Hand:        []string{},
		StackSize:   g.pile.Len(),
		CurrentRank: g.currentRank,
		PlayerInfo:  make([]*PlayerInfo, 0, len(g.players)),
		Code:        g.code,
		Phase:       g.phase.String(),
		Log:         make([]string, len(g.logMessages)),
	}

	for i, lm := range g.logMessages {
		s.Log[i] = lm.Message
	}

	for _, p := range g.players {
		if p == viewer {
			continue
		}

		s.PlayerInfo = append(s.PlayerInfo, &PlayerInfo{
			Name:        p.Name,
			Cards:       len(p.hand),
			LastDiscard: p.lastDiscard,
			Message:     g.statusLine(p),
			Bot:         p.Bot,
		})
	}

	current, inProgress := g.CurrentPlayer()
	if inProgress {
		s.WaitingFor = current.Name
	}

	if g.winner != nil {
		s.Winner = g.winner.Name
	}

	if viewer != nil {
		s.Name = viewer.Name
		s.Hand = viewer.hand.Sorted().Keys()
		s.OwnTurn = inProgress && current == viewer
	}

	s.Message = g.viewerMessage(viewer)
	return s
}

// statusLine is the line shown next to a player's name
func (g *Game) statusLine(p *Player) string {
	if p.left {
		return "left"
	}

	if p.Status == Disconnected {
		return "disconnected"
	}

	if p.status != "" {
		return p.status
	}

	if current, ok := g.CurrentPlayer(); ok && current == p {
		return "playing"
	}

	return "waiting"
}

func (g *Game) viewerMessage(viewer *Player) string {
	switch g.phase {
	case PhaseLobby:
		if viewer == nil {
			return "enter a name to join"
		}

		if n := len(g.players); n < 2 {
			return "waiting for more players"
		}

		notReady := 0
		for _, p := range g.players {
			if !p.Ready {
				notReady++
			}
		}

		if notReady == 1 {
			return "waiting for 1 player to ready up"
		}

		return fmt.Sprintf("waiting for %d players to ready up", notReady)
	case PhaseInProgress:
		current := g.players[g.currentTurn]
		if current == viewer {
			return "your turn"
		}

		return fmt.Sprintf("waiting for %s", current.Name)
	default:
		if g.winner == viewer {
			return "you won"
		}

		return fmt.Sprintf("%s won", g.winner.Name)
	}
}
