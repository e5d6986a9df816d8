package cheat

import "cheat-server/pkg/deck"

// PileEntry is a single face-down card on the discard pile
type PileEntry struct {
	Card        deck.Card
	ClaimedRank int
	PlayerID    string
}

// Pile is the shared discard pile
// Entries are only ever appended until a challenge takes the whole pile
type Pile struct {
	entries []PileEntry
}

// Len returns the number of cards on the pile
func (p *Pile) Len() int {
	return len(p.entries)
}

// Push adds cards to the top of the pile
func (p *Pile) Push(playerID string, claimedRank int, cards []deck.Card) {
	for _, card := range cards {
		p.entries = append(p.entries, PileEntry{
			Card:        card,
			ClaimedRank: claimedRank,
			PlayerID:    playerID,
		})
	}
}

// Top returns the most recent entry
func (p *Pile) Top() (PileEntry, bool) {
	if len(p.entries) == 0 {
		return PileEntry{}, false
	}

	return p.entries[len(p.entries)-1], true
}

// TopRun returns the top-most contiguous entries that share the top entry's claimed rank
// The returned slice is ordered bottom to top
func (p *Pile) TopRun() []PileEntry {
	top, ok := p.Top()
	if !ok {
		return nil
	}

	i := len(p.entries) - 1
	for i > 0 && p.entries[i-1].ClaimedRank == top.ClaimedRank {
		i--
	}

	return append([]PileEntry{}, p.entries[i:]...)
}

// LastPlay is the most recent play on the pile
type LastPlay struct {
	PlayerID    string
	ClaimedRank int
	Count       int
	// PileSize is the size of the pile once the play was made
	PileSize int
}

// LastPlay returns the most recent play
// Turns always pass to another seat, so the play is the trailing entries that share
// the top entry's player and claim.
func (p *Pile) LastPlay() (LastPlay, bool) {
	top, ok := p.Top()
	if !ok {
		return LastPlay{}, false
	}

	count := 0
	for i := len(p.entries) - 1; i >= 0; i-- {
		if e := p.entries[i]; e.PlayerID != top.PlayerID || e.ClaimedRank != top.ClaimedRank {
			break
		}

		count++
	}

	return LastPlay{
		PlayerID:    top.PlayerID,
		ClaimedRank: top.ClaimedRank,
		Count:       count,
		PileSize:    len(p.entries),
	}, true
}

// Take empties the pile and returns its cards
func (p *Pile) Take() []deck.Card {
	cards := make([]deck.Card, len(p.entries))
	for i, entry := range p.entries {
		cards[i] = entry.Card
	}

	p.entries = nil
	return cards
}
