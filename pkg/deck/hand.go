package deck

import (
	"sort"
	"strings"
)

// Hand represents a collection of cards
type Hand []Card

func (h Hand) Len() int {
	return len(h)
}

// Less orders by rank first so equal ranks sit together
func (h Hand) Less(i, j int) bool {
	if h[i].Rank != h[j].Rank {
		return h[i].Rank < h[j].Rank
	}

	return strings.Compare(string(h[i].Suit), string(h[j].Suit)) < 0
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// AddCards adds cards to the hand
func (h *Hand) AddCards(cards ...Card) {
	*h = append(*h, cards...)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// Discard will remove the specified card
// Returns false if the card was not in the hand
func (h *Hand) Discard(card Card) bool {
	for i, c := range *h {
		if c == card {
			*h = append((*h)[:i:i], (*h)[i+1:]...)
			return true
		}
	}

	return false
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}

// Sorted returns a sorted copy of the hand
func (h Hand) Sorted() Hand {
	h2 := h.Clone()
	sort.Sort(h2)
	return h2
}

// Keys returns the card keys in hand order
func (h Hand) Keys() []string {
	return CardsToKeys(h)
}

func (h Hand) String() string {
	return strings.Join(h.Keys(), ",")
}
