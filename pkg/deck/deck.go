package deck

import (
	"cheat-server/internal/rng"
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Size is the number of cards in a standard deck
const Size = 52

// MinPlayers and MaxPlayers bound how many hands a deck can be dealt into
// 13 is the most players that still get four cards each
const (
	MinPlayers = 2
	MaxPlayers = 13
)

// PlayerCountError is returned when a deal is requested for an unsupported number of players
type PlayerCountError struct {
	Min int
	Max int
	Got int
}

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected %d to %d players, got %d", p.Min, p.Max, p.Got)
}

// Deck represents a playing deck
type Deck struct {
	Cards []Card `json:"cards"`
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{}
	d.buildDeck()
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle rebuilds the deck and shuffles it with Fisher-Yates
func (d *Deck) Shuffle(gen rng.Generator) {
	d.buildDeck()

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned
func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) <= 0 {
		return Card{}, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

// Deal shuffles a fresh deck and splits it into playerCount hands
// Every hand receives 52/playerCount cards, and the remainder is dealt
// round-robin starting from the first hand. The deck is not retained.
func Deal(playerCount int, gen rng.Generator) ([]Hand, error) {
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return nil, PlayerCountError{
			Min: MinPlayers,
			Max: MaxPlayers,
			Got: playerCount,
		}
	}

	d := New()
	d.Shuffle(gen)

	handSize := Size / playerCount
	hands := make([]Hand, playerCount)
	for i := range hands {
		hands[i] = make(Hand, 0, handSize+1)
		for j := 0; j < handSize; j++ {
			card, _ := d.Draw()
			hands[i] = append(hands[i], card)
		}
	}

	for seat := 0; d.CardsLeft() > 0; seat = (seat + 1) % playerCount {
		card, _ := d.Draw()
		hands[seat] = append(hands[seat], card)
	}

	return hands, nil
}
