package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCard is returned when a card key cannot be parsed
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
// The value is the single letter used in card keys
type Suit string

// suit constants
const (
	Clubs    Suit = "C"
	Diamonds Suit = "D"
	Hearts   Suit = "H"
	Spades   Suit = "S"
)

// Suits is every suit in deck order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// rank constants
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13

	MinRank = Ace
	MaxRank = King
)

// Card is an individual playing card
// Cards are values; two cards with the same suit and rank are the same card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// RankName returns the short display name of a rank (A, 2-10, J, Q, K)
func RankName(rank int) string {
	switch rank {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(rank)
	}
}

func (c Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return RankName(c.Rank) + suit
}

// Key returns the wire representation of the card, e.g., D4 or S13
func (c Card) Key() string {
	return fmt.Sprintf("%s%d", c.Suit, c.Rank)
}

// Valid returns true if the card exists in a standard deck
func (c Card) Valid() bool {
	switch c.Suit {
	case Clubs, Diamonds, Hearts, Spades:
	default:
		return false
	}

	return c.Rank >= MinRank && c.Rank <= MaxRank
}

var cardRx = regexp.MustCompile(`(?i)^([cdhs])(1[0-3]|[1-9])\z`)

// CardFromKey parses a card key in the format of <suit><rank>, where suit is one of
// C, D, H, S and rank is between 1 and 13
func CardFromKey(key string) (Card, error) {
	match := cardRx.FindStringSubmatch(key)
	if match == nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, key)
	}

	// the regexp guarantees this is a number
	rank, _ := strconv.Atoi(match[2])

	return Card{
		Rank: rank,
		Suit: Suit(strings.ToUpper(match[1])),
	}, nil
}

// CardsFromKeys parses every key, failing on the first bad one
func CardsFromKeys(keys []string) ([]Card, error) {
	cards := make([]Card, len(keys))
	for i, key := range keys {
		card, err := CardFromKey(key)
		if err != nil {
			return nil, err
		}

		cards[i] = card
	}

	return cards, nil
}

// MustCardFromKey is like CardFromKey, but panics on an invalid key
func MustCardFromKey(key string) Card {
	card, err := CardFromKey(key)
	if err != nil {
		panic(err)
	}

	return card
}

// CardsFromString returns a slice of cards from a comma separated list of keys (e.g., "C1,D4,S13")
// It panics on an invalid key and is meant for tests and fixtures
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	keys := strings.Split(s, ",")
	cards := make([]Card, len(keys))
	for i, key := range keys {
		cards[i] = MustCardFromKey(strings.TrimSpace(key))
	}

	return cards
}

// CardsToKeys converts a slice of cards to their keys
func CardsToKeys(cards []Card) []string {
	keys := make([]string, len(cards))
	for i, card := range cards {
		keys[i] = card.Key()
	}

	return keys
}
