package deck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 1, Ace)
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "2♡", Card{Rank: 2, Suit: Hearts}.String())
	assert.Equal(t, "J♣", Card{Rank: 11, Suit: Clubs}.String())
	assert.Equal(t, "Q♢", Card{Rank: 12, Suit: Diamonds}.String())
	assert.Equal(t, "K♠", Card{Rank: 13, Suit: Spades}.String())
	assert.Equal(t, "A♠", Card{Rank: 1, Suit: Spades}.String())
}

func TestCard_Key(t *testing.T) {
	assert.Equal(t, "D4", Card{Rank: 4, Suit: Diamonds}.Key())
	assert.Equal(t, "S13", Card{Rank: 13, Suit: Spades}.Key())
	assert.Equal(t, "C1", Card{Rank: 1, Suit: Clubs}.Key())
}

func TestCardFromKey(t *testing.T) {
	a := assert.New(t)

	card, err := CardFromKey("D4")
	a.NoError(err)
	a.Equal(Card{Rank: 4, Suit: Diamonds}, card)

	card, err = CardFromKey("s13")
	a.NoError(err)
	a.Equal(Card{Rank: 13, Suit: Spades}, card)

	card, err = CardFromKey("H10")
	a.NoError(err)
	a.Equal(Card{Rank: 10, Suit: Hearts}, card)

	for _, bad := range []string{"", "D0", "D14", "X4", "4D", "D", "D04", "D4 ", "DD4"} {
		_, err := CardFromKey(bad)
		a.True(errors.Is(err, ErrInvalidCard), "expected %q to be invalid", bad)
	}
}

func TestCardsFromKeys(t *testing.T) {
	cards, err := CardsFromKeys([]string{"C1", "H7"})
	assert.NoError(t, err)
	assert.Equal(t, []Card{{Rank: 1, Suit: Clubs}, {Rank: 7, Suit: Hearts}}, cards)

	cards, err = CardsFromKeys([]string{"C1", "Z7"})
	assert.Nil(t, cards)
	assert.EqualError(t, err, `invalid card: "Z7"`)
}

func TestCardsFromString(t *testing.T) {
	assert.Equal(t, []Card{}, CardsFromString(""))
	assert.Equal(t, []string{"C1", "D4", "S13"}, CardsToKeys(CardsFromString("C1, D4,S13")))
	assert.Panics(t, func() {
		CardsFromString("C1,bogus")
	})
}

func TestCard_Valid(t *testing.T) {
	assert.True(t, Card{Rank: 1, Suit: Clubs}.Valid())
	assert.True(t, Card{Rank: 13, Suit: Spades}.Valid())
	assert.False(t, Card{Rank: 0, Suit: Clubs}.Valid())
	assert.False(t, Card{Rank: 14, Suit: Clubs}.Valid())
	assert.False(t, Card{Rank: 4, Suit: "X"}.Valid())
}

func TestRankName(t *testing.T) {
	assert.Equal(t, "A", RankName(1))
	assert.Equal(t, "7", RankName(7))
	assert.Equal(t, "K", RankName(13))
}
