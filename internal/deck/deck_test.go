package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/rummyd/internal/randutil"
)

func TestNewShoeSizeAndUniqueIDs(t *testing.T) {
	for decks := 1; decks <= 3; decks++ {
		shoe := New(decks)
		assert.Len(t, shoe, decks*CardsPerDeck)

		seen := make(map[string]bool, len(shoe))
		jokers := 0
		for _, c := range shoe {
			assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
			seen[c.ID] = true
			if c.IsJoker() {
				jokers++
			}
		}
		assert.Equal(t, decks, jokers)
	}
}

func TestShufflePreservesCards(t *testing.T) {
	shoe := New(2)
	before := make(map[string]bool, len(shoe))
	for _, c := range shoe {
		before[c.ID] = true
	}

	Shuffle(shoe, randutil.New(7))

	require.Len(t, shoe, 2*CardsPerDeck)
	for _, c := range shoe {
		assert.True(t, before[c.ID])
	}
}

func TestShuffleDeterministicForSeed(t *testing.T) {
	a := NewShuffled(1, randutil.New(99))
	b := NewShuffled(1, randutil.New(99))
	assert.Equal(t, a, b)

	c := NewShuffled(1, randutil.New(100))
	assert.NotEqual(t, a, c)
}

func TestDeal(t *testing.T) {
	shoe := New(2)
	hands, rest, err := Deal(shoe, 4, 13)
	require.NoError(t, err)
	require.Len(t, hands, 4)
	for _, h := range hands {
		assert.Len(t, h, 13)
	}
	assert.Len(t, rest, 2*CardsPerDeck-4*13)
}

func TestDealShoeTooSmall(t *testing.T) {
	shoe := New(1) // 53 cards cannot cover 5 hands of 13
	_, _, err := Deal(shoe, 5, 13)
	assert.ErrorIs(t, err, ErrShoeExhausted)
}

func TestReveal(t *testing.T) {
	shoe := New(1)
	indicator, seed, rest, err := Reveal(shoe)
	require.NoError(t, err)
	assert.Len(t, rest, len(shoe)-2)
	assert.Equal(t, shoe[len(shoe)-1], indicator)
	assert.Equal(t, shoe[len(shoe)-2], seed)
}

func TestRevealExhausted(t *testing.T) {
	_, _, _, err := Reveal([]Card{{Suit: Spades, Rank: Ace, ID: "0-♠-A"}})
	assert.ErrorIs(t, err, ErrShoeExhausted)
}

func TestWildcardRankJokerFallsBackToAce(t *testing.T) {
	assert.Equal(t, Ace, WildcardRank(Card{Suit: Joker, Rank: RankJoker, ID: "0-JOKER"}))
	assert.Equal(t, Seven, WildcardRank(Card{Suit: Hearts, Rank: Seven, ID: "0-♥-7"}))
}

func TestRecycle(t *testing.T) {
	discard := []Card{
		{Suit: Spades, Rank: Two, ID: "0-♠-2"},
		{Suit: Hearts, Rank: Five, ID: "0-♥-5"},
		{Suit: Clubs, Rank: King, ID: "0-♣-K"}, // top of pile
	}

	draw, kept, err := Recycle(discard, randutil.New(3))
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "0-♣-K", kept[0].ID)
	assert.Len(t, draw, 2)

	ids := map[string]bool{draw[0].ID: true, draw[1].ID: true}
	assert.True(t, ids["0-♠-2"])
	assert.True(t, ids["0-♥-5"])
}

func TestRecycleNothingSpare(t *testing.T) {
	_, _, err := Recycle([]Card{{Suit: Spades, Rank: Two, ID: "0-♠-2"}}, randutil.New(3))
	assert.ErrorIs(t, err, ErrNoCardsAvailable)

	_, _, err = Recycle(nil, randutil.New(3))
	assert.ErrorIs(t, err, ErrNoCardsAvailable)
}

func TestDecksFor(t *testing.T) {
	assert.Equal(t, 1, DecksFor(2))
	assert.Equal(t, 2, DecksFor(3))
	assert.Equal(t, 2, DecksFor(5))
	assert.Equal(t, 3, DecksFor(6))
}
