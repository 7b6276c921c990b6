package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardroom/rummyd/internal/deck"
)

var nextCardID int

// c builds a card with a unique throwaway id; meld checks only look at suit
// and rank.
func c(suit deck.Suit, rank deck.Rank) deck.Card {
	nextCardID++
	return deck.Card{Suit: suit, Rank: rank, ID: fmt.Sprintf("t-%d", nextCardID)}
}

func joker() deck.Card {
	nextCardID++
	return deck.Card{Suit: deck.Joker, Rank: deck.RankJoker, ID: fmt.Sprintf("t-%d", nextCardID)}
}

func TestIsPureSequence(t *testing.T) {
	wild := deck.King

	tests := []struct {
		name  string
		cards []deck.Card
		want  bool
	}{
		{"three consecutive spades", []deck.Card{c(deck.Spades, 5), c(deck.Spades, 6), c(deck.Spades, 7)}, true},
		{"unsorted input still counts", []deck.Card{c(deck.Hearts, 9), c(deck.Hearts, 7), c(deck.Hearts, 8)}, true},
		{"ace low run", []deck.Card{c(deck.Clubs, deck.Ace), c(deck.Clubs, 2), c(deck.Clubs, 3)}, true},
		{"too short", []deck.Card{c(deck.Spades, 5), c(deck.Spades, 6)}, false},
		{"mixed suits", []deck.Card{c(deck.Spades, 5), c(deck.Hearts, 6), c(deck.Spades, 7)}, false},
		{"gap", []deck.Card{c(deck.Spades, 5), c(deck.Spades, 6), c(deck.Spades, 8)}, false},
		{"no wraparound past king", []deck.Card{c(deck.Spades, 12), c(deck.Spades, 13), c(deck.Spades, deck.Ace)}, false},
		{"printed joker disqualifies", []deck.Card{c(deck.Spades, 5), c(deck.Spades, 6), joker()}, false},
		{"wildcard rank disqualifies", []deck.Card{c(deck.Spades, 11), c(deck.Spades, 12), c(deck.Spades, deck.King)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPureSequence(tt.cards, wild))
		})
	}
}

func TestClassifyGroup(t *testing.T) {
	wild := deck.Seven

	tests := []struct {
		name     string
		cards    []deck.Card
		valid    bool
		sequence bool
	}{
		{
			"set with repeated suits",
			[]deck.Card{c(deck.Spades, 4), c(deck.Spades, 4), c(deck.Hearts, 4)},
			true, false,
		},
		{
			"set completed by wildcard",
			[]deck.Card{c(deck.Spades, 9), c(deck.Clubs, 9), c(deck.Diamonds, deck.Seven)},
			true, false,
		},
		{
			"impure sequence, one gap one wild",
			[]deck.Card{c(deck.Spades, 5), c(deck.Spades, 6), c(deck.Spades, 8), c(deck.Hearts, deck.Seven)},
			true, true,
		},
		{
			"gap of two exceeds one wild",
			[]deck.Card{c(deck.Spades, 5), c(deck.Spades, 6), c(deck.Spades, 9), c(deck.Hearts, deck.Seven)},
			false, false,
		},
		{
			"all wild group is valid",
			[]deck.Card{joker(), c(deck.Hearts, deck.Seven), c(deck.Clubs, deck.Seven)},
			true, false,
		},
		{
			"duplicate rank cannot extend a sequence",
			[]deck.Card{c(deck.Spades, 5), c(deck.Spades, 5), c(deck.Spades, 6)},
			false, false,
		},
		{
			"naturals span suits and ranks",
			[]deck.Card{c(deck.Spades, 5), c(deck.Hearts, 9), c(deck.Clubs, 2)},
			false, false,
		},
		{
			"too short",
			[]deck.Card{c(deck.Spades, 5), c(deck.Spades, 6)},
			false, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, sequence := classifyGroup(tt.cards, wild)
			assert.Equal(t, tt.valid, valid, "valid")
			assert.Equal(t, tt.sequence, sequence, "sequence")
		})
	}
}

func TestValidDeclarationAccepts(t *testing.T) {
	wild := deck.King

	// 4+3+3+3 in hand order: two pure sequences and two sets.
	hand := []deck.Card{
		c(deck.Spades, deck.Ace), c(deck.Spades, 2), c(deck.Spades, 3), c(deck.Spades, 4),
		c(deck.Hearts, 5), c(deck.Hearts, 6), c(deck.Hearts, 7),
		c(deck.Clubs, 9), c(deck.Diamonds, 9), c(deck.Hearts, 9),
		c(deck.Spades, 11), c(deck.Clubs, 11), c(deck.Diamonds, 11),
	}
	assert.True(t, ValidDeclaration(hand, wild))
}

func TestValidDeclarationAcceptsFourFourFive(t *testing.T) {
	wild := deck.Two

	hand := []deck.Card{
		c(deck.Spades, 5), c(deck.Spades, 6), c(deck.Spades, 7), c(deck.Spades, 8),
		c(deck.Hearts, 9), c(deck.Hearts, 10), c(deck.Hearts, 11), c(deck.Hearts, 12),
		c(deck.Clubs, 4), c(deck.Diamonds, 4), c(deck.Hearts, 4), c(deck.Spades, 4), joker(),
	}
	assert.True(t, ValidDeclaration(hand, wild))
}

func TestValidDeclarationImpureSecondSequence(t *testing.T) {
	wild := deck.Seven

	// One pure sequence, one impure sequence using a wildcard for the gap,
	// and two sets.
	hand := []deck.Card{
		c(deck.Spades, deck.Ace), c(deck.Spades, 2), c(deck.Spades, 3), c(deck.Spades, 4),
		c(deck.Hearts, 5), c(deck.Hearts, 6), c(deck.Hearts, 8), // 7 would be wild, use the gap
		c(deck.Clubs, 9), c(deck.Diamonds, 9), c(deck.Hearts, 9),
		c(deck.Spades, 11), c(deck.Clubs, 11), c(deck.Diamonds, 11),
	}
	// The 5♥ 6♥ 8♥ chunk is only 3 cards with a gap and no wild in-chunk;
	// invalid as written.
	assert.False(t, ValidDeclaration(hand, wild))

	// Same hand with a joker folded into the impure chunk under a 4+4+... no:
	// give the chunk its wild and shrink a set instead: 4+4+5 rotation.
	hand = []deck.Card{
		c(deck.Spades, deck.Ace), c(deck.Spades, 2), c(deck.Spades, 3), c(deck.Spades, 4),
		c(deck.Hearts, 5), c(deck.Hearts, 6), c(deck.Hearts, 8), joker(),
		c(deck.Clubs, 9), c(deck.Diamonds, 9), c(deck.Hearts, 9), c(deck.Spades, 9), c(deck.Clubs, deck.Seven),
	}
	assert.True(t, ValidDeclaration(hand, wild))
}

func TestValidDeclarationRejectsNoPureSequence(t *testing.T) {
	wild := deck.King

	// Four sets, no sequence at all.
	hand := []deck.Card{
		c(deck.Spades, 2), c(deck.Hearts, 2), c(deck.Clubs, 2), c(deck.Diamonds, 2),
		c(deck.Spades, 5), c(deck.Hearts, 5), c(deck.Clubs, 5),
		c(deck.Spades, 8), c(deck.Hearts, 8), c(deck.Clubs, 8),
		c(deck.Spades, 10), c(deck.Hearts, 10), c(deck.Clubs, 10),
	}
	assert.False(t, ValidDeclaration(hand, wild))
}

func TestValidDeclarationRejectsSingleSequence(t *testing.T) {
	wild := deck.King

	// One pure sequence but nothing else counting as a sequence.
	hand := []deck.Card{
		c(deck.Spades, deck.Ace), c(deck.Spades, 2), c(deck.Spades, 3), c(deck.Spades, 4),
		c(deck.Hearts, 5), c(deck.Clubs, 5), c(deck.Diamonds, 5),
		c(deck.Spades, 8), c(deck.Hearts, 8), c(deck.Clubs, 8),
		c(deck.Spades, 10), c(deck.Hearts, 10), c(deck.Clubs, 10),
	}
	assert.False(t, ValidDeclaration(hand, wild))
}

func TestValidDeclarationRequiresMeldOrder(t *testing.T) {
	wild := deck.King

	// The same melds as the accepting case but interleaved; the contiguous
	// slicing deliberately does not search for them.
	hand := []deck.Card{
		c(deck.Spades, deck.Ace), c(deck.Hearts, 5), c(deck.Spades, 2), c(deck.Clubs, 9),
		c(deck.Spades, 3), c(deck.Hearts, 6), c(deck.Spades, 4), c(deck.Diamonds, 9),
		c(deck.Hearts, 7), c(deck.Hearts, 9), c(deck.Spades, 11), c(deck.Clubs, 11),
		c(deck.Diamonds, 11),
	}
	assert.False(t, ValidDeclaration(hand, wild))
}

func TestValidDeclarationWrongSize(t *testing.T) {
	hand := []deck.Card{c(deck.Spades, deck.Ace), c(deck.Spades, 2), c(deck.Spades, 3)}
	assert.False(t, ValidDeclaration(hand, deck.King))
}
