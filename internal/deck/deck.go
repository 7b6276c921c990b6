// Package deck builds and manages the multi-deck shoe for a rummy session:
// construction, shuffling, dealing, the wildcard reveal and discard
// recycling. It never touches turn state; the game package owns that.
package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// CardsPerDeck is 52 standard cards plus one printed joker.
const CardsPerDeck = 53

var (
	// ErrShoeExhausted is returned when the shoe is too small to reveal a
	// wildcard indicator and seed the discard pile.
	ErrShoeExhausted = errors.New("shoe exhausted")

	// ErrNoCardsAvailable is returned when a recycle is requested but the
	// discard pile has nothing spare to recycle.
	ErrNoCardsAvailable = errors.New("no cards available to recycle")
)

// New builds an unshuffled shoe of numDecks decks. Card ids embed the deck
// index so they stay unique across the whole shoe.
func New(numDecks int) []Card {
	shoe := make([]Card, 0, numDecks*CardsPerDeck)
	for d := 0; d < numDecks; d++ {
		for suit := Spades; suit <= Diamonds; suit++ {
			for rank := Ace; rank <= King; rank++ {
				shoe = append(shoe, Card{
					Suit: suit,
					Rank: rank,
					ID:   fmt.Sprintf("%d-%s-%s", d, suit, rank),
				})
			}
		}
		shoe = append(shoe, Card{Suit: Joker, Rank: RankJoker, ID: fmt.Sprintf("%d-JOKER", d)})
	}
	return shoe
}

// NewShuffled builds a shoe and shuffles it with the provided source.
func NewShuffled(numDecks int, rng *rand.Rand) []Card {
	shoe := New(numDecks)
	Shuffle(shoe, rng)
	return shoe
}

// Shuffle permutes cards in place with Fisher-Yates, giving every
// permutation equal probability.
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal removes handSize cards per hand from the front of the shoe and
// returns the hands plus the remaining shoe. Hands are dealt as whole blocks
// in seat order.
func Deal(shoe []Card, numHands, handSize int) (hands [][]Card, rest []Card, err error) {
	need := numHands * handSize
	if len(shoe) < need {
		return nil, nil, ErrShoeExhausted
	}
	hands = make([][]Card, numHands)
	for i := range hands {
		hand := make([]Card, handSize)
		copy(hand, shoe[:handSize])
		shoe = shoe[handSize:]
		hands[i] = hand
	}
	return hands, shoe, nil
}

// Reveal pops the face-up wildcard indicator, then pops one further card to
// seed the discard pile. Fails with ErrShoeExhausted below 2 cards, which
// the sizing policy should make impossible.
func Reveal(shoe []Card) (indicator, seed Card, rest []Card, err error) {
	if len(shoe) < 2 {
		return Card{}, Card{}, nil, ErrShoeExhausted
	}
	n := len(shoe)
	return shoe[n-1], shoe[n-2], shoe[:n-2], nil
}

// WildcardRank derives the session wildcard rank from the revealed
// indicator. A revealed joker falls back to Ace so the rank is never
// undefined.
func WildcardRank(indicator Card) Rank {
	if indicator.IsJoker() {
		return Ace
	}
	return indicator.Rank
}

// Recycle rebuilds the draw pile from the discard pile: the current top
// discard is kept aside, everything beneath it is shuffled into a fresh draw
// pile, and the discard pile becomes just the kept card.
func Recycle(discard []Card, rng *rand.Rand) (draw, kept []Card, err error) {
	if len(discard) <= 1 {
		return nil, nil, ErrNoCardsAvailable
	}
	top := discard[len(discard)-1]
	draw = make([]Card, len(discard)-1)
	copy(draw, discard[:len(discard)-1])
	Shuffle(draw, rng)
	return draw, []Card{top}, nil
}

// DecksFor is the default shoe sizing policy: one deck for heads-up, two up
// to five players, three beyond that.
func DecksFor(players int) int {
	switch {
	case players <= 2:
		return 1
	case players <= 5:
		return 2
	default:
		return 3
	}
}
