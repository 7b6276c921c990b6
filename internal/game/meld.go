package game

import (
	"sort"

	"github.com/cardroom/rummyd/internal/deck"
)

// Meld classification for win declarations.
//
// A group of 3+ cards is either a pure sequence (same suit, consecutive
// ranks, no wildcard substitutes), a set (same rank), or an impure sequence
// (same-suit naturals whose rank gaps are covered by wildcards). The
// full-hand check assumes the declaring player has arranged melds
// contiguously via reorder; it slices the hand in its current order against
// a fixed catalogue of partitions rather than searching all groupings.

// handSize is the rummy hand: 13 cards, 14 transiently between draw and
// discard.
const handSize = 13

// partitions is every rotation of 4+3+3+3 and of 4+4+5. Each sums to 13
// with at most four melds of size 3-5.
var partitions = [][]int{
	{4, 3, 3, 3},
	{3, 4, 3, 3},
	{3, 3, 4, 3},
	{3, 3, 3, 4},
	{4, 4, 5},
	{4, 5, 4},
	{5, 4, 4},
}

// isWild reports whether a card acts as a wildcard: printed jokers always,
// plus any natural card of the session wildcard rank.
func isWild(c deck.Card, wildcard deck.Rank) bool {
	return c.IsJoker() || c.Rank == wildcard
}

// IsPureSequence reports whether the group is a pure sequence: one suit,
// consecutive ranks (Ace low, no wraparound) and no wildcard substitutes of
// either kind.
func IsPureSequence(cards []deck.Card, wildcard deck.Rank) bool {
	if len(cards) < 3 {
		return false
	}
	suit := cards[0].Suit
	ranks := make([]int, len(cards))
	for i, c := range cards {
		if c.Suit != suit || isWild(c, wildcard) {
			return false
		}
		ranks[i] = int(c.Rank)
	}
	sort.Ints(ranks)
	for i := 1; i < len(ranks); i++ {
		if ranks[i]-ranks[i-1] != 1 {
			return false
		}
	}
	return true
}

// classifyGroup runs the generalized group check. valid reports whether the
// group is any legal meld; sequence reports whether it specifically
// qualifies as a sequence (and so counts toward the two-sequence rule).
func classifyGroup(cards []deck.Card, wildcard deck.Rank) (valid, sequence bool) {
	if len(cards) < 3 {
		return false, false
	}

	var naturals []deck.Card
	wilds := 0
	for _, c := range cards {
		if isWild(c, wildcard) {
			wilds++
		} else {
			naturals = append(naturals, c)
		}
	}

	// An all-wild group is trivially valid but is neither set nor sequence.
	if len(naturals) == 0 {
		return true, false
	}

	sequence = isNaturalSequence(naturals, wilds)

	// Set: every natural shares one rank. Repeated suits are allowed.
	isSet := true
	for _, c := range naturals[1:] {
		if c.Rank != naturals[0].Rank {
			isSet = false
			break
		}
	}

	return isSet || sequence, sequence
}

// isNaturalSequence checks the sequence half of the generalized rule: the
// naturals share one suit, have pairwise-distinct ranks, and the sum of rank
// gaps between consecutive sorted naturals fits within the wild count.
func isNaturalSequence(naturals []deck.Card, wilds int) bool {
	suit := naturals[0].Suit
	ranks := make([]int, len(naturals))
	for i, c := range naturals {
		if c.Suit != suit {
			return false
		}
		ranks[i] = int(c.Rank)
	}
	sort.Ints(ranks)
	gaps := 0
	for i := 1; i < len(ranks); i++ {
		diff := ranks[i] - ranks[i-1]
		if diff == 0 {
			return false // duplicate rank cannot sit in one sequence
		}
		gaps += diff - 1
	}
	return gaps <= wilds
}

// ValidDeclaration checks a 13-card hand in its current order against the
// partition catalogue. A partition wins if every contiguous chunk is a valid
// meld, at least one chunk is a pure sequence, and at least two chunks
// qualify as sequences overall.
func ValidDeclaration(hand []deck.Card, wildcard deck.Rank) bool {
	if len(hand) != handSize {
		return false
	}

	for _, part := range partitions {
		pures, sequences := 0, 0
		ok := true
		offset := 0
		for _, size := range part {
			chunk := hand[offset : offset+size]
			offset += size

			if IsPureSequence(chunk, wildcard) {
				pures++
				sequences++
				continue
			}
			valid, seq := classifyGroup(chunk, wildcard)
			if !valid {
				ok = false
				break
			}
			if seq {
				sequences++
			}
		}
		if ok && pures >= 1 && sequences >= 2 {
			return true
		}
	}
	return false
}
