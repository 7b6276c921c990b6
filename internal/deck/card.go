package deck

import (
	"encoding/json"
	"fmt"
)

// Suit identifies one of the four standard suits, or the printed joker.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
	Joker // printed joker, rank is meaningless
)

// Rank is 1 (Ace) through 13 (King). Ace is always low. Rank 0 is reserved
// for the printed joker.
type Rank uint8

const (
	RankJoker Rank = 0
	Ace       Rank = 1
	Two       Rank = 2
	Three     Rank = 3
	Four      Rank = 4
	Five      Rank = 5
	Six       Rank = 6
	Seven     Rank = 7
	Eight     Rank = 8
	Nine      Rank = 9
	Ten       Rank = 10
	Jack      Rank = 11
	Queen     Rank = 12
	King      Rank = 13
)

var suitSymbols = [...]string{"♠", "♥", "♣", "♦", "Joker"}

var rankSymbols = [...]string{"JOKER", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// String returns the display symbol for the suit.
func (s Suit) String() string {
	if int(s) >= len(suitSymbols) {
		return "?"
	}
	return suitSymbols[s]
}

// String returns the display symbol for the rank.
func (r Rank) String() string {
	if int(r) >= len(rankSymbols) {
		return "?"
	}
	return rankSymbols[r]
}

// Card is a single card in the shoe. ID is unique within one shoe and is the
// only thing clients need to echo back; Suit and Rank are display/meld data.
// Cards are immutable once built.
type Card struct {
	Suit Suit
	Rank Rank
	ID   string
}

// IsJoker reports whether this is a printed joker card.
func (c Card) IsJoker() bool {
	return c.Suit == Joker
}

// String renders a card like "A♠" or "JOKER".
func (c Card) String() string {
	if c.IsJoker() {
		return "JOKER"
	}
	return c.Rank.String() + c.Suit.String()
}

type cardJSON struct {
	Suit string `json:"suit"`
	Rank string `json:"value"`
	ID   string `json:"id"`
}

// MarshalJSON emits the wire shape clients consume: display symbols plus the
// shoe-unique id.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Suit: c.Suit.String(), Rank: c.Rank.String(), ID: c.ID})
}

// UnmarshalJSON accepts the same shape MarshalJSON produces. Only used by
// tests and tooling; gameplay requests reference cards by id alone.
func (c *Card) UnmarshalJSON(data []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	suit, rank, err := parseSymbols(cj.Suit, cj.Rank)
	if err != nil {
		return err
	}
	c.Suit = suit
	c.Rank = rank
	c.ID = cj.ID
	return nil
}

func parseSymbols(suit, rank string) (Suit, Rank, error) {
	if suit == "Joker" || rank == "JOKER" {
		return Joker, RankJoker, nil
	}
	var s Suit
	switch suit {
	case "♠":
		s = Spades
	case "♥":
		s = Hearts
	case "♣":
		s = Clubs
	case "♦":
		s = Diamonds
	default:
		return 0, 0, fmt.Errorf("invalid suit %q", suit)
	}
	for r, sym := range rankSymbols[1:] {
		if sym == rank {
			return s, Rank(r + 1), nil
		}
	}
	return 0, 0, fmt.Errorf("invalid rank %q", rank)
}
