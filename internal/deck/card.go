package deck

import "fmt"

// Rank is the comparison value of a card. Jack is 11, queen 12, king 13,
// and the ace is high at 14. There is no wraparound.
type Rank int8

const (
	MinRank Rank = 2
	Jack    Rank = 11
	Queen   Rank = 12
	King    Rank = 13
	Ace     Rank = 14
	MaxRank Rank = Ace
)

// Suit identifies one of the four suits. Suits never affect comparison; they
// only exist so a physical pack contains exactly one of each rank/suit pair.
type Suit int8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of suits in a pack.
const NumSuits = 4

// Card is an immutable rank/suit pair. Two cards compare solely by rank.
type Card struct {
	Rank Rank
	Suit Suit
}

// Beats reports whether c outranks o.
func (c Card) Beats(o Card) bool {
	return c.Rank > o.Rank
}

// Ties reports whether c and o share a rank, which triggers a war.
func (c Card) Ties(o Card) bool {
	return c.Rank == o.Rank
}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}
