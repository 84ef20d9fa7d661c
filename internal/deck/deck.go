package deck

import "math/rand"

// Deck is an ordered pile of cards. The top of the pile is the last element,
// so drawing pops from the end and appending buries cards at the bottom.
type Deck []Card

// NewStandard builds the given number of full 52-card packs, each containing
// exactly one card of every rank/suit combination. The result is in sorted
// order; callers shuffle before play.
func NewStandard(packs int) Deck {
	d := make(Deck, 0, packs*52)
	for p := 0; p < packs; p++ {
		for s := Clubs; s <= Spades; s++ {
			for r := MinRank; r <= MaxRank; r++ {
				d = append(d, Card{Rank: r, Suit: s})
			}
		}
	}
	return d
}

// Len returns the number of cards in the pile.
func (d Deck) Len() int {
	return len(d)
}

// Draw removes and returns the top card. ok is false when the pile is empty.
func (d *Deck) Draw() (c Card, ok bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	c = (*d)[len(*d)-1]
	*d = (*d)[:len(*d)-1]
	return c, true
}

// Add places cards at the bottom of the pile.
func (d *Deck) Add(cards ...Card) {
	*d = append(*d, cards...)
}

// Shuffle permutes the pile uniformly using the provided source.
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}
