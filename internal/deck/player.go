package deck

import "math/rand"

// Player owns a draw pile and a discard pile. Won cards accumulate in the
// discard until the draw pile runs dry, at which point the discard is
// shuffled and becomes the new draw pile.
type Player struct {
	draw    Deck
	discard Deck
}

// NewPlayer starts a player with the given cards in the discard pile. The
// first draw shuffles them into a fresh draw pile, so the dealt order does
// not matter.
func NewPlayer(cards ...Card) *Player {
	p := &Player{}
	p.discard.Add(cards...)
	return p
}

// NewPlayerOrdered starts a player with the given cards stacked directly as
// the draw pile, first card on top. Used for fixed scenarios where the draw
// order must be exact.
func NewPlayerOrdered(cards ...Card) *Player {
	p := &Player{}
	for i := len(cards) - 1; i >= 0; i-- {
		p.draw.Add(cards[i])
	}
	return p
}

// Cards returns the total number of cards the player holds across both piles.
func (p *Player) Cards() int {
	return p.draw.Len() + p.discard.Len()
}

// Draw pops the top card of the draw pile. An empty draw pile is first
// replenished by shuffling the discard pile into it. ok is false only when
// both piles are empty, which the caller reads as "cannot play".
func (p *Player) Draw(rng *rand.Rand) (Card, bool) {
	if p.draw.Len() == 0 {
		p.discard.Shuffle(rng)
		p.draw, p.discard = p.discard, p.draw
	}
	return p.draw.Draw()
}

// Claim appends won cards to the discard pile. Their order is irrelevant
// because the pile is reshuffled before it is ever drawn from.
func (p *Player) Claim(cards ...Card) {
	p.discard.Add(cards...)
}
