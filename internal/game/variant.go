package game

import "github.com/MJE43/war-sim-go/internal/deck"

// Action is the fate of the losing card after a decided battle.
type Action int8

const (
	// Discard sends the losing card into the pot, and eventually into the
	// winner's discard pile.
	Discard Action = iota
	// Remove takes the losing card out of the game permanently. The total
	// number of cards in play shrinks by one.
	Remove
)

// Variant is the loss policy applied after each decided battle. A card that
// loses by HonorMargin ranks or fewer is "ashamed" and removed from play
// instead of joining the pot. Standard play has a margin of zero, so every
// losing card is discarded.
type Variant struct {
	Name        string `json:"name"`
	HonorMargin int    `json:"honor_margin"`
}

var (
	Standard        = Variant{Name: "standard", HonorMargin: 0}
	Honorable       = Variant{Name: "honorable", HonorMargin: 1}
	DoublyHonorable = Variant{Name: "doubly-honorable", HonorMargin: 2}
)

// Variants lists every built-in variant.
func Variants() []Variant {
	return []Variant{Standard, Honorable, DoublyHonorable}
}

// VariantByName resolves a variant identifier.
func VariantByName(name string) (Variant, bool) {
	for _, v := range Variants() {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Resolve decides the fate of the losing card of a battle. Ace is high with
// no wraparound, so the margin is a plain rank difference.
func (v Variant) Resolve(winning, losing deck.Card) Action {
	margin := int(winning.Rank) - int(losing.Rank)
	if margin > 0 && margin <= v.HonorMargin {
		return Remove
	}
	return Discard
}
