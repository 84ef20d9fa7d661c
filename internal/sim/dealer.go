package sim

import (
	"fmt"
	"math/rand"

	"github.com/MJE43/war-sim-go/internal/dealscript"
	"github.com/MJE43/war-sim-go/internal/deck"
)

// dealer produces the starting cards for one game. Implementations must be
// safe for concurrent use by the worker pool.
type dealer interface {
	Deal(rng *rand.Rand) (p1, p2 []deck.Card, err error)
}

// newDealer builds the dealer for a validated request. Script compilation
// errors and a failing probe deal surface here, before any game runs.
func newDealer(req *BatchRequest) (dealer, error) {
	switch req.deal() {
	case DealShuffled:
		return &shuffledDealer{
			base:  deck.NewStandard(req.packs()),
			split: req.Split[0],
		}, nil

	case DealMirrored:
		// Each player receives half of every rank: two copies per pack.
		half := make([]deck.Card, 0, 26*req.packs())
		for r := deck.MinRank; r <= deck.MaxRank; r++ {
			for i := 0; i < 2*req.packs(); i++ {
				half = append(half, deck.Card{Rank: r, Suit: deck.Suit(i % deck.NumSuits)})
			}
		}
		return &mirroredDealer{half: half}, nil

	case DealScript:
		script, err := dealscript.New(req.Script)
		if err != nil {
			return nil, fmt.Errorf("deal script: %w", err)
		}
		d := &scriptDealer{script: script}
		// Probe once so a broken deal() fails the batch before any game runs.
		if _, _, err := d.Deal(rand.New(rand.NewSource(1))); err != nil {
			return nil, fmt.Errorf("deal script probe: %w", err)
		}
		return d, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeal, req.Deal)
	}
}

// shuffledDealer shuffles a copy of the full pack(s) and cuts at split.
type shuffledDealer struct {
	base  deck.Deck
	split int
}

func (d *shuffledDealer) Deal(rng *rand.Rand) ([]deck.Card, []deck.Card, error) {
	cards := make(deck.Deck, len(d.base))
	copy(cards, d.base)
	cards.Shuffle(rng)
	return cards[:d.split], cards[d.split:], nil
}

// mirroredDealer hands both players the same rank multiset. The players'
// own first-draw reshuffle randomizes the order, so the halves can be shared
// read-only across games.
type mirroredDealer struct {
	half []deck.Card
}

func (d *mirroredDealer) Deal(rng *rand.Rand) ([]deck.Card, []deck.Card, error) {
	return d.half, d.half, nil
}

// scriptDealer delegates to a compiled deal script. The script serializes
// its own calls.
type scriptDealer struct {
	script *dealscript.Script
}

func (d *scriptDealer) Deal(rng *rand.Rand) ([]deck.Card, []deck.Card, error) {
	return d.script.Deal(rng)
}
