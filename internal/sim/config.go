package sim

import (
	"fmt"

	"github.com/MJE43/war-sim-go/internal/game"
)

// DealMode selects how each game's starting decks are produced.
type DealMode string

const (
	// DealShuffled shuffles the full pack(s) and splits at Split[0]. This is
	// the only mode that supports asymmetric splits.
	DealShuffled DealMode = "shuffled"
	// DealMirrored gives both players an identical rank multiset (half of
	// every rank). Their own first-draw reshuffle randomizes the order.
	DealMirrored DealMode = "mirrored"
	// DealScript delegates the deal to a user-supplied script.
	DealScript DealMode = "script"
)

// BatchRequest configures one simulation batch.
type BatchRequest struct {
	Variant string   `json:"variant" yaml:"variant"`
	Games   int      `json:"games" yaml:"games"`
	Split   [2]int   `json:"split" yaml:"split,flow"`
	Packs   int      `json:"packs,omitempty" yaml:"packs,omitempty"`
	Bounty  *int     `json:"bounty,omitempty" yaml:"bounty,omitempty"`
	Deal    DealMode `json:"deal,omitempty" yaml:"deal,omitempty"`
	Script  string   `json:"script,omitempty" yaml:"script,omitempty"`

	// Workers is the worker pool size; 0 means one worker per CPU.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`
	// Seed is the master seed for the batch; 0 draws a fresh one from the
	// clock. Per-game seeds are derived from it, so a fixed seed makes the
	// batch outcome reproducible.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	// CollectLengths keeps every per-game turn count for export or storage.
	CollectLengths bool `json:"collect_lengths,omitempty" yaml:"collect_lengths,omitempty"`
}

// PackCards returns the total number of cards in play at game start for the
// standard deal modes.
func (r *BatchRequest) PackCards() int {
	return 52 * r.packs()
}

func (r *BatchRequest) packs() int {
	if r.Packs == 0 {
		return 1
	}
	return r.Packs
}

func (r *BatchRequest) bounty() int {
	if r.Bounty == nil {
		return game.DefaultBounty
	}
	return *r.Bounty
}

func (r *BatchRequest) deal() DealMode {
	if r.Deal == "" {
		return DealShuffled
	}
	return r.Deal
}

// Validate rejects a malformed request before any game runs. A batch either
// passes validation and runs to completion, or fails here.
func (r *BatchRequest) Validate() error {
	if r.Games <= 0 {
		return fmt.Errorf("%w: got %d", ErrNoGames, r.Games)
	}
	if r.Packs < 0 {
		return fmt.Errorf("%w: got %d", ErrBadPacks, r.Packs)
	}
	if r.Bounty != nil && *r.Bounty < 0 {
		return fmt.Errorf("%w: got %d", ErrBadBounty, *r.Bounty)
	}
	if r.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrBadWorkers, r.Workers)
	}
	if _, ok := game.VariantByName(r.variantName()); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, r.Variant)
	}

	switch r.deal() {
	case DealShuffled:
		if r.Split[0] < 0 || r.Split[1] < 0 || r.Split[0]+r.Split[1] != r.PackCards() {
			return fmt.Errorf("%w: %d+%d with %d cards", ErrBadSplit, r.Split[0], r.Split[1], r.PackCards())
		}
	case DealMirrored:
		if r.Split != [2]int{} && r.Split[0] != r.Split[1] {
			return fmt.Errorf("%w: %d vs %d", ErrMirroredSplit, r.Split[0], r.Split[1])
		}
	case DealScript:
		if r.Script == "" {
			return ErrScriptRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDeal, r.Deal)
	}

	return nil
}

func (r *BatchRequest) variantName() string {
	if r.Variant == "" {
		return game.Standard.Name
	}
	return r.Variant
}
