package sim

import (
	"errors"
	"testing"
)

func intp(v int) *int { return &v }

func TestBatchRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     BatchRequest
		wantErr error
	}{
		{
			"valid default",
			BatchRequest{Variant: "standard", Games: 100, Split: [2]int{26, 26}},
			nil,
		},
		{
			"valid asymmetric split",
			BatchRequest{Variant: "standard", Games: 100, Split: [2]int{1, 51}},
			nil,
		},
		{
			"valid two packs",
			BatchRequest{Variant: "honorable", Games: 10, Packs: 2, Split: [2]int{52, 52}},
			nil,
		},
		{
			"valid mirrored without split",
			BatchRequest{Variant: "standard", Games: 10, Deal: DealMirrored},
			nil,
		},
		{
			"valid zero bounty",
			BatchRequest{Variant: "standard", Games: 10, Split: [2]int{26, 26}, Bounty: intp(0)},
			nil,
		},
		{
			"zero games",
			BatchRequest{Variant: "standard", Split: [2]int{26, 26}},
			ErrNoGames,
		},
		{
			"negative games",
			BatchRequest{Variant: "standard", Games: -5, Split: [2]int{26, 26}},
			ErrNoGames,
		},
		{
			"split does not sum",
			BatchRequest{Variant: "standard", Games: 10, Split: [2]int{26, 25}},
			ErrBadSplit,
		},
		{
			"split ignores extra pack",
			BatchRequest{Variant: "standard", Games: 10, Packs: 2, Split: [2]int{26, 26}},
			ErrBadSplit,
		},
		{
			"negative split",
			BatchRequest{Variant: "standard", Games: 10, Split: [2]int{-1, 53}},
			ErrBadSplit,
		},
		{
			"unknown variant",
			BatchRequest{Variant: "ruthless", Games: 10, Split: [2]int{26, 26}},
			ErrUnknownVariant,
		},
		{
			"unknown deal mode",
			BatchRequest{Variant: "standard", Games: 10, Deal: "dealt"},
			ErrUnknownDeal,
		},
		{
			"negative bounty",
			BatchRequest{Variant: "standard", Games: 10, Split: [2]int{26, 26}, Bounty: intp(-1)},
			ErrBadBounty,
		},
		{
			"negative workers",
			BatchRequest{Variant: "standard", Games: 10, Split: [2]int{26, 26}, Workers: -2},
			ErrBadWorkers,
		},
		{
			"mirrored uneven split",
			BatchRequest{Variant: "standard", Games: 10, Deal: DealMirrored, Split: [2]int{20, 32}},
			ErrMirroredSplit,
		},
		{
			"script without source",
			BatchRequest{Variant: "standard", Games: 10, Deal: DealScript},
			ErrScriptRequired,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestBatchRequestDefaults(t *testing.T) {
	r := BatchRequest{Variant: "standard", Games: 1, Split: [2]int{26, 26}}

	if got := r.packs(); got != 1 {
		t.Errorf("packs default = %d, want 1", got)
	}
	if got := r.bounty(); got != 3 {
		t.Errorf("bounty default = %d, want 3", got)
	}
	if got := r.deal(); got != DealShuffled {
		t.Errorf("deal default = %q, want shuffled", got)
	}
	if got := r.PackCards(); got != 52 {
		t.Errorf("pack cards = %d, want 52", got)
	}

	empty := BatchRequest{Games: 1, Split: [2]int{26, 26}}
	if err := empty.Validate(); err != nil {
		t.Errorf("empty variant should default to standard, got %v", err)
	}
}
