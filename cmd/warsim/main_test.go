package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/MJE43/war-sim-go/internal/game"
	"github.com/MJE43/war-sim-go/internal/sim"
)

func TestWriteLengthsIsFlatTurnArray(t *testing.T) {
	result := &sim.BatchResult{
		Lengths: []sim.GameLength{
			{Index: 0, Turns: 40, Winner: game.Player1Won},
			{Index: 1, Turns: 172, Winner: game.Player2Won},
			{Index: 2, Turns: 95, Winner: game.Draw},
		},
	}

	path := filepath.Join(t.TempDir(), "lengths.json")
	if err := writeLengths(path, result); err != nil {
		t.Fatalf("writeLengths failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var turns []uint32
	if err := json.Unmarshal(data, &turns); err != nil {
		t.Fatalf("output is not a flat array of turn counts: %v", err)
	}
	want := []uint32{40, 172, 95}
	if len(turns) != len(want) {
		t.Fatalf("got %d counts, want %d", len(turns), len(want))
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Errorf("turns[%d] = %d, want %d", i, turns[i], want[i])
		}
	}
}

func TestRequestFromFlags(t *testing.T) {
	req, err := requestFromFlags("honorable", 500, "30, 22", 1, 2, "shuffled", "", 4, 9, true)
	if err != nil {
		t.Fatalf("requestFromFlags failed: %v", err)
	}
	if req.Split != [2]int{30, 22} {
		t.Errorf("split = %v", req.Split)
	}
	if req.Variant != "honorable" || req.Games != 500 || *req.Bounty != 2 {
		t.Errorf("unexpected request: %+v", req)
	}

	if _, err := requestFromFlags("standard", 1, "26", 1, 3, "shuffled", "", 0, 0, false); err == nil {
		t.Error("expected an error for a one-part split")
	}
	if _, err := requestFromFlags("standard", 1, "a,b", 1, 3, "shuffled", "", 0, 0, false); err == nil {
		t.Error("expected an error for a non-numeric split")
	}
}
