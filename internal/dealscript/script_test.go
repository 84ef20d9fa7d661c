package dealscript

import (
	"math/rand"
	"testing"

	"github.com/MJE43/war-sim-go/internal/deck"
)

func TestDealReturnsCards(t *testing.T) {
	s, err := New(`
function deal() {
	return {player1: [14, 14], player2: [2, 3, 4]};
}
`)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	p1, p2, err := s.Deal(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	if len(p1) != 2 || len(p2) != 3 {
		t.Fatalf("deal sizes = %d/%d, want 2/3", len(p1), len(p2))
	}
	for _, c := range p1 {
		if c.Rank != deck.Ace {
			t.Errorf("player1 card %v, want an ace", c)
		}
	}
	if p2[0].Rank != 2 || p2[1].Rank != 3 || p2[2].Rank != 4 {
		t.Errorf("player2 ranks = %v", p2)
	}
	// Suits cycle so multiple copies of a rank stay distinct cards.
	if p1[0].Suit == p1[1].Suit {
		t.Error("suits should cycle across a player's cards")
	}
}

func TestDealHelpers(t *testing.T) {
	s, err := New(`
function deal() {
	var ranks = packRanks(2);
	shuffle(ranks);
	var cut = 13 + randInt(1);
	return {player1: ranks.slice(0, cut), player2: ranks.slice(cut)};
}
`)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	p1, p2, err := s.Deal(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}
	if len(p1)+len(p2) != 26 {
		t.Fatalf("total cards = %d, want 26", len(p1)+len(p2))
	}

	// packRanks(2) holds two of every rank; the shuffled halves must still
	// form that multiset.
	counts := make(map[deck.Rank]int)
	for _, c := range p1 {
		counts[c.Rank]++
	}
	for _, c := range p2 {
		counts[c.Rank]++
	}
	for r := deck.MinRank; r <= deck.MaxRank; r++ {
		if counts[r] != 2 {
			t.Errorf("rank %v appears %d times, want 2", r, counts[r])
		}
	}
}

func TestDealIsSeedDriven(t *testing.T) {
	const src = `
function deal() {
	var ranks = packRanks(4);
	shuffle(ranks);
	return {player1: ranks.slice(0, 26), player2: ranks.slice(26)};
}
`
	s1, err := New(src)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s2, err := New(src)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	a1, a2, err := s1.Deal(rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}
	b1, b2, err := s2.Deal(rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	for i := range a1 {
		if a1[i] != b1[i] {
			t.Fatalf("same seed dealt different player1 decks at %d", i)
		}
	}
	for i := range a2 {
		if a2[i] != b2[i] {
			t.Fatalf("same seed dealt different player2 decks at %d", i)
		}
	}
}

func TestNewRejectsBrokenScripts(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", `function deal( {`},
		{"missing deal", `var x = 1;`},
		{"deal not a function", `var deal = 42;`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.src); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDealRejectsBadResults(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no return", `function deal() {}`},
		{"missing player2", `function deal() { return {player1: [2]}; }`},
		{"rank too low", `function deal() { return {player1: [1], player2: [2]}; }`},
		{"rank too high", `function deal() { return {player1: [2], player2: [15]}; }`},
		{"empty decks", `function deal() { return {player1: [], player2: []}; }`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.src)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if _, _, err := s.Deal(rand.New(rand.NewSource(1))); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDealScriptsCanLog(t *testing.T) {
	s, err := New(`
function deal() {
	log("dealing", 2);
	console.log("dealing again");
	return {player1: [2], player2: [3]};
}
`)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, _, err := s.Deal(rand.New(rand.NewSource(1))); err != nil {
		t.Errorf("Deal failed: %v", err)
	}
}

func TestTimedOutDealLeavesScriptUsable(t *testing.T) {
	s, err := New(`
var calls = 0;
function deal() {
	calls++;
	if (calls === 1) {
		while (true) {}
	}
	return {player1: [2], player2: [3]};
}
`)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, _, err := s.Deal(rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected the looping call to time out")
	}
	// The interrupted call must be fully stopped before the next one runs.
	p1, p2, err := s.Deal(rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("Deal after timeout failed: %v", err)
	}
	if len(p1) != 1 || len(p2) != 1 {
		t.Errorf("deal sizes = %d/%d, want 1/1", len(p1), len(p2))
	}
}

func TestSandboxBlocksEscapes(t *testing.T) {
	s, err := New(`
function deal() {
	if (typeof require !== "undefined") throw "require leaked";
	if (typeof eval !== "undefined") throw "eval leaked";
	return {player1: [2], player2: [3]};
}
`)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, _, err := s.Deal(rand.New(rand.NewSource(1))); err != nil {
		t.Errorf("sandboxed globals leaked: %v", err)
	}
}
