package game

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/MJE43/war-sim-go/internal/deck"
)

// Outcome identifies how a completed game ended.
type Outcome int8

const (
	Player1Won Outcome = iota
	Player2Won
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Player1Won:
		return "player1"
	case Player2Won:
		return "player2"
	default:
		return "draw"
	}
}

// MarshalJSON renders the outcome by name so every export of a winner field
// uses the same strings as the stored form.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON accepts the names produced by MarshalJSON.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "player1":
		*o = Player1Won
	case "player2":
		*o = Player2Won
	case "draw":
		*o = Draw
	default:
		return fmt.Errorf("unknown outcome %q", s)
	}
	return nil
}

// Result is the record produced exactly once per completed game.
type Result struct {
	Winner Outcome `json:"winner"`
	Turns  uint32  `json:"turns"`
}

// DefaultBounty is the number of face-down cards each player stakes during a
// war. The classic rule is three down, one up.
const DefaultBounty = 3

// Game is the state of a single game of war between two players. It owns its
// random source, so concurrent games never contend.
type Game struct {
	rng     *rand.Rand
	p1, p2  *deck.Player
	variant Variant
	bounty  int

	// pot accumulates every card at stake in the current round, including
	// war bounty. Reused across rounds to avoid per-round allocation.
	pot []deck.Card
}

// New creates (but does not play) a game. bounty is the number of face-down
// cards staked per war; pass DefaultBounty for the classic rule.
func New(rng *rand.Rand, p1, p2 *deck.Player, variant Variant, bounty int) *Game {
	return &Game{
		rng:     rng,
		p1:      p1,
		p2:      p2,
		variant: variant,
		bounty:  bounty,
	}
}

// playRound resolves one full face-off, escalating through any wars. turns is
// the number of face-up comparisons made. When over is true the game ended
// inside the round because a player could not produce a determiner, and
// winner is the final game outcome; otherwise winner names the round winner
// and the pot is theirs to claim.
func (g *Game) playRound() (turns uint32, winner Outcome, over bool) {
	g.pot = g.pot[:0]

	for {
		c1, ok1 := g.p1.Draw(g.rng)
		c2, ok2 := g.p2.Draw(g.rng)
		switch {
		case !ok1 && !ok2:
			return turns, Draw, true
		case !ok1:
			return turns, Player2Won, true
		case !ok2:
			return turns, Player1Won, true
		}

		turns++

		switch {
		case c1.Beats(c2):
			g.award(c1, c2)
			return turns, Player1Won, false
		case c2.Beats(c1):
			g.award(c2, c1)
			return turns, Player2Won, false
		default:
			// War. Both face-up cards join the pot, then each player stakes
			// face-down bounty cards and the loop draws new determiners.
			g.pot = append(g.pot, c1, c2)
			g.stakeBounty(g.p1)
			g.stakeBounty(g.p2)
		}
	}
}

// award applies the variant rule to a decided battle. The winning card always
// joins the pot; the losing card joins it only if the variant discards rather
// than removes it.
func (g *Game) award(winning, losing deck.Card) {
	g.pot = append(g.pot, winning)
	if g.variant.Resolve(winning, losing) == Discard {
		g.pot = append(g.pot, losing)
	}
}

// stakeBounty moves up to g.bounty face-down cards into the pot. A short
// stack always reserves one card so the player can still produce a face-up
// determiner; their last card decides the war, exactly as if it had been
// played face-up directly.
func (g *Game) stakeBounty(p *deck.Player) {
	n := p.Cards() - 1
	if n > g.bounty {
		n = g.bounty
	}
	for i := 0; i < n; i++ {
		c, _ := p.Draw(g.rng)
		g.pot = append(g.pot, c)
	}
}

// Play runs the game to completion.
//
// Turn convention: every face-up comparison counts as one turn, including
// each extra comparison inside a war escalation. A round that escalates
// through two wars therefore adds three turns, not one.
func (g *Game) Play() Result {
	var turns uint32
	for {
		t, winner, over := g.playRound()
		turns += t
		if over {
			return Result{Winner: winner, Turns: turns}
		}
		if winner == Player1Won {
			g.p1.Claim(g.pot...)
		} else {
			g.p2.Claim(g.pot...)
		}
	}
}

// totalCards is the number of cards still in play across both players. It
// excludes the in-flight pot, so it is only meaningful between rounds.
func (g *Game) totalCards() int {
	return g.p1.Cards() + g.p2.Cards()
}
