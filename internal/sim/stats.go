package sim

import (
	"math"

	"github.com/MJE43/war-sim-go/internal/game"
)

// RunStats accumulates the outcomes of a batch of games. Turn counts are
// folded in with Welford's online algorithm so the mean and variance stay
// numerically stable across hundreds of thousands of samples without keeping
// them all in memory.
type RunStats struct {
	Games  uint64 `json:"games"`
	P1Wins uint64 `json:"p1_wins"`
	P2Wins uint64 `json:"p2_wins"`
	Draws  uint64 `json:"draws"`

	mean float64
	m2   float64
}

// Add folds one game result into the aggregate.
func (s *RunStats) Add(r game.Result) {
	switch r.Winner {
	case game.Player1Won:
		s.P1Wins++
	case game.Player2Won:
		s.P2Wins++
	default:
		s.Draws++
	}

	s.Games++
	x := float64(r.Turns)
	delta := x - s.mean
	s.mean += delta / float64(s.Games)
	s.m2 += delta * (x - s.mean)
}

// Merge folds another partial aggregate into s. Workers each keep their own
// RunStats and merge at the end of a batch, so no lock is taken per game.
func (s *RunStats) Merge(o RunStats) {
	if o.Games == 0 {
		return
	}
	if s.Games == 0 {
		*s = o
		return
	}

	n1 := float64(s.Games)
	n2 := float64(o.Games)
	delta := o.mean - s.mean
	s.mean += delta * n2 / (n1 + n2)
	s.m2 += o.m2 + delta*delta*n1*n2/(n1+n2)

	s.Games += o.Games
	s.P1Wins += o.P1Wins
	s.P2Wins += o.P2Wins
	s.Draws += o.Draws
}

// MeanTurns returns the mean game length in turns.
func (s *RunStats) MeanTurns() float64 {
	return s.mean
}

// VarianceTurns returns the population variance of the game length.
func (s *RunStats) VarianceTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.m2 / float64(s.Games)
}

// StddevTurns returns the standard deviation of the game length.
func (s *RunStats) StddevTurns() float64 {
	return math.Sqrt(s.VarianceTurns())
}

// P1WinRate returns the fraction of all games player 1 won outright.
func (s *RunStats) P1WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.P1Wins) / float64(s.Games)
}

// MeanScore scores each game 1 for a player 1 win, 0 for a loss and 0.5 for
// a draw, matching the conventional match-score reading of a batch.
func (s *RunStats) MeanScore() float64 {
	if s.Games == 0 {
		return 0
	}
	return (float64(s.P1Wins) + 0.5*float64(s.Draws)) / float64(s.Games)
}
