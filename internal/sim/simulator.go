package sim

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/MJE43/war-sim-go/internal/deck"
	"github.com/MJE43/war-sim-go/internal/game"
)

// Simulator runs batches of independent games across a worker pool. Games
// share nothing but the job channel; each owns its players and its rng.
type Simulator struct {
	workerCount int
}

// NewSimulator creates a simulator defaulting to one worker per CPU.
func NewSimulator() *Simulator {
	return &Simulator{workerCount: runtime.GOMAXPROCS(0)}
}

// GameLength is one game's turn count, kept only when a batch asks for the
// raw length distribution.
type GameLength struct {
	Index  int          `json:"index"`
	Turns  uint32       `json:"turns"`
	Winner game.Outcome `json:"winner"`
}

// BatchResult is the outcome of one batch invocation.
type BatchResult struct {
	Stats RunStats
	// Lengths is populated only when the request sets CollectLengths,
	// ordered by game index.
	Lengths []GameLength
	// Seed is the master seed actually used; echoing it makes a clock-seeded
	// batch reproducible after the fact.
	Seed     int64
	Duration time.Duration
	// Interrupted reports that the context was cancelled before every game
	// finished. Stats cover the games that did complete.
	Interrupted bool
}

type gameJob struct {
	index int
	seed  int64
}

type workerOut struct {
	stats   RunStats
	lengths []GameLength
	err     error
}

// Run executes a batch. The request is validated and the dealer (including
// any deal script) is built up front, so a bad configuration fails before a
// single game runs.
func (s *Simulator) Run(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	variant, _ := game.VariantByName(req.variantName())
	d, err := newDealer(&req)
	if err != nil {
		return nil, err
	}

	// A child context lets Run unblock the job generator on early exit.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := req.Workers
	if workers == 0 {
		workers = s.workerCount
	}
	if workers > req.Games {
		workers = req.Games
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	jobs := make(chan gameJob, workers*2)
	outs := make(chan workerOut, workers)

	start := time.Now()

	for w := 0; w < workers; w++ {
		go s.worker(ctx, jobs, outs, d, variant, req.bounty(), req.CollectLengths)
	}

	// Per-game seeds are derived from the master seed in game order, so the
	// same master seed replays the same set of games regardless of how they
	// land on workers.
	go func() {
		defer close(jobs)
		master := rand.New(rand.NewSource(seed))
		for i := 0; i < req.Games; i++ {
			job := gameJob{index: i, seed: master.Int63()}
			select {
			case jobs <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	result := &BatchResult{Seed: seed}
	for w := 0; w < workers; w++ {
		out := <-outs
		if out.err != nil && err == nil {
			err = out.err
		}
		result.Stats.Merge(out.stats)
		result.Lengths = append(result.Lengths, out.lengths...)
	}
	if err != nil {
		return nil, err
	}

	if req.CollectLengths {
		sort.Slice(result.Lengths, func(i, j int) bool {
			return result.Lengths[i].Index < result.Lengths[j].Index
		})
	}

	result.Duration = time.Since(start)
	result.Interrupted = ctx.Err() != nil
	return result, nil
}

// worker plays complete games from the job channel and emits one partial
// aggregate when the channel drains. Per-worker aggregation keeps the hot
// loop free of locks.
func (s *Simulator) worker(ctx context.Context, jobs <-chan gameJob, outs chan<- workerOut,
	d dealer, variant game.Variant, bounty int, collect bool) {

	var out workerOut

	for job := range jobs {
		select {
		case <-ctx.Done():
			outs <- out
			return
		default:
		}

		res, err := playOne(d, variant, bounty, job.seed)
		if err != nil {
			out.err = err
			outs <- out
			return
		}

		out.stats.Add(res)
		if collect {
			out.lengths = append(out.lengths, GameLength{
				Index:  job.index,
				Turns:  res.Turns,
				Winner: res.Winner,
			})
		}
	}

	outs <- out
}

// playOne deals and plays a single game from a derived seed.
func playOne(d dealer, variant game.Variant, bounty int, seed int64) (game.Result, error) {
	rng := rand.New(rand.NewSource(seed))
	c1, c2, err := d.Deal(rng)
	if err != nil {
		return game.Result{}, err
	}
	g := game.New(rng, deck.NewPlayer(c1...), deck.NewPlayer(c2...), variant, bounty)
	return g.Play(), nil
}

// RunGame plays one game with a shuffled split. It is the single-game entry
// point for tests and custom batch drivers.
func RunGame(variant game.Variant, split [2]int, packs, bounty int, seed int64) game.Result {
	if packs <= 0 {
		packs = 1
	}
	rng := rand.New(rand.NewSource(seed))
	cards := deck.NewStandard(packs)
	cards.Shuffle(rng)
	p1 := deck.NewPlayer(cards[:split[0]]...)
	p2 := deck.NewPlayer(cards[split[0]:]...)
	return game.New(rng, p1, p2, variant, bounty).Play()
}
