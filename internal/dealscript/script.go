// Package dealscript runs user-supplied scripts that produce the starting
// decks for a game. A script defines a deal() function returning
//
//	{player1: [ranks...], player2: [ranks...]}
//
// where each rank is an integer in [2,14]. Suits are assigned round-robin,
// which is harmless because suits never affect comparison.
package dealscript

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/MJE43/war-sim-go/internal/deck"
)

const (
	scriptInitTimeout = 2 * time.Second
	scriptCallTimeout = 1 * time.Second
)

// Script wraps a sandboxed goja runtime holding a compiled deal script. The
// runtime is not goroutine-safe, so calls are serialized; scripted deals are
// an experimentation feature, not the hot path.
type Script struct {
	mu      sync.Mutex
	runtime *goja.Runtime
	deal    goja.Callable

	// rng backs the shuffle/randInt globals for the duration of one Deal.
	rng *rand.Rand
}

// New compiles the script source and resolves its deal() function.
func New(source string) (*Script, error) {
	s := &Script{runtime: goja.New()}
	s.injectGlobals()

	if err := s.runWithTimeout(scriptInitTimeout, func() error {
		_, err := s.runtime.RunString(source)
		if err != nil {
			return fmt.Errorf("script execution error: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	fn := s.runtime.Get("deal")
	if fn == nil || goja.IsUndefined(fn) || goja.IsNull(fn) {
		return nil, fmt.Errorf("deal() function is not defined")
	}
	callable, ok := goja.AssertFunction(fn)
	if !ok {
		return nil, fmt.Errorf("deal is not a function")
	}
	s.deal = callable

	return s, nil
}

// injectGlobals registers the helpers available to deal scripts and blocks
// the runtime's escape hatches.
func (s *Script) injectGlobals() {
	rt := s.runtime

	// shuffle(array) — uniform in-place shuffle backed by the game's rng.
	rt.Set("shuffle", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || s.rng == nil {
			return goja.Undefined()
		}
		obj := call.Arguments[0].ToObject(rt)
		length := int(obj.Get("length").ToInteger())
		s.rng.Shuffle(length, func(i, j int) {
			ki, kj := strconv.Itoa(i), strconv.Itoa(j)
			vi, vj := obj.Get(ki), obj.Get(kj)
			obj.Set(ki, vj)
			obj.Set(kj, vi)
		})
		return call.Arguments[0]
	})

	// randInt(n) — integer in [0, n) from the game's rng.
	rt.Set("randInt", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || s.rng == nil {
			return rt.ToValue(0)
		}
		n := int(call.Arguments[0].ToInteger())
		if n <= 0 {
			return rt.ToValue(0)
		}
		return rt.ToValue(s.rng.Intn(n))
	})

	// packRanks(copies) — every rank repeated copies times, in order.
	rt.Set("packRanks", func(call goja.FunctionCall) goja.Value {
		copies := 1
		if len(call.Arguments) > 0 {
			copies = int(call.Arguments[0].ToInteger())
		}
		ranks := make([]int, 0, 13*copies)
		for r := int(deck.MinRank); r <= int(deck.MaxRank); r++ {
			for i := 0; i < copies; i++ {
				ranks = append(ranks, r)
			}
		}
		return rt.ToValue(ranks)
	})

	// log(args...) — script debugging output, one line per call.
	logFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, a := range call.Arguments {
			parts[i] = a.String()
		}
		log.Printf("dealscript: %s", strings.Join(parts, " "))
		return goja.Undefined()
	}
	rt.Set("log", logFn)
	console := rt.NewObject()
	console.Set("log", logFn)
	rt.Set("console", console)

	// Block dangerous globals.
	rt.Set("require", goja.Undefined())
	rt.Set("fetch", goja.Undefined())
	rt.Set("XMLHttpRequest", goja.Undefined())
	rt.Set("eval", goja.Undefined())
	rt.Set("Function", goja.Undefined())
}

// Deal calls the script's deal() function and converts the returned rank
// lists into cards. The provided rng backs shuffle/randInt for this call.
func (s *Script) Deal(rng *rand.Rand) (p1, p2 []deck.Card, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng = rng
	defer func() { s.rng = nil }()

	var result goja.Value
	err = s.runWithTimeout(scriptCallTimeout, func() error {
		v, callErr := s.deal(goja.Undefined())
		if callErr != nil {
			return fmt.Errorf("deal() error: %w", callErr)
		}
		result = v
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return nil, nil, fmt.Errorf("deal() returned no value")
	}
	obj := result.ToObject(s.runtime)

	p1, err = s.exportCards(obj.Get("player1"), "player1")
	if err != nil {
		return nil, nil, err
	}
	p2, err = s.exportCards(obj.Get("player2"), "player2")
	if err != nil {
		return nil, nil, err
	}
	if len(p1) == 0 && len(p2) == 0 {
		return nil, nil, fmt.Errorf("deal() produced no cards")
	}
	return p1, p2, nil
}

// exportCards converts a JS rank array into cards, cycling through the suits.
func (s *Script) exportCards(v goja.Value, field string) ([]deck.Card, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, fmt.Errorf("deal() result is missing %s", field)
	}

	var ranks []int
	if err := s.runtime.ExportTo(v, &ranks); err != nil {
		return nil, fmt.Errorf("deal() %s is not a rank array: %w", field, err)
	}

	cards := make([]deck.Card, 0, len(ranks))
	for i, r := range ranks {
		if r < int(deck.MinRank) || r > int(deck.MaxRank) {
			return nil, fmt.Errorf("deal() %s[%d] rank %d out of range [%d,%d]",
				field, i, r, deck.MinRank, deck.MaxRank)
		}
		cards = append(cards, deck.Card{
			Rank: deck.Rank(r),
			Suit: deck.Suit(i % deck.NumSuits),
		})
	}
	return cards, nil
}

func (s *Script) runWithTimeout(timeout time.Duration, fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		// Interrupt the runaway execution, then wait for the goroutine to
		// actually stop: the runtime and rng are shared state, and a
		// straggler must not touch them concurrently with a later call.
		s.runtime.Interrupt("script execution timeout")
		defer s.runtime.ClearInterrupt()
		if err := <-done; err != nil {
			return fmt.Errorf("script timed out: %w", err)
		}
		return fmt.Errorf("script timed out")
	}
}
