package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MJE43/war-sim-go/internal/game"
	"github.com/MJE43/war-sim-go/internal/preset"
	"github.com/MJE43/war-sim-go/internal/sim"
)

func main() {
	var (
		presetName  = flag.String("preset", "", "run a named preset instead of building a request from flags")
		presetsFile = flag.String("presets", "", "load presets from a YAML file (default: built-ins)")
		runAll      = flag.Bool("all", false, "run every preset")
		listPresets = flag.Bool("list", false, "list available presets and exit")

		variantName = flag.String("variant", "standard", "rule variant (standard, honorable, doubly-honorable)")
		games       = flag.Int("games", 100_000, "number of games in the batch")
		split       = flag.String("split", "26,26", "initial deck split as p1,p2")
		packs       = flag.Int("packs", 1, "number of 52-card packs in play")
		bounty      = flag.Int("bounty", game.DefaultBounty, "face-down cards staked per war")
		deal        = flag.String("deal", "shuffled", "deal mode (shuffled, mirrored, script)")
		scriptFile  = flag.String("script", "", "deal script file (required for -deal script)")

		workers     = flag.Int("workers", 0, "worker pool size (0 = one per CPU)")
		seed        = flag.Int64("seed", 0, "master seed (0 = seed from the clock)")
		lengthsFile = flag.String("lengths", "", "write per-game turn counts to this JSON file")
	)
	flag.Parse()

	presets, err := loadPresets(*presetsFile)
	if err != nil {
		log.Fatalf("load presets: %v", err)
	}

	if *listPresets {
		for _, p := range presets {
			fmt.Printf("%-28s %s\n", p.Name, p.Description)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	simulator := sim.NewSimulator()

	switch {
	case *runAll:
		for _, p := range presets {
			runOne(ctx, simulator, p.Name, p.BatchRequest, *lengthsFile)
		}

	case *presetName != "":
		p, ok := preset.Find(presets, *presetName)
		if !ok {
			log.Fatalf("unknown preset %q (try -list)", *presetName)
		}
		runOne(ctx, simulator, p.Name, p.BatchRequest, *lengthsFile)

	default:
		req, err := requestFromFlags(*variantName, *games, *split, *packs, *bounty, *deal, *scriptFile, *workers, *seed, *lengthsFile != "")
		if err != nil {
			log.Fatal(err)
		}
		runOne(ctx, simulator, fmt.Sprintf("%s %s", req.Variant, *split), req, *lengthsFile)
	}
}

func loadPresets(path string) ([]preset.Preset, error) {
	if path == "" {
		return preset.Builtin(), nil
	}
	return preset.Load(path)
}

func requestFromFlags(variant string, games int, split string, packs, bounty int,
	deal, scriptFile string, workers int, seed int64, collect bool) (sim.BatchRequest, error) {

	var req sim.BatchRequest

	parts := strings.Split(split, ",")
	if len(parts) != 2 {
		return req, fmt.Errorf("split must be two comma-separated counts, got %q", split)
	}
	s1, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	s2, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return req, fmt.Errorf("split must be two comma-separated counts, got %q", split)
	}

	req = sim.BatchRequest{
		Variant:        variant,
		Games:          games,
		Split:          [2]int{s1, s2},
		Packs:          packs,
		Bounty:         &bounty,
		Deal:           sim.DealMode(deal),
		Workers:        workers,
		Seed:           seed,
		CollectLengths: collect,
	}

	if scriptFile != "" {
		source, err := os.ReadFile(scriptFile)
		if err != nil {
			return req, fmt.Errorf("read script: %w", err)
		}
		req.Script = string(source)
	}

	return req, nil
}

func runOne(ctx context.Context, simulator *sim.Simulator, label string, req sim.BatchRequest, lengthsFile string) {
	if lengthsFile != "" {
		req.CollectLengths = true
	}

	result, err := simulator.Run(ctx, req)
	if err != nil {
		log.Fatalf("%s: %v", label, err)
	}

	report(label, req, result)

	if result.Interrupted {
		log.Printf("interrupted: stats cover %s completed games", humanize.Comma(int64(result.Stats.Games)))
	}

	if lengthsFile != "" {
		if err := writeLengths(lengthsFile, result); err != nil {
			log.Fatalf("write lengths: %v", err)
		}
		fmt.Printf("wrote %s game lengths to %s\n", humanize.Comma(int64(len(result.Lengths))), lengthsFile)
	}
}

func report(label string, req sim.BatchRequest, result *sim.BatchResult) {
	st := result.Stats

	fmt.Printf("=== %s ===\n", label)
	fmt.Printf("games:       %s in %s (seed %d)\n",
		humanize.Comma(int64(st.Games)), result.Duration.Round(time.Millisecond), result.Seed)
	fmt.Printf("outcomes:    p1 %s / p2 %s / draws %s\n",
		humanize.Comma(int64(st.P1Wins)), humanize.Comma(int64(st.P2Wins)), humanize.Comma(int64(st.Draws)))
	fmt.Printf("mean score:  Player 1 wins %.2f%% of the time\n", st.MeanScore()*100)
	fmt.Printf("mean turns:  %.1f +/- %.1f\n", st.MeanTurns(), st.StddevTurns())
	fmt.Println()
}

// writeLengths dumps the per-game turn counts as a flat JSON array, the shape
// histogram tooling expects.
func writeLengths(path string, result *sim.BatchResult) error {
	turns := make([]uint32, len(result.Lengths))
	for i, l := range result.Lengths {
		turns[i] = l.Turns
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(turns)
}
