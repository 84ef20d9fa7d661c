// Package preset ships the named simulation setups from the original war
// experiments and loads user-defined ones from YAML.
package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MJE43/war-sim-go/internal/sim"
)

// Preset is a named, ready-to-run batch configuration.
type Preset struct {
	Name             string `yaml:"name" json:"name"`
	Description      string `yaml:"description,omitempty" json:"description,omitempty"`
	sim.BatchRequest `yaml:",inline"`
}

// acesScript pits the four aces against everything else.
const acesScript = `
function deal() {
	var p1 = [14, 14, 14, 14];
	var p2 = [];
	for (var r = 2; r <= 13; r++) {
		for (var i = 0; i < 4; i++) {
			p2.push(r);
		}
	}
	return {player1: p1, player2: p2};
}
`

// Builtin returns the stock experiment catalog.
func Builtin() []Preset {
	return []Preset{
		{
			Name:        "standard-shuffled",
			Description: "Standard war, one shuffled pack split 26/26",
			BatchRequest: sim.BatchRequest{
				Variant: "standard", Games: 100_000, Split: [2]int{26, 26},
			},
		},
		{
			Name:        "standard-mirrored",
			Description: "Standard war, both players hold half of every rank",
			BatchRequest: sim.BatchRequest{
				Variant: "standard", Games: 100_000, Deal: sim.DealMirrored,
			},
		},
		{
			Name:        "two-deck",
			Description: "Standard war with two packs, evenly split",
			BatchRequest: sim.BatchRequest{
				Variant: "standard", Games: 20_000, Packs: 2, Deal: sim.DealMirrored,
			},
		},
		{
			Name:        "twelve-deck",
			Description: "Standard war with twelve packs, evenly split",
			BatchRequest: sim.BatchRequest{
				Variant: "standard", Games: 2_000, Packs: 12, Deal: sim.DealMirrored,
			},
		},
		{
			Name:        "aces-vs-world",
			Description: "Player 1 holds the four aces against the other 48 cards",
			BatchRequest: sim.BatchRequest{
				Variant: "standard", Games: 100_000, Deal: sim.DealScript, Script: acesScript,
			},
		},
		{
			Name:        "honorable-shuffled",
			Description: "Honorable war, one shuffled pack split 26/26",
			BatchRequest: sim.BatchRequest{
				Variant: "honorable", Games: 100_000, Split: [2]int{26, 26},
			},
		},
		{
			Name:        "two-deck-honorable",
			Description: "Honorable war with two packs, evenly split",
			BatchRequest: sim.BatchRequest{
				Variant: "honorable", Games: 20_000, Packs: 2, Deal: sim.DealMirrored,
			},
		},
		{
			Name:        "twelve-deck-honorable",
			Description: "Honorable war with twelve packs, evenly split",
			BatchRequest: sim.BatchRequest{
				Variant: "honorable", Games: 2_000, Packs: 12, Deal: sim.DealMirrored,
			},
		},
		{
			Name:        "twelve-deck-doubly-honorable",
			Description: "Doubly honorable war with twelve packs, evenly split",
			BatchRequest: sim.BatchRequest{
				Variant: "doubly-honorable", Games: 2_000, Packs: 12, Deal: sim.DealMirrored,
			},
		},
	}
}

// file is the on-disk shape of a preset collection.
type file struct {
	Presets []Preset `yaml:"presets"`
}

// Load reads presets from a YAML file and validates each one.
func Load(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	for i := range f.Presets {
		p := &f.Presets[i]
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
		if err := p.BatchRequest.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return f.Presets, nil
}

// Find looks a preset up by name.
func Find(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
