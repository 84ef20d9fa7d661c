package preset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinPresetsValidate(t *testing.T) {
	presets := Builtin()
	if len(presets) == 0 {
		t.Fatal("no builtin presets")
	}

	seen := make(map[string]bool)
	for _, p := range presets {
		if seen[p.Name] {
			t.Errorf("duplicate preset name %q", p.Name)
		}
		seen[p.Name] = true

		if err := p.BatchRequest.Validate(); err != nil {
			t.Errorf("preset %q does not validate: %v", p.Name, err)
		}
	}
}

func TestFind(t *testing.T) {
	presets := Builtin()

	p, ok := Find(presets, "honorable-shuffled")
	if !ok {
		t.Fatal("honorable-shuffled preset missing")
	}
	if p.Variant != "honorable" {
		t.Errorf("variant = %q, want honorable", p.Variant)
	}

	if _, ok := Find(presets, "no-such-preset"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `
presets:
  - name: quick-check
    description: small smoke batch
    variant: honorable
    games: 500
    split: [26, 26]
    seed: 42
  - name: uneven
    variant: standard
    games: 100
    split: [10, 42]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	presets, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("loaded %d presets, want 2", len(presets))
	}

	p := presets[0]
	if p.Name != "quick-check" || p.Variant != "honorable" || p.Games != 500 {
		t.Errorf("unexpected preset: %+v", p)
	}
	if p.Split != [2]int{26, 26} || p.Seed != 42 {
		t.Errorf("unexpected split/seed: %+v", p)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"bad split",
			"presets:\n  - name: broken\n    variant: standard\n    games: 10\n    split: [26, 27]\n",
		},
		{
			"missing name",
			"presets:\n  - variant: standard\n    games: 10\n    split: [26, 26]\n",
		},
		{
			"not yaml",
			"{{{{",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "presets.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
