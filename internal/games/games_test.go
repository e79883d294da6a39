package games

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wackylabs/mathplay-go/internal/puzzle"
	"github.com/wackylabs/mathplay-go/internal/rng"
)

func TestBuiltinRegistry(t *testing.T) {
	ids := IDs()
	if len(ids) != 9 {
		t.Fatalf("registered variants = %d, want 9: %v", len(ids), ids)
	}

	want := []string{
		"drone-adventure", "drone-catcher", "drone-delivery", "drone-rescue",
		"gear-works", "robo-factory", "rocket-fuel", "sky-courier", "wacky-machine",
	}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("IDs() = %v, want %v", ids, want)
		}
	}

	for _, v := range List() {
		if err := v.validate(); err != nil {
			t.Errorf("built-in %q invalid: %v", v.ID, err)
		}
	}
}

func TestGetUnknownVariant(t *testing.T) {
	if _, ok := Get("no-such-game"); ok {
		t.Error("Get returned a variant for an unknown id")
	}
}

func TestVariantDealsValidPuzzles(t *testing.T) {
	for _, v := range List() {
		t.Run(v.ID, func(t *testing.T) {
			r := rng.NewSeeded(99)
			for level := 1; level <= 6; level++ {
				p := v.Next(r, level)
				if err := p.Validate(); err != nil {
					t.Fatalf("level %d: invalid puzzle: %v", level, err)
				}
				if p.Mode != v.Mode {
					t.Fatalf("level %d: mode = %q, want %q", level, p.Mode, v.Mode)
				}
			}
		})
	}
}

func TestReplacementKeepsSubsetSumTarget(t *testing.T) {
	v, ok := Get("wacky-machine")
	if !ok {
		t.Fatal("wacky-machine not registered")
	}

	r := rng.NewSeeded(4)
	prev := v.Next(r, 2)
	for i := 0; i < 20; i++ {
		next := v.Replacement(r, 2, prev)
		if next.Target != prev.Target {
			t.Fatalf("round %d: target changed from %d to %d", i, prev.Target, next.Target)
		}
		if err := next.Validate(); err != nil {
			t.Fatalf("round %d: invalid puzzle: %v", i, err)
		}
	}
}

func TestReplacementRegeneratesSingleAnswer(t *testing.T) {
	v, ok := Get("drone-adventure")
	if !ok {
		t.Fatal("drone-adventure not registered")
	}

	r := rng.NewSeeded(4)
	prev := v.Next(r, 1)
	next := v.Replacement(r, 1, prev)
	if err := next.Validate(); err != nil {
		t.Fatalf("invalid replacement: %v", err)
	}
	if next.Mode != puzzle.ModeSingleAnswer {
		t.Errorf("mode = %q, want %q", next.Mode, puzzle.ModeSingleAnswer)
	}
}

func TestSessionConfigMapping(t *testing.T) {
	v, ok := Get("sky-courier")
	if !ok {
		t.Fatal("sky-courier not registered")
	}

	cfg := v.SessionConfig()
	if cfg.GoalScore != 8 {
		t.Errorf("GoalScore = %d, want 8", cfg.GoalScore)
	}
	if cfg.LevelEvery != 4 {
		t.Errorf("LevelEvery = %d, want 4", cfg.LevelEvery)
	}
	if cfg.KeepTargetOnMiss {
		t.Error("KeepTargetOnMiss = true, want false")
	}
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`
variants:
  - id: number-garden
    name: Number Garden
    mode: subset-sum
    part_count: 5
    keep_target_on_miss: true
  - id: quick-quiz
    name: Quick Quiz
    mode: single-answer
    option_count: 4
    ops: ["+", "*"]
    goal_score: 12
`)

	variants, err := ParseCatalog(data)
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	if len(variants) != 2 {
		t.Fatalf("variants = %d, want 2", len(variants))
	}
	if variants[0].PartCount != 5 || !variants[0].KeepTargetOnMiss {
		t.Errorf("first variant parsed wrong: %+v", variants[0])
	}
	if variants[1].GoalScore != 12 || len(variants[1].Ops) != 2 {
		t.Errorf("second variant parsed wrong: %+v", variants[1])
	}
}

func TestParseCatalogCollectsAllErrors(t *testing.T) {
	data := []byte(`
variants:
  - id: ""
    name: ""
    mode: sideways
    part_count: 99
  - id: dup
    name: Dup
    mode: subset-sum
  - id: dup
    name: Dup Again
    mode: subset-sum
`)

	_, err := ParseCatalog(data)
	if err == nil {
		t.Fatal("ParseCatalog accepted an invalid catalog")
	}
	for _, needle := range []string{"no id", "no name", "unknown mode", "part_count", "duplicate id"} {
		if !strings.Contains(err.Error(), needle) {
			t.Errorf("error %q missing %q", err.Error(), needle)
		}
	}
}

func TestParseCatalogRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseCatalog([]byte("variants: [")); err == nil {
		t.Error("ParseCatalog accepted malformed YAML")
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variants.yaml")
	data := []byte(`
variants:
  - id: test-garden
    name: Test Garden
    mode: subset-sum
    part_count: 4
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadCatalog(path); err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	v, ok := Get("test-garden")
	if !ok {
		t.Fatal("catalog variant not registered")
	}
	if v.PartCount != 4 {
		t.Errorf("PartCount = %d, want 4", v.PartCount)
	}
}

func TestLoadCatalogOverridesBuiltin(t *testing.T) {
	orig, ok := Get("rocket-fuel")
	if !ok {
		t.Fatal("rocket-fuel not registered")
	}
	t.Cleanup(func() { Register(orig) })

	path := filepath.Join(t.TempDir(), "variants.yaml")
	data := []byte(`
variants:
  - id: rocket-fuel
    name: Rocket Fuel Deluxe
    mode: subset-sum
    part_count: 5
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadCatalog(path); err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	v, _ := Get("rocket-fuel")
	if v.Name != "Rocket Fuel Deluxe" || v.PartCount != 5 {
		t.Errorf("override not applied: %+v", v)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadCatalog succeeded on a missing file")
	}
}
