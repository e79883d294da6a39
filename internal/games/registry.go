package games

import (
	"sort"

	"github.com/wackylabs/mathplay-go/internal/puzzle"
)

// registry holds all known variants by ID. Registration happens during init
// and startup catalog loading, before any concurrent access.
var registry = make(map[string]Variant)

// Register adds or replaces a variant.
func Register(v Variant) {
	registry[v.ID] = v
}

// Get retrieves a variant by ID.
func Get(id string) (Variant, bool) {
	v, ok := registry[id]
	return v, ok
}

// IDs returns all registered variant IDs, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns all registered variants, sorted by ID.
func List() []Variant {
	out := make([]Variant, 0, len(registry))
	for _, id := range IDs() {
		out = append(out, registry[id])
	}
	return out
}

// init registers the nine shipped games.
func init() {
	Register(Variant{
		ID:               "wacky-machine",
		Name:             "Wacky Machine Math",
		Mode:             puzzle.ModeSubsetSum,
		PartCount:        4,
		MaxSolutionLen:   3,
		KeepTargetOnMiss: true,
	})
	Register(Variant{
		ID:          "drone-adventure",
		Name:        "Drone Math Adventure",
		Mode:        puzzle.ModeSingleAnswer,
		OptionCount: 3,
		Ops:         []puzzle.Op{puzzle.OpAdd, puzzle.OpSub},
	})
	Register(Variant{
		ID:             "drone-rescue",
		Name:           "Drone Math Rescue",
		Mode:           puzzle.ModeSubsetSum,
		PartCount:      5,
		MaxSolutionLen: 3,
	})
	Register(Variant{
		ID:          "drone-catcher",
		Name:        "Drone Math Catcher",
		Mode:        puzzle.ModeSingleAnswer,
		OptionCount: 4,
		Ops:         []puzzle.Op{puzzle.OpAdd, puzzle.OpSub, puzzle.OpMul},
	})
	Register(Variant{
		ID:               "drone-delivery",
		Name:             "Drone Math Delivery",
		Mode:             puzzle.ModeSubsetSum,
		PartCount:        4,
		MaxSolutionLen:   2,
		KeepTargetOnMiss: true,
	})
	Register(Variant{
		ID:             "gear-works",
		Name:           "Gear Works",
		Mode:           puzzle.ModeSubsetSum,
		PartCount:      6,
		MaxSolutionLen: 3,
	})
	Register(Variant{
		ID:          "robo-factory",
		Name:        "Robo Factory",
		Mode:        puzzle.ModeSingleAnswer,
		OptionCount: 4,
		Ops:         []puzzle.Op{puzzle.OpMul},
		Spread:      8,
	})
	Register(Variant{
		ID:          "sky-courier",
		Name:        "Sky Courier",
		Mode:        puzzle.ModeSingleAnswer,
		OptionCount: 3,
		Ops:         []puzzle.Op{puzzle.OpAdd},
		Spread:      4,
		GoalScore:   8,
		LevelEvery:  4,
	})
	Register(Variant{
		ID:             "rocket-fuel",
		Name:           "Rocket Fuel",
		Mode:           puzzle.ModeSubsetSum,
		PartCount:      3,
		MaxSolutionLen: 2,
		LevelEvery:     5,
	})
}
