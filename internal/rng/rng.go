// Package rng provides the bounded randomness primitives the puzzle
// generators are built on. All randomness in the engine flows through a
// *Rand so that a session created from a seed replays identically.
package rng

import (
	"errors"
	"math/rand"
	"time"
)

// ErrEmptyInput is returned when a selection is requested from an empty
// sequence. It signals a generator bug, not a runtime condition.
var ErrEmptyInput = errors.New("rng: empty input sequence")

// Rand is a seedable random source.
type Rand struct {
	seed int64
	src  *rand.Rand
}

// New creates a Rand seeded from the wall clock.
func New() *Rand {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a deterministic Rand. The same seed produces the same
// sequence of puzzles.
func NewSeeded(seed int64) *Rand {
	return &Rand{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this Rand was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// IntBetween returns a uniform integer in [min, max], inclusive on both
// ends. A max below min is clamped to min rather than rejected: bound
// arithmetic at extreme levels must degrade, never crash.
func (r *Rand) IntBetween(min, max int) int {
	if max < min {
		max = min
	}
	return min + r.src.Intn(max-min+1)
}

// Float64 returns a uniform float in [0, 1).
func (r *Rand) Float64() float64 {
	return r.src.Float64()
}

// Shuffled returns a uniformly random permutation of values. The input
// slice is not modified.
func (r *Rand) Shuffled(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	r.ShuffleInPlace(out)
	return out
}

// ShuffleInPlace permutes values in place (Fisher-Yates).
func (r *Rand) ShuffleInPlace(values []int) {
	r.src.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}

// PickOne returns a uniformly chosen element of values.
func (r *Rand) PickOne(values []int) (int, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	return values[r.src.Intn(len(values))], nil
}

// PickIndex returns a uniformly chosen index into a sequence of length n.
func (r *Rand) PickIndex(n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyInput
	}
	return r.src.Intn(n), nil
}

// WeightedIndex returns an index chosen with probability proportional to
// its weight. Non-positive weights contribute nothing; a weightless input
// is an ErrEmptyInput.
func (r *Rand) WeightedIndex(weights []int) (int, error) {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0, ErrEmptyInput
	}
	roll := r.src.Intn(total)
	cumulative := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if roll < cumulative {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}
