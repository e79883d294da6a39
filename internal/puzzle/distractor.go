package puzzle

import (
	"errors"

	"github.com/wackylabs/mathplay-go/internal/rng"
)

// distractorRetryBudget bounds the rejection-sampling stage. The search
// space dwarfs the requested count in practice, so the budget only trips
// when spread is pathologically tight relative to count.
const distractorRetryBudget = 200

// errRetryBudget reports that sampling could not place enough unique
// distractors. It never leaves the package: Distractors recovers with the
// deterministic fallback sequence.
var errRetryBudget = errors.New("puzzle: distractor retry budget exhausted")

// Distractors returns count distinct non-negative values near answer, none
// equal to it. Sampling perturbs the answer by up to spread in either
// direction; if the retry budget runs out the remainder is filled from the
// deterministic sequence answer+1, answer-1, answer+2, ... so the call
// always terminates with a full set.
func Distractors(r *rng.Rand, answer, count, spread int) []int {
	if count <= 0 {
		return nil
	}
	if spread < 1 {
		spread = 1
	}
	values, err := sampleDistractors(r, answer, count, spread)
	if err != nil {
		values = fillDeterministic(answer, count, values)
	}
	return values
}

func sampleDistractors(r *rng.Rand, answer, count, spread int) ([]int, error) {
	values := make([]int, 0, count)
	seen := map[int]bool{answer: true}
	for attempts := 0; attempts < distractorRetryBudget; attempts++ {
		if len(values) == count {
			return values, nil
		}
		delta := r.IntBetween(-spread, spread)
		if delta == 0 {
			continue
		}
		candidate := answer + delta
		if candidate < 0 {
			// Reflect below-zero candidates back into range instead of
			// discarding them.
			candidate = -candidate + 1
		}
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		values = append(values, candidate)
	}
	if len(values) == count {
		return values, nil
	}
	return values, errRetryBudget
}

// fillDeterministic tops partial up to count values by walking outward from
// the answer. The upward arm is unbounded, so termination is guaranteed no
// matter how much of the neighborhood sampling already consumed.
func fillDeterministic(answer, count int, partial []int) []int {
	seen := map[int]bool{answer: true}
	for _, v := range partial {
		seen[v] = true
	}
	values := partial
	for delta := 1; len(values) < count; delta++ {
		for _, candidate := range [2]int{answer + delta, answer - delta} {
			if len(values) == count {
				break
			}
			if candidate < 0 || seen[candidate] {
				continue
			}
			seen[candidate] = true
			values = append(values, candidate)
		}
	}
	return values
}
