package puzzle

import "github.com/wackylabs/mathplay-go/internal/rng"

// GenerateSubsetSum produces a tile puzzle: a target and PartCount parts of
// which some 1..MaxSolutionLen-element subset is guaranteed to sum exactly
// to the target.
func GenerateSubsetSum(r *rng.Rand, p Params) *Puzzle {
	p = p.normalized()
	target := r.IntBetween(subsetTargetLo(p.Level), subsetTargetHi(p.Level))
	return buildSubsetPuzzle(r, target, p)
}

// RegenerateParts produces a fresh set of parts for an existing target.
// Tile variants use this after a miss: same goal, new tiles.
func RegenerateParts(r *rng.Rand, target int, p Params) *Puzzle {
	p = p.normalized()
	if target < 1 {
		target = 1
	}
	return buildSubsetPuzzle(r, target, p)
}

// subsetTargetLo and subsetTargetHi scale the target range with the level.
// Level 1 yields [3, 9]; every level widens and raises the band.
func subsetTargetLo(level int) int {
	return 2*level + 1
}

func subsetTargetHi(level int) int {
	return 5*level + 4
}

func buildSubsetPuzzle(r *rng.Rand, target int, p Params) *Puzzle {
	// Planted solution: all but the last value drawn within the shrinking
	// remaining budget, the last absorbs the remainder so the sum is exact.
	size := r.IntBetween(1, p.MaxSolutionLen)
	if size > p.PartCount {
		size = p.PartCount
	}
	if size > target {
		size = target
	}
	parts := make([]int, 0, p.PartCount)
	remaining := target
	for i := 0; i < size-1; i++ {
		most := remaining - (size - i - 1)
		if most < 1 {
			most = 1
		}
		v := r.IntBetween(1, most)
		parts = append(parts, v)
		remaining -= v
	}
	parts = append(parts, remaining)

	for len(parts) < p.PartCount {
		parts = append(parts, r.IntBetween(1, target+3))
	}
	r.ShuffleInPlace(parts)

	// The construction above cannot produce an unsolvable set, but the
	// session depends on it absolutely, so verify and repair rather than
	// trust.
	if !Solvable(parts, target) {
		repairParts(r, parts, target)
	}

	return &Puzzle{
		Mode:   ModeSubsetSum,
		Level:  p.Level,
		Target: target,
		Parts:  parts,
	}
}

// repairParts overwrites the leading parts with a split of target, restoring
// solvability in place.
func repairParts(r *rng.Rand, parts []int, target int) {
	if target < 2 || len(parts) < 2 {
		parts[0] = target
		return
	}
	a := r.IntBetween(1, target-1)
	parts[0] = a
	parts[1] = target - a
}
