// Package puzzle generates the arithmetic rounds behind the mini-games:
// subset-sum tile puzzles and single-answer multiple-choice questions.
// Every generated puzzle is guaranteed playable (a solution always exists)
// and generation never fails, whatever the level: out-of-range tuning is
// clamped, not rejected.
package puzzle

import (
	"fmt"

	"go.uber.org/multierr"
)

// Mode identifies the two puzzle families.
type Mode string

const (
	// ModeSubsetSum puzzles are solved by selecting a combination of parts
	// that sums exactly to the target (tiles, knobs, crates).
	ModeSubsetSum Mode = "subset-sum"
	// ModeSingleAnswer puzzles are solved by picking the one correct option
	// for a rendered expression.
	ModeSingleAnswer Mode = "single-answer"
)

// Op is an arithmetic operator for single-answer puzzles.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
)

// Puzzle is one round: a target value plus the numbers the player works
// with. A puzzle is immutable once generated; the session replaces it
// wholesale when the round resolves.
type Puzzle struct {
	Mode    Mode   `json:"mode"`
	Level   int    `json:"level"`
	Target  int    `json:"target"`
	Parts   []int  `json:"parts,omitempty"`
	Options []int  `json:"options,omitempty"`
	Prompt  string `json:"prompt,omitempty"`

	// CorrectIndex is the position of the correct option in a single-answer
	// puzzle. Excluded from JSON so transport layers cannot leak it to
	// clients by accident.
	CorrectIndex int `json:"-"`
}

// Params tunes one generation call. Zero values fall back to defaults and
// out-of-range values are clamped; see normalized.
type Params struct {
	Level          int  // difficulty tier, minimum 1
	PartCount      int  // subset-sum tiles, clamped to [3, 6]
	MaxSolutionLen int  // largest guaranteed-solution size, clamped to [1, 3]
	OptionCount    int  // single-answer options, clamped to [3, 6]
	Ops            []Op // allowed operators, defaults to {+}
	Spread         int  // distractor perturbation radius, clamped to [2, 12]
}

func (p Params) normalized() Params {
	if p.Level < 1 {
		p.Level = 1
	}
	p.PartCount = clamp(p.PartCount, 3, 6)
	p.MaxSolutionLen = clamp(p.MaxSolutionLen, 1, 3)
	p.OptionCount = clamp(p.OptionCount, 3, 6)
	if len(p.Ops) == 0 {
		p.Ops = []Op{OpAdd}
	}
	if p.Spread == 0 {
		p.Spread = 6
	}
	p.Spread = clamp(p.Spread, 2, 12)
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Solvable reports whether some non-empty subset of parts sums exactly to
// target. It walks the dynamic set of reachable sums, so cost is bounded by
// len(parts) * target.
func Solvable(parts []int, target int) bool {
	if target <= 0 {
		return false
	}
	possible := map[int]struct{}{0: {}}
	for _, part := range parts {
		if part <= 0 || part > target {
			continue
		}
		sums := make([]int, 0, len(possible))
		for s := range possible {
			if s+part <= target {
				sums = append(sums, s+part)
			}
		}
		for _, s := range sums {
			possible[s] = struct{}{}
		}
		if _, ok := possible[target]; ok {
			return true
		}
	}
	_, ok := possible[target]
	return ok
}

// SolveSubset returns one subset of parts summing exactly to target, or nil
// when none exists. Parts are consumed at most once each; which witness is
// returned is unspecified when several exist.
func SolveSubset(parts []int, target int) []int {
	if target <= 0 {
		return nil
	}
	type step struct {
		prev int
		part int
	}
	from := map[int]step{0: {prev: -1}}
	for _, part := range parts {
		if part <= 0 || part > target {
			continue
		}
		sums := make([]int, 0, len(from))
		for s := range from {
			sums = append(sums, s)
		}
		for _, s := range sums {
			next := s + part
			if next > target {
				continue
			}
			if _, seen := from[next]; seen {
				continue
			}
			from[next] = step{prev: s, part: part}
		}
		if _, ok := from[target]; ok {
			break
		}
	}
	if _, ok := from[target]; !ok {
		return nil
	}
	var subset []int
	for s := target; s != 0; {
		st := from[s]
		subset = append(subset, st.part)
		s = st.prev
	}
	return subset
}

// ContainsMultiset reports whether selection can be drawn from parts,
// counting duplicates: two 3s may only be selected if parts holds two 3s.
func ContainsMultiset(parts, selection []int) bool {
	available := make(map[int]int, len(parts))
	for _, p := range parts {
		available[p]++
	}
	for _, v := range selection {
		if available[v] == 0 {
			return false
		}
		available[v]--
	}
	return true
}

// Validate checks the generation invariants: solvability for subset-sum,
// option uniqueness for single-answer, non-negative values everywhere.
// All problems found are reported together.
func (p *Puzzle) Validate() error {
	var err error
	switch p.Mode {
	case ModeSubsetSum:
		if p.Target < 1 {
			err = multierr.Append(err, fmt.Errorf("subset-sum target %d below 1", p.Target))
		}
		if n := len(p.Parts); n < 3 || n > 6 {
			err = multierr.Append(err, fmt.Errorf("part count %d outside [3, 6]", n))
		}
		for i, v := range p.Parts {
			if v < 1 {
				err = multierr.Append(err, fmt.Errorf("part[%d] = %d below 1", i, v))
			}
		}
		if !Solvable(p.Parts, p.Target) {
			err = multierr.Append(err, fmt.Errorf("no subset of %v sums to %d", p.Parts, p.Target))
		}
	case ModeSingleAnswer:
		if p.Target < 0 {
			err = multierr.Append(err, fmt.Errorf("answer %d is negative", p.Target))
		}
		if n := len(p.Options); n < 3 || n > 6 {
			err = multierr.Append(err, fmt.Errorf("option count %d outside [3, 6]", n))
		}
		if p.CorrectIndex < 0 || p.CorrectIndex >= len(p.Options) {
			err = multierr.Append(err, fmt.Errorf("correct index %d out of range", p.CorrectIndex))
			return err
		}
		if p.Options[p.CorrectIndex] != p.Target {
			err = multierr.Append(err, fmt.Errorf("option[%d] = %d, want answer %d", p.CorrectIndex, p.Options[p.CorrectIndex], p.Target))
		}
		seen := make(map[int]bool, len(p.Options))
		matches := 0
		for i, v := range p.Options {
			if v < 0 {
				err = multierr.Append(err, fmt.Errorf("option[%d] = %d is negative", i, v))
			}
			if seen[v] {
				err = multierr.Append(err, fmt.Errorf("duplicate option %d", v))
			}
			seen[v] = true
			if v == p.Target {
				matches++
			}
		}
		if matches != 1 {
			err = multierr.Append(err, fmt.Errorf("%d options equal the answer, want exactly 1", matches))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown mode %q", p.Mode))
	}
	return err
}
