package puzzle

import (
	"fmt"

	"github.com/wackylabs/mathplay-go/internal/rng"
)

// GenerateArithmetic produces a multiple-choice question: an "a op b"
// expression, its answer, and OptionCount-1 distractors. Subtraction is
// ordered so the answer is never negative; multiplication stays in
// times-table range.
func GenerateArithmetic(r *rng.Rand, p Params) *Puzzle {
	p = p.normalized()

	idx, err := r.PickIndex(len(p.Ops))
	if err != nil {
		idx = 0
	}
	op := p.Ops[idx]

	var a, b, answer int
	switch op {
	case OpSub:
		a = r.IntBetween(1, operandHi(p.Level))
		b = r.IntBetween(0, a)
		answer = a - b
	case OpMul:
		a = r.IntBetween(1, factorHi(p.Level))
		b = r.IntBetween(1, factorHi(p.Level))
		answer = a * b
	default:
		a = r.IntBetween(1, operandHi(p.Level))
		b = r.IntBetween(1, operandHi(p.Level))
		answer = a + b
	}

	options := make([]int, 0, p.OptionCount)
	options = append(options, answer)
	options = append(options, Distractors(r, answer, p.OptionCount-1, p.Spread)...)
	r.ShuffleInPlace(options)

	correct := 0
	for i, v := range options {
		if v == answer {
			correct = i
			break
		}
	}

	return &Puzzle{
		Mode:         ModeSingleAnswer,
		Level:        p.Level,
		Target:       answer,
		Options:      options,
		Prompt:       fmt.Sprintf("%d %s %d", a, op, b),
		CorrectIndex: correct,
	}
}

// operandHi is the upper operand bound for + and - at a level; never below
// a span of 3 so IntBetween always has room.
func operandHi(level int) int {
	hi := 5 + 3*level
	if hi < 4 {
		hi = 4
	}
	return hi
}

// factorHi limits multiplication factors to what a times-table player can
// check: 3 at level 1, growing to 12.
func factorHi(level int) int {
	hi := 2 + level
	if hi < 3 {
		hi = 3
	}
	if hi > 12 {
		hi = 12
	}
	return hi
}
