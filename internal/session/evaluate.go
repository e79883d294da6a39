package session

import "github.com/wackylabs/mathplay-go/internal/puzzle"

// Outcome classifies one answer attempt. TooHigh is a distinguishable flavor
// of wrong for subset-sum puzzles whose selection overshot the target; the
// machine penalizes it exactly like OutcomeIncorrect, clients may render it
// differently.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeTooHigh   Outcome = "too_high"
)

// Submission is one answer attempt. For subset-sum puzzles fill Parts with
// the selected values; for single-answer puzzles set either OptionIndex or
// Value. A submission is transient: evaluated once, then discarded.
type Submission struct {
	Parts       []int `json:"parts,omitempty"`
	OptionIndex *int  `json:"option_index,omitempty"`
	Value       *int  `json:"value,omitempty"`
}

// PartsSubmission selects part values of a subset-sum puzzle.
func PartsSubmission(parts ...int) Submission {
	return Submission{Parts: parts}
}

// OptionSubmission picks an option of a single-answer puzzle by position.
func OptionSubmission(index int) Submission {
	return Submission{OptionIndex: &index}
}

// ValueSubmission answers a single-answer puzzle by raw value.
func ValueSubmission(v int) Submission {
	return Submission{Value: &v}
}

// Evaluate scores a submission against a puzzle. It is a pure predicate:
// no state is touched, the caller applies the consequences. Out-of-range
// option indexes and empty selections are plain incorrect, never panics.
// Whether the selected parts were actually drawn from the puzzle is a
// transport concern checked before Evaluate is reached.
func Evaluate(p *puzzle.Puzzle, sub Submission) Outcome {
	switch p.Mode {
	case puzzle.ModeSubsetSum:
		if len(sub.Parts) == 0 {
			return OutcomeIncorrect
		}
		sum := 0
		for _, v := range sub.Parts {
			sum += v
		}
		switch {
		case sum == p.Target:
			return OutcomeCorrect
		case sum > p.Target:
			return OutcomeTooHigh
		default:
			return OutcomeIncorrect
		}
	case puzzle.ModeSingleAnswer:
		if sub.OptionIndex != nil {
			idx := *sub.OptionIndex
			if idx >= 0 && idx < len(p.Options) && idx == p.CorrectIndex {
				return OutcomeCorrect
			}
			return OutcomeIncorrect
		}
		if sub.Value != nil && *sub.Value == p.Target {
			return OutcomeCorrect
		}
		return OutcomeIncorrect
	default:
		return OutcomeIncorrect
	}
}
