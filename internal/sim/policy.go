package sim

import (
	"github.com/wackylabs/mathplay-go/internal/puzzle"
	"github.com/wackylabs/mathplay-go/internal/rng"
	"github.com/wackylabs/mathplay-go/internal/session"
)

// Policy decides how a simulated player answers each puzzle.
type Policy interface {
	Name() string
	Decide(r *rng.Rand, p *puzzle.Puzzle) session.Submission
}

// Perfect answers every puzzle correctly: it solves subset-sum puzzles and
// picks the correct option on single-answer ones.
func Perfect() Policy { return perfectPolicy{} }

type perfectPolicy struct{}

func (perfectPolicy) Name() string { return "perfect" }

func (perfectPolicy) Decide(r *rng.Rand, p *puzzle.Puzzle) session.Submission {
	return correctSubmission(p)
}

// Random guesses: a uniform option pick, or a coin-flip part selection.
func Random() Policy { return randomPolicy{} }

type randomPolicy struct{}

func (randomPolicy) Name() string { return "random" }

func (randomPolicy) Decide(r *rng.Rand, p *puzzle.Puzzle) session.Submission {
	if p.Mode == puzzle.ModeSingleAnswer {
		return session.OptionSubmission(r.IntBetween(0, len(p.Options)-1))
	}
	var parts []int
	for _, v := range p.Parts {
		if r.Float64() < 0.5 {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		idx, err := r.PickIndex(len(p.Parts))
		if err != nil {
			return session.Submission{}
		}
		parts = append(parts, p.Parts[idx])
	}
	return session.PartsSubmission(parts...)
}

// Accuracy answers correctly with probability p and deliberately wrong
// otherwise. Accuracy(1) behaves like Perfect, Accuracy(0) never scores.
func Accuracy(p float64) Policy { return accuracyPolicy{p: p} }

type accuracyPolicy struct {
	p float64
}

func (accuracyPolicy) Name() string { return "accuracy" }

func (a accuracyPolicy) Decide(r *rng.Rand, p *puzzle.Puzzle) session.Submission {
	if r.Float64() < a.p {
		return correctSubmission(p)
	}
	return wrongSubmission(r, p)
}

func correctSubmission(p *puzzle.Puzzle) session.Submission {
	if p.Mode == puzzle.ModeSingleAnswer {
		return session.OptionSubmission(p.CorrectIndex)
	}
	subset := puzzle.SolveSubset(p.Parts, p.Target)
	return session.PartsSubmission(subset...)
}

// wrongSubmission is guaranteed to miss: a single part that differs from the
// target, a two-part overshoot when every part equals it, or any option off
// the correct index.
func wrongSubmission(r *rng.Rand, p *puzzle.Puzzle) session.Submission {
	if p.Mode == puzzle.ModeSingleAnswer {
		offset := r.IntBetween(1, len(p.Options)-1)
		return session.OptionSubmission((p.CorrectIndex + offset) % len(p.Options))
	}
	for _, v := range p.Parts {
		if v != p.Target {
			return session.PartsSubmission(v)
		}
	}
	return session.PartsSubmission(p.Parts[0], p.Parts[1])
}
