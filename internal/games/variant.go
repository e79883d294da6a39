// Package games holds the mini-game variants: the per-game tuning that turns
// a session level into puzzle generation parameters. Nine built-ins cover the
// shipped games; a YAML catalog can override or extend them at startup.
package games

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/wackylabs/mathplay-go/internal/puzzle"
	"github.com/wackylabs/mathplay-go/internal/rng"
	"github.com/wackylabs/mathplay-go/internal/session"
)

// Variant is one mini-game's shape. Zero tuning fields fall back to the
// generator and session defaults, so a catalog entry only states what it
// changes.
type Variant struct {
	ID   string      `yaml:"id" json:"id"`
	Name string      `yaml:"name" json:"name"`
	Mode puzzle.Mode `yaml:"mode" json:"mode"`

	// Generation tuning.
	PartCount      int         `yaml:"part_count,omitempty" json:"part_count,omitempty"`
	MaxSolutionLen int         `yaml:"max_solution_len,omitempty" json:"max_solution_len,omitempty"`
	OptionCount    int         `yaml:"option_count,omitempty" json:"option_count,omitempty"`
	Ops            []puzzle.Op `yaml:"ops,omitempty" json:"ops,omitempty"`
	Spread         int         `yaml:"spread,omitempty" json:"spread,omitempty"`

	// Session tuning.
	GoalScore        int  `yaml:"goal_score,omitempty" json:"goal_score,omitempty"`
	MaxMistakes      int  `yaml:"max_mistakes,omitempty" json:"max_mistakes,omitempty"`
	StartLevel       int  `yaml:"start_level,omitempty" json:"start_level,omitempty"`
	LevelEvery       int  `yaml:"level_every,omitempty" json:"level_every,omitempty"`
	KeepTargetOnMiss bool `yaml:"keep_target_on_miss,omitempty" json:"keep_target_on_miss,omitempty"`
}

// Next deals a fresh puzzle for the level. Implements session.PuzzleSource.
func (v Variant) Next(r *rng.Rand, level int) *puzzle.Puzzle {
	switch v.Mode {
	case puzzle.ModeSingleAnswer:
		return puzzle.GenerateArithmetic(r, v.params(level))
	default:
		return puzzle.GenerateSubsetSum(r, v.params(level))
	}
}

// Replacement rerolls a missed round. Subset-sum variants keep the previous
// target and redraw the parts; single-answer variants get a fresh question.
func (v Variant) Replacement(r *rng.Rand, level int, prev *puzzle.Puzzle) *puzzle.Puzzle {
	if prev != nil && prev.Mode == puzzle.ModeSubsetSum && v.Mode == puzzle.ModeSubsetSum {
		return puzzle.RegenerateParts(r, prev.Target, v.params(level))
	}
	return v.Next(r, level)
}

// SessionConfig maps the variant's session tuning onto a session config.
// Zero fields default inside the session package.
func (v Variant) SessionConfig() session.Config {
	return session.Config{
		GoalScore:        v.GoalScore,
		MaxMistakes:      v.MaxMistakes,
		StartLevel:       v.StartLevel,
		LevelEvery:       v.LevelEvery,
		KeepTargetOnMiss: v.KeepTargetOnMiss,
	}
}

func (v Variant) params(level int) puzzle.Params {
	return puzzle.Params{
		Level:          level,
		PartCount:      v.PartCount,
		MaxSolutionLen: v.MaxSolutionLen,
		OptionCount:    v.OptionCount,
		Ops:            v.Ops,
		Spread:         v.Spread,
	}
}

// validate checks a variant definition, collecting every problem rather than
// stopping at the first. Zero values pass: they mean "use the default".
func (v Variant) validate() error {
	var err error
	if v.ID == "" {
		err = multierr.Append(err, fmt.Errorf("variant has no id"))
	}
	if v.Name == "" {
		err = multierr.Append(err, fmt.Errorf("variant %q has no name", v.ID))
	}
	switch v.Mode {
	case puzzle.ModeSubsetSum, puzzle.ModeSingleAnswer:
	case "":
		err = multierr.Append(err, fmt.Errorf("variant %q has no mode", v.ID))
	default:
		err = multierr.Append(err, fmt.Errorf("variant %q: unknown mode %q", v.ID, v.Mode))
	}
	if v.PartCount != 0 && (v.PartCount < 3 || v.PartCount > 6) {
		err = multierr.Append(err, fmt.Errorf("variant %q: part_count %d outside [3, 6]", v.ID, v.PartCount))
	}
	if v.MaxSolutionLen != 0 && (v.MaxSolutionLen < 1 || v.MaxSolutionLen > 3) {
		err = multierr.Append(err, fmt.Errorf("variant %q: max_solution_len %d outside [1, 3]", v.ID, v.MaxSolutionLen))
	}
	if v.OptionCount != 0 && (v.OptionCount < 3 || v.OptionCount > 6) {
		err = multierr.Append(err, fmt.Errorf("variant %q: option_count %d outside [3, 6]", v.ID, v.OptionCount))
	}
	if v.Spread != 0 && (v.Spread < 2 || v.Spread > 12) {
		err = multierr.Append(err, fmt.Errorf("variant %q: spread %d outside [2, 12]", v.ID, v.Spread))
	}
	for _, op := range v.Ops {
		switch op {
		case puzzle.OpAdd, puzzle.OpSub, puzzle.OpMul:
		default:
			err = multierr.Append(err, fmt.Errorf("variant %q: unknown op %q", v.ID, op))
		}
	}
	if v.GoalScore < 0 {
		err = multierr.Append(err, fmt.Errorf("variant %q: negative goal_score %d", v.ID, v.GoalScore))
	}
	if v.MaxMistakes < 0 {
		err = multierr.Append(err, fmt.Errorf("variant %q: negative max_mistakes %d", v.ID, v.MaxMistakes))
	}
	if v.StartLevel < 0 {
		err = multierr.Append(err, fmt.Errorf("variant %q: negative start_level %d", v.ID, v.StartLevel))
	}
	if v.LevelEvery < 0 {
		err = multierr.Append(err, fmt.Errorf("variant %q: negative level_every %d", v.ID, v.LevelEvery))
	}
	return err
}
