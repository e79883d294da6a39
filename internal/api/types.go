package api

import (
	"github.com/wackylabs/mathplay-go/internal/puzzle"
	"github.com/wackylabs/mathplay-go/internal/session"
)

// GeneratePuzzleRequest asks for one stateless puzzle. Either name a variant
// or spell out mode plus tuning; a seed makes the draw reproducible.
type GeneratePuzzleRequest struct {
	Variant        string      `json:"variant,omitempty"`
	Mode           puzzle.Mode `json:"mode,omitempty"`
	Level          int         `json:"level,omitempty"`
	PartCount      int         `json:"part_count,omitempty"`
	MaxSolutionLen int         `json:"max_solution_len,omitempty"`
	OptionCount    int         `json:"option_count,omitempty"`
	Ops            []puzzle.Op `json:"ops,omitempty"`
	Spread         int         `json:"spread,omitempty"`
	Seed           *int64      `json:"seed,omitempty"`
}

// PuzzleResponse carries a one-off puzzle including its answer: the caller
// owns checking here, unlike session puzzles where the answer stays server
// side.
type PuzzleResponse struct {
	Puzzle       *puzzle.Puzzle `json:"puzzle"`
	CorrectIndex *int           `json:"correct_index,omitempty"`
}

// SolveRequest asks for a witness subset.
type SolveRequest struct {
	Parts  []int `json:"parts"`
	Target int   `json:"target"`
}

// SolveResponse reports whether the target is reachable and one way there.
type SolveResponse struct {
	Solvable bool  `json:"solvable"`
	Solution []int `json:"solution,omitempty"`
}

// CreateSessionRequest starts a live session. Pointer fields override the
// variant's session tuning only when present.
type CreateSessionRequest struct {
	Variant          string `json:"variant"`
	Seed             *int64 `json:"seed,omitempty"`
	GoalScore        *int   `json:"goal_score,omitempty"`
	MaxMistakes      *int   `json:"max_mistakes,omitempty"`
	StartLevel       *int   `json:"start_level,omitempty"`
	LevelEvery       *int   `json:"level_every,omitempty"`
	KeepTargetOnMiss *bool  `json:"keep_target_on_miss,omitempty"`
}

// SessionResponse is the client-facing session snapshot. The embedded puzzle
// marshals without its correct index.
type SessionResponse struct {
	ID            string         `json:"id"`
	Variant       string         `json:"variant"`
	State         session.State  `json:"state"`
	Score         int            `json:"score"`
	Mistakes      int            `json:"mistakes"`
	Level         int            `json:"level"`
	GoalScore     int            `json:"goal_score"`
	MaxMistakes   int            `json:"max_mistakes"`
	PuzzlesServed int            `json:"puzzles_served"`
	Seed          int64          `json:"seed"`
	Puzzle        *puzzle.Puzzle `json:"puzzle"`
}

// AnswerRequest submits one attempt: part values for subset-sum puzzles, an
// option index or raw value for single-answer ones.
type AnswerRequest struct {
	Parts       []int `json:"parts,omitempty"`
	OptionIndex *int  `json:"option_index,omitempty"`
	Value       *int  `json:"value,omitempty"`
}

// AnswerResponse reports the outcome and the session after it.
type AnswerResponse struct {
	Outcome session.Outcome `json:"outcome,omitempty"`
	Applied bool            `json:"applied"`
	Session SessionResponse `json:"session"`
}

// snapshot builds the client view. Callers hold ls.mu.
func snapshot(ls *liveSession) SessionResponse {
	cfg := ls.sess.Config()
	return SessionResponse{
		ID:            ls.id,
		Variant:       ls.variant.ID,
		State:         ls.sess.State(),
		Score:         ls.sess.Score(),
		Mistakes:      ls.sess.Mistakes(),
		Level:         ls.sess.Level(),
		GoalScore:     cfg.GoalScore,
		MaxMistakes:   cfg.MaxMistakes,
		PuzzlesServed: ls.sess.PuzzlesServed(),
		Seed:          ls.seed,
		Puzzle:        ls.sess.Puzzle(),
	}
}
