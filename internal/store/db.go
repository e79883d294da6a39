// Package store persists finished sessions so variant tuning can be judged
// against real play: win rates, average mistakes, levels reached.
package store

import (
	"context"
	"time"
)

// DB is the results database interface.
type DB interface {
	Close() error
	Migrate() error
	SaveResult(ctx context.Context, res *Result) error
	ListResults(ctx context.Context, limit int) ([]Result, error)
	VariantStats(ctx context.Context) ([]VariantStats, error)
}

// Result records one terminated session.
type Result struct {
	ID          string    `json:"id" db:"id"`
	SessionID   string    `json:"session_id" db:"session_id"`
	Variant     string    `json:"variant" db:"variant"`
	Outcome     string    `json:"outcome" db:"outcome"` // won | lost
	Score       int       `json:"score" db:"score"`
	Mistakes    int       `json:"mistakes" db:"mistakes"`
	Level       int       `json:"level" db:"level"`
	Puzzles     int       `json:"puzzles" db:"puzzles"`
	GoalScore   int       `json:"goal_score" db:"goal_score"`
	MaxMistakes int       `json:"max_mistakes" db:"max_mistakes"`
	Seed        int64     `json:"seed" db:"seed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// VariantStats aggregates results for one variant.
type VariantStats struct {
	Variant     string  `json:"variant"`
	Sessions    int     `json:"sessions"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	AvgScore    float64 `json:"avg_score"`
	AvgMistakes float64 `json:"avg_mistakes"`
	BestLevel   int     `json:"best_level"`
}
