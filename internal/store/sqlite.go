package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	"modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Primary result codes the write path treats as transient.
const (
	sqliteBusy   = 5
	sqliteLocked = 6
)

// SQLiteDB implements DB on a single SQLite file.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (and creates if needed) the database at path. Use
// ":memory:" for an ephemeral store.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers unblocked while the janitor persists results.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate applies the embedded goose migrations.
func (s *SQLiteDB) Migrate() error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// SaveResult inserts one finished session. Busy and locked errors are
// retried with exponential backoff before giving up.
func (s *SQLiteDB) SaveResult(ctx context.Context, res *Result) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO results (
		id, session_id, variant, outcome, score, mistakes, level,
		puzzles, goal_score, max_mistakes, seed, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	backoff := retry.WithMaxRetries(5, retry.NewExponential(10*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, query,
			res.ID, res.SessionID, res.Variant, res.Outcome,
			res.Score, res.Mistakes, res.Level, res.Puzzles,
			res.GoalScore, res.MaxMistakes, res.Seed, res.CreatedAt,
		)
		if err != nil && transient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// ListResults returns the most recent results, newest first. A limit below 1
// defaults to 50.
func (s *SQLiteDB) ListResults(ctx context.Context, limit int) ([]Result, error) {
	if limit < 1 {
		limit = 50
	}

	query := `SELECT id, session_id, variant, outcome, score, mistakes, level,
		puzzles, goal_score, max_mistakes, seed, created_at
		FROM results ORDER BY created_at DESC, id LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var res Result
		err := rows.Scan(
			&res.ID, &res.SessionID, &res.Variant, &res.Outcome,
			&res.Score, &res.Mistakes, &res.Level, &res.Puzzles,
			&res.GoalScore, &res.MaxMistakes, &res.Seed, &res.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// VariantStats aggregates all stored results per variant, sorted by variant.
func (s *SQLiteDB) VariantStats(ctx context.Context) ([]VariantStats, error) {
	query := `SELECT variant,
		COUNT(*) AS sessions,
		SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END) AS wins,
		SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END) AS losses,
		AVG(score) AS avg_score,
		AVG(mistakes) AS avg_mistakes,
		MAX(level) AS best_level
		FROM results GROUP BY variant ORDER BY variant`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []VariantStats
	for rows.Next() {
		var st VariantStats
		err := rows.Scan(
			&st.Variant, &st.Sessions, &st.Wins, &st.Losses,
			&st.AvgScore, &st.AvgMistakes, &st.BestLevel,
		)
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}

	return stats, rows.Err()
}

// transient reports whether the error is a busy/locked result worth
// retrying. Extended result codes carry the primary code in the low byte.
func transient(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() & 0xff {
	case sqliteBusy, sqliteLocked:
		return true
	default:
		return false
	}
}
