// Package sim plays sessions at scale: a worker pool drives full games
// against the real generators under a configurable answer policy and tallies
// the outcomes. It serves tuning (is a variant winnable by a child who gets
// four answers in five right?) and doubles as a generator soak.
package sim

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/wackylabs/mathplay-go/internal/games"
	"github.com/wackylabs/mathplay-go/internal/rng"
	"github.com/wackylabs/mathplay-go/internal/session"
)

// Config controls one simulation run.
type Config struct {
	// Variant is the game to play. Empty plays every registered variant
	// round-robin.
	Variant string
	// Sessions is the total session count, minimum 1.
	Sessions int
	// Policy defaults to Perfect.
	Policy Policy
	// Seed makes the run reproducible; 0 derives one from the clock.
	// Session n plays with seed Seed+n regardless of worker scheduling.
	Seed int64
}

// Tally aggregates finished sessions for one variant.
type Tally struct {
	Sessions int `json:"sessions"`
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	Puzzles  int `json:"puzzles"`
	Score    int `json:"score"`
	Mistakes int `json:"mistakes"`
}

// Summary is the run report. Rates and averages are rounded to two decimal
// places so reports diff cleanly across runs.
type Summary struct {
	Policy      string            `json:"policy"`
	Seed        int64             `json:"seed"`
	Sessions    int               `json:"sessions"`
	Wins        int               `json:"wins"`
	Losses      int               `json:"losses"`
	Puzzles     int               `json:"puzzles"`
	WinRate     decimal.Decimal   `json:"win_rate"`
	AvgScore    decimal.Decimal   `json:"avg_score"`
	AvgMistakes decimal.Decimal   `json:"avg_mistakes"`
	Duration    time.Duration     `json:"duration_ns"`
	Variants    map[string]*Tally `json:"variants"`
}

type job struct {
	variant games.Variant
	seed    int64
}

// Runner distributes sessions over a fixed worker pool.
type Runner struct {
	workers int
}

// NewRunner sizes the pool; workers < 1 uses GOMAXPROCS.
func NewRunner(workers int) *Runner {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{workers: workers}
}

// Run plays cfg.Sessions full games and reports the tallies. Each session
// owns its own seeded rng, so runs with the same seed produce the same
// report whatever the worker count.
func (rn *Runner) Run(ctx context.Context, cfg Config) (*Summary, error) {
	variants, err := resolveVariants(cfg.Variant)
	if err != nil {
		return nil, err
	}
	if cfg.Sessions < 1 {
		cfg.Sessions = 1
	}
	policy := cfg.Policy
	if policy == nil {
		policy = Perfect()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var (
		wins     atomic.Int64
		losses   atomic.Int64
		puzzles  atomic.Int64
		score    atomic.Int64
		mistakes atomic.Int64

		mu      sync.Mutex
		tallies = make(map[string]*Tally, len(variants))
	)

	start := time.Now()
	jobs := make(chan job, rn.workers*2)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for n := 0; n < cfg.Sessions; n++ {
			j := job{variant: variants[n%len(variants)], seed: seed + int64(n)}
			select {
			case jobs <- j:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < rn.workers; i++ {
		g.Go(func() error {
			local := make(map[string]*Tally, len(variants))
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				sess := playOne(j, policy)

				t := local[j.variant.ID]
				if t == nil {
					t = &Tally{}
					local[j.variant.ID] = t
				}
				t.Sessions++
				t.Puzzles += sess.PuzzlesServed()
				t.Score += sess.Score()
				t.Mistakes += sess.Mistakes()
				if sess.State() == session.StateWon {
					t.Wins++
					wins.Add(1)
				} else {
					t.Losses++
					losses.Add(1)
				}
				puzzles.Add(int64(sess.PuzzlesServed()))
				score.Add(int64(sess.Score()))
				mistakes.Add(int64(sess.Mistakes()))
			}

			mu.Lock()
			for id, t := range local {
				if agg := tallies[id]; agg != nil {
					agg.Sessions += t.Sessions
					agg.Wins += t.Wins
					agg.Losses += t.Losses
					agg.Puzzles += t.Puzzles
					agg.Score += t.Score
					agg.Mistakes += t.Mistakes
				} else {
					tallies[id] = t
				}
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := decimal.NewFromInt(int64(cfg.Sessions))
	return &Summary{
		Policy:      policy.Name(),
		Seed:        seed,
		Sessions:    cfg.Sessions,
		Wins:        int(wins.Load()),
		Losses:      int(losses.Load()),
		Puzzles:     int(puzzles.Load()),
		WinRate:     decimal.NewFromInt(wins.Load()).Div(total).Round(2),
		AvgScore:    decimal.NewFromInt(score.Load()).Div(total).Round(2),
		AvgMistakes: decimal.NewFromInt(mistakes.Load()).Div(total).Round(2),
		Duration:    time.Since(start),
		Variants:    tallies,
	}, nil
}

// playOne runs a single session to its terminal state.
func playOne(j job, policy Policy) *session.Session {
	r := rng.NewSeeded(j.seed)
	sess := session.New(j.variant.SessionConfig(), j.variant, r)
	for sess.State() == session.StatePlaying {
		sess.Submit(policy.Decide(r, sess.Puzzle()))
	}
	return sess
}

func resolveVariants(id string) ([]games.Variant, error) {
	if id == "" {
		all := games.List()
		if len(all) == 0 {
			return nil, ErrNoVariants
		}
		return all, nil
	}
	v, ok := games.Get(id)
	if !ok {
		return nil, ErrUnknownVariant
	}
	return []games.Variant{v}, nil
}
