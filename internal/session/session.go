// Package session drives one game run: score, mistakes, level, and the
// active puzzle, with sticky won/lost terminal states. The machine is
// synchronous and single-threaded; callers that share a session across
// goroutines serialize access themselves.
package session

import (
	"github.com/wackylabs/mathplay-go/internal/puzzle"
	"github.com/wackylabs/mathplay-go/internal/rng"
)

// State is the session lifecycle phase. Won and Lost are terminal: only
// Restart leaves them.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// PuzzleSource supplies rounds. Next opens a fresh round at the given level;
// Replacement follows a miss when the session keeps targets across misses,
// with the previous puzzle available so the source can hold its target while
// rerolling the rest. Implementations must always return a playable puzzle;
// generation has no failure mode.
type PuzzleSource interface {
	Next(r *rng.Rand, level int) *puzzle.Puzzle
	Replacement(r *rng.Rand, level int, prev *puzzle.Puzzle) *puzzle.Puzzle
}

// Config tunes a session. Zero fields take the defaults: goal 10, three
// strikes, start at level 1, level up every 3 correct answers.
// KeepTargetOnMiss makes a miss reroll the puzzle around the same target
// instead of dealing a fresh round.
type Config struct {
	GoalScore        int  `json:"goal_score"`
	MaxMistakes      int  `json:"max_mistakes"`
	StartLevel       int  `json:"start_level"`
	LevelEvery       int  `json:"level_every"`
	KeepTargetOnMiss bool `json:"keep_target_on_miss"`
}

func (c Config) withDefaults() Config {
	if c.GoalScore < 1 {
		c.GoalScore = 10
	}
	if c.MaxMistakes < 1 {
		c.MaxMistakes = 3
	}
	if c.StartLevel < 1 {
		c.StartLevel = 1
	}
	if c.LevelEvery < 1 {
		c.LevelEvery = 3
	}
	return c
}

// Feedback reports what one Submit did. When the session was already
// terminal, Applied is false, Outcome is empty, and nothing changed.
type Feedback struct {
	Outcome  Outcome `json:"outcome,omitempty"`
	Applied  bool    `json:"applied"`
	State    State   `json:"state"`
	Score    int     `json:"score"`
	Mistakes int     `json:"mistakes"`
	Level    int     `json:"level"`
}

// Session owns its current puzzle exclusively; rounds never share one.
type Session struct {
	cfg      Config
	source   PuzzleSource
	rand     *rng.Rand
	listener Listener

	state    State
	score    int
	mistakes int
	level    int
	puzzle   *puzzle.Puzzle
	served   int
}

// New starts a playing session and generates its first puzzle.
func New(cfg Config, source PuzzleSource, r *rng.Rand) *Session {
	s := &Session{
		cfg:    cfg.withDefaults(),
		source: source,
		rand:   r,
	}
	s.reset()
	return s
}

// OnEvent installs the feedback listener. The session calls it synchronously
// during Submit; a nil listener disables notification.
func (s *Session) OnEvent(fn Listener) {
	s.listener = fn
}

// Submit evaluates one answer against the current puzzle and advances the
// machine: a correct answer scores and may win, a wrong one (including a
// too-high sum) counts a mistake and may lose, and in either surviving case
// the next puzzle is generated before Submit returns. In a terminal state
// Submit changes nothing.
func (s *Session) Submit(sub Submission) Feedback {
	if s.state != StatePlaying {
		return s.feedback("", false)
	}

	outcome := Evaluate(s.puzzle, sub)
	if outcome == OutcomeCorrect {
		s.score++
		s.emit(EventCorrect)
		if s.score >= s.cfg.GoalScore {
			s.state = StateWon
			s.emit(EventWon)
			return s.feedback(outcome, true)
		}
		if s.score%s.cfg.LevelEvery == 0 {
			s.level++
		}
		s.puzzle = s.source.Next(s.rand, s.level)
		s.served++
		return s.feedback(outcome, true)
	}

	s.mistakes++
	s.emit(EventIncorrect)
	if s.mistakes >= s.cfg.MaxMistakes {
		s.state = StateLost
		s.emit(EventLost)
		return s.feedback(outcome, true)
	}
	if s.cfg.KeepTargetOnMiss {
		s.puzzle = s.source.Replacement(s.rand, s.level, s.puzzle)
	} else {
		s.puzzle = s.source.Next(s.rand, s.level)
	}
	s.served++
	return s.feedback(outcome, true)
}

// Restart zeroes the run and deals a fresh puzzle. Valid from any state,
// terminal ones included.
func (s *Session) Restart() {
	s.reset()
}

func (s *Session) reset() {
	s.state = StatePlaying
	s.score = 0
	s.mistakes = 0
	s.level = s.cfg.StartLevel
	s.puzzle = s.source.Next(s.rand, s.level)
	s.served = 1
}

func (s *Session) feedback(outcome Outcome, applied bool) Feedback {
	return Feedback{
		Outcome:  outcome,
		Applied:  applied,
		State:    s.state,
		Score:    s.score,
		Mistakes: s.mistakes,
		Level:    s.level,
	}
}

func (s *Session) emit(t EventType) {
	if s.listener == nil {
		return
	}
	s.listener(Event{
		Type:     t,
		Score:    s.score,
		Mistakes: s.mistakes,
		Level:    s.level,
	})
}

// State returns the lifecycle phase.
func (s *Session) State() State { return s.state }

// Score returns correct answers so far.
func (s *Session) Score() int { return s.score }

// Mistakes returns wrong answers so far.
func (s *Session) Mistakes() int { return s.mistakes }

// Level returns the current difficulty tier.
func (s *Session) Level() int { return s.level }

// Puzzle returns the active puzzle. Callers must treat it as read-only.
func (s *Session) Puzzle() *puzzle.Puzzle { return s.puzzle }

// PuzzlesServed counts puzzles dealt since the last reset, first included.
func (s *Session) PuzzlesServed() int { return s.served }

// Config returns the effective configuration after defaulting.
func (s *Session) Config() Config { return s.cfg }
