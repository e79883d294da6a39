package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wackylabs/mathplay-go/internal/games"
	"github.com/wackylabs/mathplay-go/internal/puzzle"
	"github.com/wackylabs/mathplay-go/internal/rng"
	"github.com/wackylabs/mathplay-go/internal/session"
	"github.com/wackylabs/mathplay-go/internal/store"
)

func (s *Server) handleListVariants(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, games.List())
}

func (s *Server) handleGetVariant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, ok := games.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown variant")
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleGeneratePuzzle(w http.ResponseWriter, r *http.Request) {
	var req GeneratePuzzleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rnd := rng.New()
	if req.Seed != nil {
		rnd = rng.NewSeeded(*req.Seed)
	}
	level := req.Level
	if level < 1 {
		level = 1
	}

	var p *puzzle.Puzzle
	if req.Variant != "" {
		v, ok := games.Get(req.Variant)
		if !ok {
			s.writeError(w, http.StatusBadRequest, "unknown variant")
			return
		}
		p = v.Next(rnd, level)
	} else {
		params := puzzle.Params{
			Level:          level,
			PartCount:      req.PartCount,
			MaxSolutionLen: req.MaxSolutionLen,
			OptionCount:    req.OptionCount,
			Ops:            req.Ops,
			Spread:         req.Spread,
		}
		switch req.Mode {
		case puzzle.ModeSubsetSum:
			p = puzzle.GenerateSubsetSum(rnd, params)
		case puzzle.ModeSingleAnswer:
			p = puzzle.GenerateArithmetic(rnd, params)
		case "":
			s.writeError(w, http.StatusBadRequest, "mode or variant is required")
			return
		default:
			s.writeError(w, http.StatusBadRequest, "unknown mode")
			return
		}
	}

	resp := PuzzleResponse{Puzzle: p}
	if p.Mode == puzzle.ModeSingleAnswer {
		idx := p.CorrectIndex
		resp.CorrectIndex = &idx
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSolvePuzzle(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Parts) == 0 {
		s.writeError(w, http.StatusBadRequest, "parts are required")
		return
	}

	solution := puzzle.SolveSubset(req.Parts, req.Target)
	s.writeJSON(w, http.StatusOK, SolveResponse{
		Solvable: solution != nil,
		Solution: solution,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Variant == "" {
		s.writeError(w, http.StatusBadRequest, "variant is required")
		return
	}
	v, ok := games.Get(req.Variant)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unknown variant")
		return
	}

	cfg := v.SessionConfig()
	if req.GoalScore != nil {
		cfg.GoalScore = *req.GoalScore
	}
	if req.MaxMistakes != nil {
		cfg.MaxMistakes = *req.MaxMistakes
	}
	if req.StartLevel != nil {
		cfg.StartLevel = *req.StartLevel
	}
	if req.LevelEvery != nil {
		cfg.LevelEvery = *req.LevelEvery
	}
	if req.KeepTargetOnMiss != nil {
		cfg.KeepTargetOnMiss = *req.KeepTargetOnMiss
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	ls := &liveSession{
		id:        uuid.New().String(),
		variant:   v,
		seed:      seed,
		lastSeen:  time.Now(),
		listeners: make(map[chan session.Event]struct{}),
	}
	ls.sess = session.New(cfg, v, rng.NewSeeded(seed))
	ls.sess.OnEvent(ls.broadcast)
	s.sessions.add(ls)

	slog.Info("session created", "id", ls.id, "variant", v.ID, "seed", seed)

	ls.mu.Lock()
	defer ls.mu.Unlock()
	s.writeJSON(w, http.StatusCreated, snapshot(ls))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ls, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.touch()
	s.writeJSON(w, http.StatusOK, snapshot(ls))
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	ls, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	sub, problem := buildSubmission(ls.sess.Puzzle(), req)
	if problem != "" {
		s.writeError(w, http.StatusBadRequest, problem)
		return
	}

	fb := ls.sess.Submit(sub)
	ls.touch()

	if fb.Applied && fb.State != session.StatePlaying && !ls.persisted {
		ls.persisted = true
		res := &store.Result{
			SessionID:   ls.id,
			Variant:     ls.variant.ID,
			Outcome:     string(fb.State),
			Score:       fb.Score,
			Mistakes:    fb.Mistakes,
			Level:       fb.Level,
			Puzzles:     ls.sess.PuzzlesServed(),
			GoalScore:   ls.sess.Config().GoalScore,
			MaxMistakes: ls.sess.Config().MaxMistakes,
			Seed:        ls.seed,
		}
		if err := s.db.SaveResult(r.Context(), res); err != nil {
			slog.Error("failed to save result", "session", ls.id, "error", err)
		} else {
			slog.Info("session finished", "id", ls.id, "outcome", fb.State, "score", fb.Score, "mistakes", fb.Mistakes)
		}
	}

	s.writeJSON(w, http.StatusOK, AnswerResponse{
		Outcome: fb.Outcome,
		Applied: fb.Applied,
		Session: snapshot(ls),
	})
}

// buildSubmission validates the attempt against the current puzzle before
// the core ever sees it. The empty string means the submission is fine.
func buildSubmission(p *puzzle.Puzzle, req AnswerRequest) (session.Submission, string) {
	fields := 0
	if len(req.Parts) > 0 {
		fields++
	}
	if req.OptionIndex != nil {
		fields++
	}
	if req.Value != nil {
		fields++
	}
	if fields == 0 {
		return session.Submission{}, "submission is empty"
	}
	if fields > 1 {
		return session.Submission{}, "submit exactly one of parts, option_index, value"
	}

	switch p.Mode {
	case puzzle.ModeSubsetSum:
		if len(req.Parts) == 0 {
			return session.Submission{}, "parts are required for subset-sum puzzles"
		}
		if !puzzle.ContainsMultiset(p.Parts, req.Parts) {
			return session.Submission{}, "selected parts are not in the puzzle"
		}
	case puzzle.ModeSingleAnswer:
		if len(req.Parts) > 0 {
			return session.Submission{}, "option_index or value is required for single-answer puzzles"
		}
		if req.OptionIndex != nil && (*req.OptionIndex < 0 || *req.OptionIndex >= len(p.Options)) {
			return session.Submission{}, "option_index out of range"
		}
	}

	return session.Submission{
		Parts:       req.Parts,
		OptionIndex: req.OptionIndex,
		Value:       req.Value,
	}, ""
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	ls, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.sess.Restart()
	ls.persisted = false
	ls.touch()
	s.writeJSON(w, http.StatusOK, snapshot(ls))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	results, err := s.db.ListResults(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list results", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list results")
		return
	}
	if results == nil {
		results = []store.Result{}
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleResultStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.VariantStats(r.Context())
	if err != nil {
		slog.Error("failed to aggregate results", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to aggregate results")
		return
	}
	if stats == nil {
		stats = []store.VariantStats{}
	}
	s.writeJSON(w, http.StatusOK, stats)
}
