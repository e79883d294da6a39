// Package api exposes the game engine over HTTP: variant discovery, one-off
// puzzle generation, live sessions with answer submission, a websocket
// feedback stream, and persisted results. It is the narrow surface the
// browser games drive; all game semantics stay in the core packages.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/wackylabs/mathplay-go/internal/store"
)

// Options tunes the server surface.
type Options struct {
	// SessionTTL evicts live sessions idle longer than this. Below 1s the
	// default of 30 minutes applies.
	SessionTTL time.Duration
	// AllowedOrigins is the CORS allowlist; empty allows any origin.
	AllowedOrigins []string
}

// Server handles HTTP requests.
type Server struct {
	db       store.DB
	sessions *sessionRegistry
	origins  []string
}

// NewServer creates an API server around the results database.
func NewServer(db store.DB, opts Options) *Server {
	ttl := opts.SessionTTL
	if ttl < time.Second {
		ttl = 30 * time.Minute
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		db:       db,
		sessions: newSessionRegistry(ttl),
		origins:  origins,
	}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Heartbeat("/health"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/games", s.handleListVariants)
	r.Get("/games/{id}", s.handleGetVariant)

	r.Post("/puzzles", s.handleGeneratePuzzle)
	r.Post("/puzzles/solve", s.handleSolvePuzzle)

	r.Post("/sessions", s.handleCreateSession)
	r.Get("/sessions/{id}", s.handleGetSession)
	r.Post("/sessions/{id}/answer", s.handleAnswer)
	r.Post("/sessions/{id}/restart", s.handleRestart)
	r.Delete("/sessions/{id}", s.handleDeleteSession)
	r.Get("/sessions/{id}/events", s.handleSessionEvents)

	r.Get("/results", s.handleListResults)
	r.Get("/results/stats", s.handleResultStats)

	return r
}

// Janitor evicts idle sessions until ctx is cancelled. Run it in its own
// goroutine alongside the HTTP server.
func (s *Server) Janitor(ctx context.Context) {
	s.sessions.janitor(ctx, time.Minute)
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
