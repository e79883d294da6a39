// Package client is a Go SDK for the mathplay API. It mirrors the HTTP
// surface: variant discovery, one-off puzzles, live sessions and their
// websocket feedback stream, and persisted results.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Client talks to one mathplay server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (HTTP %d)", e.Message, e.Status)
}

// Game describes one playable variant.
type Game struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mode string `json:"mode"`

	PartCount      int      `json:"part_count,omitempty"`
	MaxSolutionLen int      `json:"max_solution_len,omitempty"`
	OptionCount    int      `json:"option_count,omitempty"`
	Ops            []string `json:"ops,omitempty"`
	Spread         int      `json:"spread,omitempty"`

	GoalScore        int  `json:"goal_score,omitempty"`
	MaxMistakes      int  `json:"max_mistakes,omitempty"`
	StartLevel       int  `json:"start_level,omitempty"`
	LevelEvery       int  `json:"level_every,omitempty"`
	KeepTargetOnMiss bool `json:"keep_target_on_miss,omitempty"`
}

// Puzzle is one served puzzle. Subset-sum puzzles carry parts, single-answer
// ones carry a prompt and options.
type Puzzle struct {
	Mode    string `json:"mode"`
	Level   int    `json:"level"`
	Target  int    `json:"target"`
	Parts   []int  `json:"parts,omitempty"`
	Options []int  `json:"options,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
}

// GeneratePuzzleRequest asks for one stateless puzzle. Either name a variant
// or spell out mode plus tuning.
type GeneratePuzzleRequest struct {
	Variant        string   `json:"variant,omitempty"`
	Mode           string   `json:"mode,omitempty"`
	Level          int      `json:"level,omitempty"`
	PartCount      int      `json:"part_count,omitempty"`
	MaxSolutionLen int      `json:"max_solution_len,omitempty"`
	OptionCount    int      `json:"option_count,omitempty"`
	Ops            []string `json:"ops,omitempty"`
	Spread         int      `json:"spread,omitempty"`
	Seed           *int64   `json:"seed,omitempty"`
}

// GeneratedPuzzle is a one-off puzzle with its answer index when the mode
// has one.
type GeneratedPuzzle struct {
	Puzzle       *Puzzle `json:"puzzle"`
	CorrectIndex *int    `json:"correct_index,omitempty"`
}

// SolveResult reports whether a target is reachable and one way there.
type SolveResult struct {
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

// Session is a live session snapshot.
type Session struct {
	ID            string  `json:"id"`
	Variant       string  `json:"variant"`
	State         string  `json:"state"`
	Score         int     `json:"score"`
	Mistakes      int     `json:"mistakes"`
	Level         int     `json:"level"`
	GoalScore     int     `json:"goal_score"`
	MaxMistakes   int     `json:"max_mistakes"`
	PuzzlesServed int     `json:"puzzles_served"`
	Seed          int64   `json:"seed"`
	Puzzle        *Puzzle `json:"puzzle"`
}

// AnswerRequest submits one attempt: part values for subset-sum puzzles, an
// option index or raw value for single-answer ones.
type AnswerRequest struct {
	Parts       []int `json:"parts,omitempty"`
	OptionIndex *int  `json:"option_index,omitempty"`
	Value       *int  `json:"value,omitempty"`
}

// AnswerResult reports the outcome and the session after it.
type AnswerResult struct {
	Outcome string  `json:"outcome,omitempty"`
	Applied bool    `json:"applied"`
	Session Session `json:"session"`
}

// Event is one feedback stream entry.
type Event struct {
	Type     string `json:"type"`
	Score    int    `json:"score"`
	Mistakes int    `json:"mistakes"`
	Level    int    `json:"level"`
}

// Result is one persisted finished session.
type Result struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Variant     string    `json:"variant"`
	Outcome     string    `json:"outcome"`
	Score       int       `json:"score"`
	Mistakes    int       `json:"mistakes"`
	Level       int       `json:"level"`
	Puzzles     int       `json:"puzzles"`
	GoalScore   int       `json:"goal_score"`
	MaxMistakes int       `json:"max_mistakes"`
	Seed        int64     `json:"seed"`
	CreatedAt   time.Time `json:"created_at"`
}

// GameStats aggregates persisted results per variant.
type GameStats struct {
	Variant     string  `json:"variant"`
	Sessions    int     `json:"sessions"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	AvgScore    float64 `json:"avg_score"`
	AvgMistakes float64 `json:"avg_mistakes"`
	BestLevel   int     `json:"best_level"`
}

// Health checks if the service is up.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	return err
}

// ListGames retrieves all registered variants.
func (c *Client) ListGames(ctx context.Context) ([]Game, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/games", nil)
	if err != nil {
		return nil, err
	}

	var games []Game
	if err := json.Unmarshal(resp, &games); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return games, nil
}

// GetGame retrieves one variant by ID.
func (c *Client) GetGame(ctx context.Context, id string) (*Game, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/games/"+id, nil)
	if err != nil {
		return nil, err
	}

	var game Game
	if err := json.Unmarshal(resp, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &game, nil
}

// GeneratePuzzle draws one stateless puzzle.
func (c *Client) GeneratePuzzle(ctx context.Context, req GeneratePuzzleRequest) (*GeneratedPuzzle, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/puzzles", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result GeneratedPuzzle
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// SolvePuzzle asks the server for a witness subset reaching target.
func (c *Client) SolvePuzzle(ctx context.Context, parts []int, target int) (*SolveResult, error) {
	body, err := json.Marshal(map[string]interface{}{"parts": parts, "target": target})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/puzzles/solve", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result SolveResult
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// CreateSession starts a live session.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(resp, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &sess, nil
}

// GetSession retrieves a session snapshot by ID.
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/sessions/"+id, nil)
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(resp, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &sess, nil
}

// Answer submits one attempt against the session's current puzzle.
func (c *Client) Answer(ctx context.Context, id string, req AnswerRequest) (*AnswerResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/sessions/"+id+"/answer", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result AnswerResult
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// SubmitParts answers a subset-sum puzzle with the selected part values.
func (c *Client) SubmitParts(ctx context.Context, id string, parts []int) (*AnswerResult, error) {
	return c.Answer(ctx, id, AnswerRequest{Parts: parts})
}

// SubmitOption answers a single-answer puzzle by option index.
func (c *Client) SubmitOption(ctx context.Context, id string, index int) (*AnswerResult, error) {
	return c.Answer(ctx, id, AnswerRequest{OptionIndex: &index})
}

// SubmitValue answers a single-answer puzzle with a raw value.
func (c *Client) SubmitValue(ctx context.Context, id string, value int) (*AnswerResult, error) {
	return c.Answer(ctx, id, AnswerRequest{Value: &value})
}

// RestartSession resets a session to a fresh run.
func (c *Client) RestartSession(ctx context.Context, id string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/sessions/"+id+"/restart", nil)
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(resp, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &sess, nil
}

// DeleteSession evicts a session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/sessions/"+id, nil)
	return err
}

// ListResults retrieves persisted results, newest first.
func (c *Client) ListResults(ctx context.Context, limit int) ([]Result, error) {
	path := "/results"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var results []Result
	if err := json.Unmarshal(resp, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return results, nil
}

// Stats retrieves per-variant aggregates over persisted results.
func (c *Client) Stats(ctx context.Context) ([]GameStats, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/results/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats []GameStats
	if err := json.Unmarshal(resp, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return stats, nil
}

// Events subscribes to a session's feedback stream. The channel closes when
// the stream ends or ctx is cancelled.
func (c *Client) Events(ctx context.Context, id string) (<-chan Event, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.eventsURL(id), nil)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return nil, &APIError{Status: resp.StatusCode, Message: "failed to open event stream"}
		}
		return nil, fmt.Errorf("failed to dial event stream: %w", err)
	}

	ch := make(chan Event)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	go func() {
		defer close(ch)
		defer close(done)
		defer conn.Close()
		for {
			var ev Event
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (c *Client) eventsURL(id string) string {
	base := c.baseURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/sessions/" + id + "/events"
}

// doRequest performs an HTTP request.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, &APIError{Status: resp.StatusCode, Message: apiErr.Error}
		}
		return nil, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	return respBody, nil
}
