package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wackylabs/mathplay-go/internal/games"
	"github.com/wackylabs/mathplay-go/internal/session"
)

// liveSession is one in-memory game run. The core session is not
// goroutine-safe, so every touch goes through mu; lastSeen feeds the TTL
// janitor.
type liveSession struct {
	id      string
	variant games.Variant
	seed    int64

	mu        sync.Mutex
	sess      *session.Session
	lastSeen  time.Time
	persisted bool
	listeners map[chan session.Event]struct{}
}

// touch must be called with mu held.
func (ls *liveSession) touch() {
	ls.lastSeen = time.Now()
}

// subscribe registers a feedback stream listener and returns it with its
// cancel func. Events that arrive while the listener's buffer is full are
// dropped rather than blocking play.
func (ls *liveSession) subscribe() (chan session.Event, func()) {
	ch := make(chan session.Event, 16)
	ls.mu.Lock()
	ls.listeners[ch] = struct{}{}
	ls.mu.Unlock()

	return ch, func() {
		ls.mu.Lock()
		delete(ls.listeners, ch)
		ls.mu.Unlock()
	}
}

// broadcast fans an event out to subscribers. Called by the core session
// during Submit, so mu is already held by the submitting goroutine.
func (ls *liveSession) broadcast(e session.Event) {
	for ch := range ls.listeners {
		select {
		case ch <- e:
		default:
		}
	}
}

// sessionRegistry tracks live sessions by ID.
type sessionRegistry struct {
	mu  sync.RWMutex
	m   map[string]*liveSession
	ttl time.Duration
}

func newSessionRegistry(ttl time.Duration) *sessionRegistry {
	return &sessionRegistry{
		m:   make(map[string]*liveSession),
		ttl: ttl,
	}
}

func (r *sessionRegistry) add(ls *liveSession) {
	r.mu.Lock()
	r.m[ls.id] = ls
	r.mu.Unlock()
}

func (r *sessionRegistry) get(id string) (*liveSession, bool) {
	r.mu.RLock()
	ls, ok := r.m[id]
	r.mu.RUnlock()
	return ls, ok
}

func (r *sessionRegistry) remove(id string) bool {
	r.mu.Lock()
	_, ok := r.m[id]
	delete(r.m, id)
	r.mu.Unlock()
	return ok
}

func (r *sessionRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

// sweep evicts sessions idle past the TTL and returns how many went.
func (r *sessionRegistry) sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, ls := range r.m {
		ls.mu.Lock()
		idle := now.Sub(ls.lastSeen)
		ls.mu.Unlock()
		if idle > r.ttl {
			delete(r.m, id)
			evicted++
		}
	}
	return evicted
}

// janitor sweeps on a ticker until ctx is cancelled.
func (r *sessionRegistry) janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.sweep(now); n > 0 {
				slog.Info("evicted idle sessions", "count", n, "remaining", r.count())
			}
		}
	}
}
