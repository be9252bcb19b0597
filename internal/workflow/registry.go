package workflow

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is anything the registry can hold and expire.
type Session interface {
	State() State
	LastActive() time.Time
	Close()
}

// Registry keeps open sessions by id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session), now: time.Now}
}

// Open stores s under a fresh id.
func (r *Registry) Open(s Session) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return id
}

func (r *Registry) Get(id string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Close closes and forgets the session. It reports whether id was open.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes sessions idle for longer than ttl. Sessions with a create in
// flight are left alone.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)
	var expired []Session

	r.mu.Lock()
	for id, s := range r.sessions {
		if s.State() == StateSubmitting || s.LastActive().After(cutoff) {
			continue
		}
		expired = append(expired, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// StartJanitor sweeps every interval until ctx is done.
func (r *Registry) StartJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(ttl); n > 0 {
					log.Printf("🧹 Session janitor: closed %d idle submissions", n)
				}
			}
		}
	}()
}
