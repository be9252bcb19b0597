// Package workflow runs one submission at a time through
// idle -> submitting -> success | error, with explicit cancellation when the
// owning session is closed.
package workflow

import (
	"context"
	"log"
	"sync"
	"time"
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Guard checks a draft locally. A non-nil error refuses the submit.
type Guard[D any] func(D) error

// CreateFunc persists a draft and returns the created record.
type CreateFunc[D, R any] func(ctx context.Context, draft D) (R, error)

// Snapshot is a consistent copy of the workflow state.
type Snapshot[D any] struct {
	State      State     `json:"state"`
	Draft      D         `json:"draft"`
	Message    string    `json:"message,omitempty"`
	LastActive time.Time `json:"last_active"`
}

type Workflow[D, R any] struct {
	name   string
	guard  Guard[D]
	create CreateFunc[D, R]
	now    func() time.Time

	mu         sync.Mutex
	state      State
	draft      D
	message    string
	generation uint64
	cancel     context.CancelFunc
	lastActive time.Time
}

// New returns an idle workflow. name is used in log lines only.
func New[D, R any](name string, guard Guard[D], create CreateFunc[D, R]) *Workflow[D, R] {
	w := &Workflow[D, R]{
		name:   name,
		guard:  guard,
		create: create,
		now:    time.Now,
		state:  StateIdle,
	}
	w.lastActive = w.now()
	return w
}

// Submit runs the guard and, if it passes, the create. The create runs
// under a context that Close cancels. Success is final until Close.
func (w *Workflow[D, R]) Submit(ctx context.Context, draft D) (R, error) {
	var zero R

	w.mu.Lock()
	w.lastActive = w.now()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return zero, &Error{Kind: KindBusy, Message: "A submission is already in progress."}
	}
	if w.state == StateSuccess {
		w.mu.Unlock()
		return zero, &Error{Kind: KindDone, Message: "This submission was already sent."}
	}
	w.draft = draft
	if w.guard != nil {
		if err := w.guard(draft); err != nil {
			perr := asPrecondition(err)
			w.state = StateIdle
			w.message = perr.Message
			w.mu.Unlock()
			return zero, perr
		}
	}
	w.generation++
	gen := w.generation
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.state = StateSubmitting
	w.message = ""
	w.mu.Unlock()

	log.Printf("[Submission %s] 📤 creating...", w.name)
	record, err := w.create(ctx, draft)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.generation {
		log.Printf("[Submission %s] ⏹️  closed while submitting, result ignored", w.name)
		return zero, &Error{Kind: KindClosed, Message: "The submission was cancelled.", Err: err}
	}
	w.cancel = nil
	w.lastActive = w.now()
	if err != nil {
		log.Printf("[Submission %s] ❌ create failed: %v", w.name, err)
		w.state = StateError
		w.message = RemoteMessage
		return zero, &Error{Kind: KindRemote, Message: RemoteMessage, Err: err}
	}

	log.Printf("[Submission %s] ✅ created", w.name)
	w.state = StateSuccess
	w.message = ""
	var empty D
	w.draft = empty
	return record, nil
}

// Close resets to idle and clears the draft. An in-flight create is
// cancelled and its result discarded.
func (w *Workflow[D, R]) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generation++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	var empty D
	w.state = StateIdle
	w.draft = empty
	w.message = ""
	w.lastActive = w.now()
}

func (w *Workflow[D, R]) Snapshot() Snapshot[D] {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot[D]{State: w.state, Draft: w.draft, Message: w.message, LastActive: w.lastActive}
}

func (w *Workflow[D, R]) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow[D, R]) LastActive() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive
}
