package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// ErrTasksClosed is returned by Drain when called twice.
var ErrTasksClosed = errors.New("tasks already drained")

// Tasks tracks fire-and-forget background work that outlives the request
// that started it. Tasks are not joined with any request; they run on a
// process-lifetime context that is only canceled when Drain gives up.
// At most one task per key runs at a time.
type Tasks struct {
	log     *slog.Logger
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup

	mu      sync.Mutex
	running map[string]struct{}
	closed  bool
}

// NewTasks creates a registry. Each task is bounded by timeout (0 = none).
func NewTasks(timeout time.Duration, log *slog.Logger) *Tasks {
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Tasks{
		log:     log,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
		running: make(map[string]struct{}),
	}
}

// Go starts fn in the background. It returns false without starting
// anything when a task with the same key is still running or the registry
// has been drained.
func (t *Tasks) Go(key string, fn func(ctx context.Context)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return false
	}
	if _, busy := t.running[key]; busy {
		t.log.Debug("background task coalesced", "key", key)
		return false
	}
	t.running[key] = struct{}{}

	t.wg.Go(func() {
		defer t.finish(key)

		ctx := t.ctx
		if t.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, t.timeout)
			defer cancel()
		}

		start := time.Now()
		var pc panics.Catcher
		pc.Try(func() { fn(ctx) })
		if r := pc.Recovered(); r != nil {
			t.log.Error("background task panicked", "key", key, "panic", r.Value)
			return
		}
		t.log.Debug("background task finished", "key", key, "duration_ms", time.Since(start).Milliseconds())
	})
	return true
}

func (t *Tasks) finish(key string) {
	t.mu.Lock()
	delete(t.running, key)
	t.mu.Unlock()
}

// Running returns the number of tasks in flight.
func (t *Tasks) Running() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.running)
}

// Drain stops accepting new tasks and waits for running ones. If ctx ends
// first the remaining tasks are canceled and ctx's error is returned.
func (t *Tasks) Drain(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrTasksClosed
	}
	t.closed = true
	pending := len(t.running)
	t.mu.Unlock()

	if pending > 0 {
		t.log.Info("draining background tasks", "pending", pending)
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.cancel()
		return nil
	case <-ctx.Done():
		t.cancel()
		<-done
		return ctx.Err()
	}
}
