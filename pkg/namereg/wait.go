package namereg

import (
	"context"

	"github.com/randalmurphal/namereg/pkg/namereg/observability"
)

// waiter is shared by every WaitFor blocked on the same key.
type waiter struct {
	ch chan struct{} // closed when the key becomes bound
	n  int           // blocked WaitFor calls
}

// WaitFor returns the value bound to key, blocking until a non-nil value is
// registered or ctx is done. On cancellation it returns a *NotFoundError
// whose Cause is the context error, so both errors.Is(err, ErrNotFound) and
// errors.Is(err, context.DeadlineExceeded) hold.
func (r *Registrar) WaitFor(ctx context.Context, key string) (v any, err error) {
	ctx, span := r.spans.StartWaitSpan(ctx, r.name, key)
	defer func() { r.spans.EndSpanWithError(span, err) }()

	for {
		bound, w := r.loadOrWait(key)
		if w == nil {
			r.metrics.RecordLookup(ctx, "wait_for", true)
			return bound, nil
		}

		select {
		case <-w.ch:
			// bound; the entry may already be gone again, so look it up anew
		case <-ctx.Done():
			r.release(key, w)
			r.metrics.RecordLookup(ctx, "wait_for", false)
			err = &NotFoundError{Key: key, Cause: ctx.Err()}
			observability.LogWaitAbandoned(r.logger, key, err)
			return nil, err
		}
	}
}

// loadOrWait returns the bound value, or the waiter to block on.
func (r *Registrar) loadOrWait(key string) (any, *waiter) {
	if v := r.load(key); v != nil {
		return v, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v := r.entries[key]; v != nil {
		return v, nil
	}
	w, ok := r.waiters[key]
	if !ok {
		w = &waiter{ch: make(chan struct{})}
		r.waiters[key] = w
	}
	w.n++
	return nil, w
}

// release drops an abandoned wait, discarding the waiter once unused.
func (r *Registrar) release(key string, w *waiter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.waiters[key] != w {
		return // already woken and removed
	}
	w.n--
	if w.n == 0 {
		delete(r.waiters, key)
	}
}

// wakeLocked wakes every WaitFor blocked on key. Callers hold r.mu.
func (r *Registrar) wakeLocked(key string) {
	if w, ok := r.waiters[key]; ok {
		close(w.ch)
		delete(r.waiters, key)
	}
}
