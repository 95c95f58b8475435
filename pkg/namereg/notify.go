package namereg

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/namereg/pkg/namereg/observability"
)

// ChangeKind describes what happened to a binding.
type ChangeKind string

// Change kinds.
const (
	ChangeRegistered   ChangeKind = "registered"
	ChangeReplaced     ChangeKind = "replaced"
	ChangeUnregistered ChangeKind = "unregistered"
)

// Change is a notification about one binding.
type Change struct {
	// ID uniquely identifies the notification.
	ID   string
	Kind ChangeKind
	Key  string
	// Type is the dynamic type of the value registered or removed.
	Type string
	At   time.Time
}

// Subscription receives changes from a registrar.
//
// Delivery never blocks writers: when the buffer is full the change is
// dropped and counted in Dropped. Changes from concurrent writers may be
// delivered in a different order than the writes were applied.
type Subscription struct {
	id      string
	ch      chan Change
	dropped atomic.Int64
	r       *Registrar
}

// Subscribe starts receiving changes. buffer is the channel capacity; a
// non-positive value uses the registrar default.
func (r *Registrar) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = r.notifyBuffer
	}
	s := &Subscription{
		id: fmt.Sprintf("sub-%s", uuid.New().String()[:8]),
		ch: make(chan Change, buffer),
		r:  r,
	}

	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	r.subs[s.id] = s
	return s
}

// ID returns the subscription identifier.
func (s *Subscription) ID() string { return s.id }

// C returns the delivery channel. It is closed by Unsubscribe.
func (s *Subscription) C() <-chan Change { return s.ch }

// Dropped returns how many changes did not fit in the buffer.
func (s *Subscription) Dropped() int64 { return s.dropped.Load() }

// Unsubscribe stops delivery and closes the channel. It is idempotent.
func (s *Subscription) Unsubscribe() {
	r := s.r
	r.subsMu.Lock()
	defer r.subsMu.Unlock()

	if _, ok := r.subs[s.id]; !ok {
		return
	}
	delete(r.subs, s.id)
	close(s.ch)
}

// publish fans a change out to every subscriber without blocking.
// It must be called after r.mu has been released.
func (r *Registrar) publish(kind ChangeKind, key string, value any) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()

	if len(r.subs) == 0 {
		return
	}

	c := Change{
		ID:   uuid.New().String(),
		Kind: kind,
		Key:  key,
		Type: typeName(value),
		At:   time.Now(),
	}
	for _, s := range r.subs {
		select {
		case s.ch <- c:
		default:
			s.dropped.Add(1)
			observability.LogChangeDropped(r.logger, s.id, key, string(kind))
		}
	}
}
