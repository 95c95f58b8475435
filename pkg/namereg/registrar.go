package namereg

import (
	"cmp"
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/randalmurphal/namereg/pkg/namereg/observability"
)

// Registrar binds names to arbitrary values.
//
// A single sync.RWMutex guards the whole map: Register and Unregister take
// it exclusively, lookups and snapshots share it. The registrar holds
// references only; it never closes, copies or otherwise manages the
// values it stores.
type Registrar struct {
	mu      sync.RWMutex
	entries map[string]any
	waiters map[string]*waiter

	subsMu sync.Mutex
	subs   map[string]*Subscription

	name         string
	logger       *slog.Logger
	metrics      observability.MetricsRecorder
	spans        observability.SpanManager
	notifyBuffer int
}

// entry is one (key, value) pair of a snapshot.
type entry struct {
	key   string
	value any
}

// New creates an empty registrar.
func New(opts ...Option) *Registrar {
	cfg := defaultRegistrarConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registrar{
		entries:      make(map[string]any),
		waiters:      make(map[string]*waiter),
		subs:         make(map[string]*Subscription),
		name:         cfg.name,
		logger:       observability.EnrichLogger(cfg.logger, cfg.name),
		metrics:      cfg.metrics,
		spans:        cfg.spans,
		notifyBuffer: cfg.notifyBuffer,
	}
}

// Name returns the registrar name.
func (r *Registrar) Name() string {
	return r.name
}

// Register binds key to value, replacing any existing binding.
//
// A nil value is stored but reads as absent through Get, GetIfExists and
// WaitFor; avoid registering nil.
func (r *Registrar) Register(key string, value any) {
	replaced := r.store(key, value)

	observability.LogRegister(r.logger, key, typeName(value), replaced)
	r.metrics.RecordRegister(context.Background(), !replaced)

	kind := ChangeRegistered
	if replaced {
		kind = ChangeReplaced
	}
	r.publish(kind, key, value)
}

func (r *Registrar) store(key string, value any) (replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, replaced = r.entries[key]
	r.entries[key] = value
	if value != nil {
		r.wakeLocked(key)
	}
	return replaced
}

// Unregister removes the binding for key. Removing an unbound key is a no-op.
func (r *Registrar) Unregister(key string) {
	value, existed := r.remove(key)

	observability.LogUnregister(r.logger, key, existed)
	r.metrics.RecordUnregister(context.Background(), existed)

	if existed {
		r.publish(ChangeUnregistered, key, value)
	}
}

func (r *Registrar) remove(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	return value, ok
}

// Get returns the value bound to key, or a *NotFoundError carrying the key.
func (r *Registrar) Get(key string) (any, error) {
	v := r.load(key)
	r.metrics.RecordLookup(context.Background(), "get", v != nil)
	if v == nil {
		observability.LogNotFound(r.logger, key)
		return nil, &NotFoundError{Key: key}
	}
	return v, nil
}

// GetIfExists returns the value bound to key and true, or nil and false
// when the key is unbound (or bound to nil).
func (r *Registrar) GetIfExists(key string) (any, bool) {
	v := r.load(key)
	r.metrics.RecordLookup(context.Background(), "get_if_exists", v != nil)
	return v, v != nil
}

func (r *Registrar) load(key string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[key]
}

// Has reports whether key is present in the map, including nil bindings.
func (r *Registrar) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Len returns the number of keys present, including nil bindings.
func (r *Registrar) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Keys returns all keys in lexicographic order.
func (r *Registrar) Keys() []string {
	r.mu.RLock()
	keys := slices.Collect(maps.Keys(r.entries))
	r.mu.RUnlock()

	slices.Sort(keys)
	return keys
}

// Map returns a copy of the current bindings taken under the read lock.
// Mutating the copy does not affect the registrar.
func (r *Registrar) Map() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.entries)
}

// Range calls fn for each binding in key order until fn returns false.
//
// Range iterates over a snapshot, so fn may call back into the registrar,
// including Register and Unregister, without affecting the iteration.
func (r *Registrar) Range(fn func(key string, value any) bool) {
	for _, e := range r.snapshot() {
		if !fn(e.key, e.value) {
			return
		}
	}
}

// snapshot copies the entries under the read lock, sorted by key.
func (r *Registrar) snapshot() []entry {
	r.mu.RLock()
	entries := make([]entry, 0, len(r.entries))
	for k, v := range r.entries {
		entries = append(entries, entry{key: k, value: v})
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.key, b.key)
	})
	return entries
}

// GetOrRegister returns the value bound to key, binding factory() first if
// the key is unbound. The factory runs under the write lock and must not
// call back into the registrar. It runs at most once per key unless it
// returns nil: a nil binding reads as absent, so the next call runs the
// factory again.
func (r *Registrar) GetOrRegister(key string, factory func() any) any {
	if v := r.load(key); v != nil {
		r.metrics.RecordLookup(context.Background(), "get_or_register", true)
		return v
	}

	v, created, replaced := r.storeIfAbsent(key, factory)
	r.metrics.RecordLookup(context.Background(), "get_or_register", !created)
	if created {
		observability.LogRegister(r.logger, key, typeName(v), replaced)
		r.metrics.RecordRegister(context.Background(), !replaced)
		kind := ChangeRegistered
		if replaced {
			kind = ChangeReplaced
		}
		r.publish(kind, key, v)
	}
	return v
}

func (r *Registrar) storeIfAbsent(key string, factory func() any) (v any, created, replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if v = r.entries[key]; v != nil {
		return v, false, false
	}

	_, replaced = r.entries[key]
	v = factory()
	r.entries[key] = v
	if v != nil {
		r.wakeLocked(key)
	}
	return v, true, replaced
}
