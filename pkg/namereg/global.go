package namereg

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
)

// The process-wide registrar is created on first use and never torn down.
var (
	defaultOnce      sync.Once
	defaultRegistrar atomic.Pointer[Registrar]
)

// Default returns the process-wide registrar, creating it on first call.
func Default() *Registrar {
	defaultOnce.Do(func() {
		defaultRegistrar.Store(New())
	})
	return defaultRegistrar.Load()
}

// InitDefault creates the process-wide registrar with opts. It only takes
// effect before the first call to Default (or any package-level function)
// and reports whether it did.
func InitDefault(opts ...Option) bool {
	applied := false
	defaultOnce.Do(func() {
		defaultRegistrar.Store(New(opts...))
		applied = true
	})
	return applied
}

// SetDefault replaces the process-wide registrar and returns a function
// restoring the previous one. Intended for tests:
//
//	defer namereg.SetDefault(namereg.New())()
//
// A nil r installs a fresh empty registrar.
func SetDefault(r *Registrar) (restore func()) {
	if r == nil {
		r = New()
	}
	prev := Default()
	defaultRegistrar.Store(r)
	return func() { defaultRegistrar.Store(prev) }
}

// Register binds key to value in the process-wide registrar.
func Register(key string, value any) {
	Default().Register(key, value)
}

// Unregister removes key from the process-wide registrar.
func Unregister(key string) {
	Default().Unregister(key)
}

// Get returns the value bound to key in the process-wide registrar, or a
// *NotFoundError.
func Get(key string) (any, error) {
	return Default().Get(key)
}

// GetIfExists returns the value bound to key in the process-wide registrar
// and whether it was found.
func GetIfExists(key string) (any, bool) {
	return Default().GetIfExists(key)
}

// Map returns a snapshot copy of the process-wide bindings.
func Map() map[string]any {
	return Default().Map()
}

// Dump lists the process-wide bindings to w.
func Dump(w io.Writer, indent string, detail bool) error {
	return Default().DumpDetail(w, indent, detail)
}

// WaitFor blocks until key is bound in the process-wide registrar or ctx
// is done.
func WaitFor(ctx context.Context, key string) (any, error) {
	return Default().WaitFor(ctx, key)
}

// Subscribe receives changes to the process-wide registrar.
func Subscribe(buffer int) *Subscription {
	return Default().Subscribe(buffer)
}
