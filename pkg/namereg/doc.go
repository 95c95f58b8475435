// Package namereg provides a process-wide, thread-safe name registry.
//
// Independently constructed components (channels, loggers, muxes,
// dispatchers) bind themselves under a string name and find each other by
// that name at runtime, without compile-time references. The registry only
// stores references; callers construct values and own their lifecycles.
//
// # Basic Usage
//
// The package-level functions operate on one registrar created on first use
// and kept for the life of the process:
//
//	namereg.Register("MUX.default", mux)
//
//	v, err := namereg.Get("MUX.default")
//	if errors.Is(err, namereg.ErrNotFound) {
//	    // nothing bound under that name
//	}
//
//	if v, ok := namereg.GetIfExists("logger.Q2"); ok {
//	    // use v
//	}
//
//	namereg.Unregister("MUX.default") // no-op if unbound
//
// Use GetAs to recover a static type:
//
//	mux, err := namereg.GetAs[*MUX](namereg.Default(), "MUX.default")
//
// # Nil Values
//
// Registering nil is permitted but reads as absent: Get reports NotFound and
// GetIfExists reports false, while Has, Len, Keys, Map and Dump still show
// the key. Callers should not register nil.
//
// # Diagnostics
//
// Dump writes a human-readable listing of every binding in key order:
//
//	--- name-registrar ---
//	  MUX.default: *mux.MUX
//	  logger.Q2: *log.Logger
//
// With detail set, values implementing Dumper describe themselves beneath
// their entry.
//
// # Waiting and Notifications
//
// WaitFor blocks until a name is bound or the context is done, which lets
// components start in any order. Subscribe delivers a Change for every
// registration and removal without ever blocking writers.
//
// # Thread Safety
//
// One sync.RWMutex guards the whole map. Register and Unregister take it
// exclusively; Get, GetIfExists, Map, Keys and the Dump snapshot share it.
// Dumps, Range and change delivery run after the lock is released, so
// callbacks may call back into the registrar.
//
// # Testing
//
// SetDefault swaps in a fresh registrar and returns a restore function:
//
//	defer namereg.SetDefault(namereg.New())()
package namereg
