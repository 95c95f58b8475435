package namereg

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mux stands in for a component bound by name.
type mux struct{ name string }

func TestNew(t *testing.T) {
	r := New()
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, DefaultName, r.Name())

	assert.Equal(t, "switch", New(WithName("switch")).Name())
	assert.Equal(t, DefaultName, New(WithName("")).Name())
}

func TestRegisterAndGet(t *testing.T) {
	r := New()
	m := &mux{name: "default"}

	r.Register("MUX.default", m)

	v, err := r.Get("MUX.default")
	require.NoError(t, err)
	assert.Same(t, m, v)

	v, ok := r.GetIfExists("MUX.default")
	assert.True(t, ok)
	assert.Same(t, m, v)
}

func TestRegisterOverwrite(t *testing.T) {
	r := New()
	v1 := &mux{name: "v1"}
	v2 := &mux{name: "v2"}

	r.Register("k", v1)
	r.Register("k", v2)

	v, err := r.Get("k")
	require.NoError(t, err)
	assert.Same(t, v2, v)
	assert.Equal(t, 1, r.Len())
}

func TestGetOnFreshRegistrar(t *testing.T) {
	r := New()

	v, err := r.Get("anything")
	assert.Nil(t, v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "anything", nf.Key)
	assert.Equal(t, `name registrar: "anything" not found`, err.Error())

	v, ok := r.GetIfExists("anything")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestUnregister(t *testing.T) {
	r := New()
	r.Register("MUX.default", &mux{})
	require.True(t, r.Has("MUX.default"))

	r.Unregister("MUX.default")

	assert.False(t, r.Has("MUX.default"))
	_, err := r.Get("MUX.default")
	assert.ErrorIs(t, err, ErrNotFound)
	_, ok := r.GetIfExists("MUX.default")
	assert.False(t, ok)
}

func TestUnregisterNonexistent(t *testing.T) {
	r := New()
	r.Register("key", 42)

	assert.NotPanics(t, func() { r.Unregister("nonexistent") })

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, map[string]any{"key": 42}, r.Map())
}

func TestMuxScenario(t *testing.T) {
	r := New()
	muxObj := &mux{name: "default"}

	r.Register("MUX.default", muxObj)
	v, err := r.Get("MUX.default")
	require.NoError(t, err)
	assert.Same(t, muxObj, v)

	r.Unregister("MUX.default")
	_, err = r.Get("MUX.default")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "MUX.default", nf.Key)

	v, ok := r.GetIfExists("MUX.default")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestNilValueReadsAsAbsent(t *testing.T) {
	r := New()
	r.Register("nil", nil)

	_, err := r.Get("nil")
	assert.ErrorIs(t, err, ErrNotFound)

	v, ok := r.GetIfExists("nil")
	assert.False(t, ok)
	assert.Nil(t, v)

	// The key itself is still present.
	assert.True(t, r.Has("nil"))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []string{"nil"}, r.Keys())
	m := r.Map()
	assert.Contains(t, m, "nil")
	assert.Nil(t, m["nil"])
}

func TestTypedNilIsPresent(t *testing.T) {
	r := New()
	var m *mux
	r.Register("typed-nil", m)

	v, err := r.Get("typed-nil")
	require.NoError(t, err)
	assert.Equal(t, (*mux)(nil), v)
}

func TestEmptyStringKey(t *testing.T) {
	r := New()
	r.Register("", 42)

	v, err := r.Get("")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestKeysSorted(t *testing.T) {
	r := New()
	r.Register("logger.Q2", 1)
	r.Register("MUX.default", 2)
	r.Register("channel.a", 3)

	assert.Equal(t, []string{"MUX.default", "channel.a", "logger.Q2"}, r.Keys())
}

func TestKeysEmpty(t *testing.T) {
	assert.Empty(t, New().Keys())
}

func TestMapIsACopy(t *testing.T) {
	r := New()
	r.Register("one", 1)

	m := r.Map()
	m["two"] = 2
	delete(m, "one")

	assert.True(t, r.Has("one"))
	assert.False(t, r.Has("two"))
	assert.NotNil(t, New().Map())
}

func TestRange(t *testing.T) {
	r := New()
	r.Register("b", 2)
	r.Register("a", 1)
	r.Register("c", 3)

	var keys []string
	visited := make(map[string]any)
	r.Range(func(k string, v any) bool {
		keys = append(keys, k)
		visited[k] = v
		return true
	})

	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3}, visited)
}

func TestRangeEarlyStop(t *testing.T) {
	r := New()
	r.Register("one", 1)
	r.Register("two", 2)

	count := 0
	r.Range(func(string, any) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestRangeAllowsMutation(t *testing.T) {
	r := New()
	r.Register("one", 1)
	r.Register("two", 2)

	r.Range(func(k string, v any) bool {
		r.Register("new-"+k, v)
		r.Unregister(k)
		return true
	})

	assert.ElementsMatch(t, []string{"new-one", "new-two"}, r.Keys())
}

func TestGetOrRegister(t *testing.T) {
	r := New()

	calls := 0
	factory := func() any {
		calls++
		return &mux{name: "lazy"}
	}

	first := r.GetOrRegister("MUX.lazy", factory)
	second := r.GetOrRegister("MUX.lazy", factory)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrRegisterReplacesNilBinding(t *testing.T) {
	r := New()
	r.Register("k", nil)

	v := r.GetOrRegister("k", func() any { return "filled" })
	assert.Equal(t, "filled", v)

	got, err := r.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "filled", got)
}

func TestGetOrRegisterNilFactoryRunsAgain(t *testing.T) {
	r := New()

	calls := 0
	factory := func() any {
		calls++
		return nil
	}

	for range 3 {
		assert.Nil(t, r.GetOrRegister("k", factory))
	}

	assert.Equal(t, 3, calls)
	assert.True(t, r.Has("k"))
	_, ok := r.GetIfExists("k")
	assert.False(t, ok)
}

func TestNotFoundErrorWithCause(t *testing.T) {
	cause := errors.New("gave up")
	err := &NotFoundError{Key: "k", Cause: cause}

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `name registrar: "k" not found: gave up`, err.Error())
}

// Thread-safety tests

func TestConcurrentRegister(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	n := 1000

	keys := make([]string, n)
	for i := range n {
		keys[i] = "channel." + strconv.Itoa(i)
	}

	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Register(keys[i], i)
		}(i)
	}
	wg.Wait()

	for _, k := range keys {
		_, err := r.Get(k)
		assert.NoError(t, err)
	}
}

func TestConcurrentReaders(t *testing.T) {
	r := New()
	values := make(map[string]*mux)
	for _, k := range []string{"a", "b", "c", "d"} {
		values[k] = &mux{name: k}
		r.Register(k, values[k])
	}

	var wg sync.WaitGroup
	var failures atomic.Int32
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				for k, want := range values {
					v, err := r.Get(k)
					if err != nil || v != want {
						failures.Add(1)
					}
					v, ok := r.GetIfExists(k)
					if !ok || v != want {
						failures.Add(1)
					}
				}
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, failures.Load())
}

func TestReaderWriterIsolation(t *testing.T) {
	r := New()
	old := &mux{name: "old"}
	next := &mux{name: "new"}
	r.Register("k", old)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	var torn atomic.Int32

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				v, err := r.Get("k")
				if err != nil || (v != old && v != next) {
					torn.Add(1)
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 2000 {
			if i%2 == 0 {
				r.Register("k", next)
			} else {
				r.Register("k", old)
			}
		}
	}()

	// A read that happens after Register returns observes the new value.
	for range 100 {
		fresh := &mux{name: "fresh"}
		r.Register("probe", fresh)
		v, err := r.Get("probe")
		require.NoError(t, err)
		require.Same(t, fresh, v)
	}

	close(stop)
	wg.Wait()
	assert.Zero(t, torn.Load())
}

func TestConcurrentGetOrRegister(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	var calls atomic.Int32

	results := make([]any, 100)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.GetOrRegister("shared", func() any {
				calls.Add(1)
				return &mux{name: "shared"}
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Same(t, results[0], v)
	}
}

func TestConcurrentUnregister(t *testing.T) {
	r := New()
	for i := range 100 {
		r.Register("logger."+strconv.Itoa(i), i)
	}

	var wg sync.WaitGroup
	for _, k := range r.Keys() {
		wg.Add(2)
		go func(k string) {
			defer wg.Done()
			r.Unregister(k)
		}(k)
		go func(k string) {
			defer wg.Done()
			r.Unregister(k) // duplicate removal is a no-op
		}(k)
	}
	wg.Wait()

	assert.Equal(t, 0, r.Len())
}
