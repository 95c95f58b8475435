package namereg

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/randalmurphal/namereg/pkg/namereg/observability"
)

// Dumper is implemented by values that can describe themselves in a
// registrar dump. It is optional; values without it are listed by type only.
type Dumper interface {
	Dump(w io.Writer, indent string)
}

// Placeholders used by dumps.
const (
	emptyKeyLabel = "<empty>"
	nilValueLabel = "<nil>"
)

var _ Dumper = (*Registrar)(nil)

// Dump writes a listing of every binding to w without detail.
// It satisfies Dumper, so a registrar may be registered in another one.
func (r *Registrar) Dump(w io.Writer, indent string) {
	_ = r.DumpDetail(w, indent, false)
}

// DumpDetail writes a listing of every binding to w:
//
//	<indent>--- name-registrar ---
//	<indent>  MUX.default: *mux.MUX
//	<indent>    ...nested Dumper output when detail is set
//
// Entries are listed in key order. The bindings are snapshotted under the
// read lock and written after it is released, so nested dumps may call
// back into the registrar. It returns the first error from w.
func (r *Registrar) DumpDetail(w io.Writer, indent string, detail bool) error {
	return r.DumpContext(context.Background(), w, indent, detail)
}

// DumpContext is DumpDetail with a context for tracing.
func (r *Registrar) DumpContext(ctx context.Context, w io.Writer, indent string, detail bool) (err error) {
	ctx, span := r.spans.StartDumpSpan(ctx, r.name, detail)
	defer func() { r.spans.EndSpanWithError(span, err) }()

	start := time.Now()
	entries := r.snapshot()

	ew := &errWriter{w: w}
	inner := indent + "  "
	fmt.Fprintf(ew, "%s--- %s ---\n", indent, r.name)
	for _, e := range entries {
		fmt.Fprintf(ew, "%s%s: %s\n", inner, keyLabel(e.key), typeName(e.value))
		if !detail || ew.err != nil {
			continue
		}
		if d, ok := e.value.(Dumper); ok {
			d.Dump(ew, inner+"  ")
		}
	}

	elapsed := time.Since(start)
	r.metrics.RecordDump(ctx, len(entries), elapsed)
	observability.LogDump(r.logger, len(entries), detail, float64(elapsed.Microseconds())/1000)
	return ew.err
}

// keyLabel renders a key, substituting a placeholder for the empty key.
func keyLabel(key string) string {
	if key == "" {
		return emptyKeyLabel
	}
	return key
}

// typeName renders the dynamic type of v.
func typeName(v any) string {
	if v == nil {
		return nilValueLabel
	}
	return fmt.Sprintf("%T", v)
}

// errWriter remembers the first write error and discards later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
