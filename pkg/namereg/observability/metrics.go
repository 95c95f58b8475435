package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records registrar metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRegister records a registration. added is true when the key
	// was not bound before.
	RecordRegister(ctx context.Context, added bool)

	// RecordUnregister records a removal. existed is false for no-op removals.
	RecordUnregister(ctx context.Context, existed bool)

	// RecordLookup records a Get/GetIfExists/WaitFor lookup and whether it hit.
	RecordLookup(ctx context.Context, op string, hit bool)

	// RecordDump records a dump with its entry count and duration.
	RecordDump(ctx context.Context, entries int, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registrations   metric.Int64Counter
	unregistrations metric.Int64Counter
	lookups         metric.Int64Counter
	entries         metric.Int64UpDownCounter
	dumpLatency     metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("namereg")

	registrations, err := meter.Int64Counter("namereg.registrations",
		metric.WithDescription("Number of Register calls"),
	)
	if err != nil {
		return nil, err
	}

	unregistrations, err := meter.Int64Counter("namereg.unregistrations",
		metric.WithDescription("Number of Unregister calls"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter("namereg.lookups",
		metric.WithDescription("Number of name lookups"),
	)
	if err != nil {
		return nil, err
	}

	entries, err := meter.Int64UpDownCounter("namereg.entries",
		metric.WithDescription("Number of bound names"),
	)
	if err != nil {
		return nil, err
	}

	dumpLatency, err := meter.Float64Histogram("namereg.dump.latency_ms",
		metric.WithDescription("Dump latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registrations:   registrations,
		unregistrations: unregistrations,
		lookups:         lookups,
		entries:         entries,
		dumpLatency:     dumpLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordRegister(ctx context.Context, added bool) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(attribute.Bool("added", added)))
	if added {
		m.entries.Add(ctx, 1)
	}
}

func (m *otelMetrics) RecordUnregister(ctx context.Context, existed bool) {
	m.unregistrations.Add(ctx, 1, metric.WithAttributes(attribute.Bool("existed", existed)))
	if existed {
		m.entries.Add(ctx, -1)
	}
}

func (m *otelMetrics) RecordLookup(ctx context.Context, op string, hit bool) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.Bool("hit", hit),
	))
}

func (m *otelMetrics) RecordDump(ctx context.Context, entries int, duration time.Duration) {
	m.dumpLatency.Record(ctx, float64(duration.Microseconds())/1000,
		metric.WithAttributes(attribute.Int("entries", entries)))
}
