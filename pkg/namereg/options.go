package namereg

import (
	"log/slog"

	"github.com/randalmurphal/namereg/pkg/namereg/observability"
)

// DefaultName is the registrar name used in dump headers, logs and spans.
const DefaultName = "name-registrar"

// DefaultNotifyBuffer is the subscriber buffer used when Subscribe is
// called with a non-positive size.
const DefaultNotifyBuffer = 64

// registrarConfig holds construction-time settings for a Registrar.
type registrarConfig struct {
	name         string
	logger       *slog.Logger
	metrics      observability.MetricsRecorder
	spans        observability.SpanManager
	notifyBuffer int
}

func defaultRegistrarConfig() registrarConfig {
	return registrarConfig{
		name:         DefaultName,
		metrics:      observability.NoopMetrics{},
		spans:        observability.NoopSpanManager{},
		notifyBuffer: DefaultNotifyBuffer,
	}
}

// Option configures a Registrar.
type Option func(*registrarConfig)

// WithName sets the registrar name. Empty names are ignored.
func WithName(name string) Option {
	return func(c *registrarConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger enables structured logging of registrations, removals and
// failed lookups. A nil logger disables logging.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	r := namereg.New(namereg.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *registrarConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics using the global meter provider.
// Default: false
func WithMetrics(enabled bool) Option {
	return func(c *registrarConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder installs a custom recorder. Nil restores the no-op.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(c *registrarConfig) {
		if m == nil {
			m = observability.NoopMetrics{}
		}
		c.metrics = m
	}
}

// WithTracing enables OpenTelemetry spans for dumps and waits using the
// global tracer provider.
// Default: false
func WithTracing(enabled bool) Option {
	return func(c *registrarConfig) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithSpanManager installs a custom span manager. Nil restores the no-op.
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *registrarConfig) {
		if s == nil {
			s = observability.NoopSpanManager{}
		}
		c.spans = s
	}
}

// WithNotifyBuffer sets the default subscriber buffer size.
// Non-positive values are ignored.
func WithNotifyBuffer(n int) Option {
	return func(c *registrarConfig) {
		if n > 0 {
			c.notifyBuffer = n
		}
	}
}
