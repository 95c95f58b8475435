package namereg

import (
	"io"

	"github.com/randalmurphal/namereg/pkg/namereg/config"
	"github.com/randalmurphal/namereg/pkg/namereg/observability"
)

// OptionsFromSettings translates loaded settings into registrar options.
// Logs go to logOut; logging stays off when logOut is nil or no level is set.
func OptionsFromSettings(s config.Settings, logOut io.Writer) []Option {
	opts := []Option{
		WithName(s.Name),
		WithMetrics(s.Metrics),
		WithTracing(s.Tracing.Enabled),
		WithNotifyBuffer(s.Notify.Buffer),
	}
	if logOut != nil && s.Log.Level != "" {
		opts = append(opts, WithLogger(observability.NewLogger(logOut, s.Log.Level, s.Log.Format)))
	}
	return opts
}

// TracingFromSettings builds the tracer provider configuration for
// observability.SetupTracing. Span output goes to out (stdout when nil).
func TracingFromSettings(s config.Settings, out io.Writer) observability.TracingConfig {
	return observability.TracingConfig{
		Enabled:     s.Tracing.Enabled,
		Exporter:    s.Tracing.Exporter,
		ServiceName: s.Tracing.ServiceName,
		Output:      out,
	}
}
