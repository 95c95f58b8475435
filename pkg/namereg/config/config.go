package config

// Settings configures a Registrar and the observability around it.
type Settings struct {
	// Name labels the registrar in dump headers, logs and spans.
	Name string

	Log     LogSettings
	Metrics bool
	Tracing TracingSettings
	Dump    DumpSettings
	Notify  NotifySettings
}

// LogSettings selects the slog handler.
type LogSettings struct {
	// Level is "debug", "info", "warn" or "error". Empty disables logging.
	Level string
	// Format is "text" or "json".
	Format string
}

// TracingSettings selects the span exporter.
type TracingSettings struct {
	Enabled     bool
	Exporter    string
	ServiceName string
}

// DumpSettings holds defaults for diagnostic dumps.
type DumpSettings struct {
	Indent string
	Detail bool
}

// NotifySettings holds defaults for change subscriptions.
type NotifySettings struct {
	// Buffer is the per-subscriber channel capacity.
	Buffer int
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Name:    "name-registrar",
		Log:     LogSettings{Format: "text"},
		Tracing: TracingSettings{Exporter: "stdout", ServiceName: "namereg"},
		Notify:  NotifySettings{Buffer: 64},
	}
}

// FromMap builds Settings from a decoded YAML/JSON document.
// Missing or mistyped values fall back to Default().
func FromMap(data map[string]any) Settings {
	s := Default()
	v := values(data)

	s.Name = v.String("name", s.Name)
	s.Metrics = v.Bool("metrics", s.Metrics)

	log := v.Section("log")
	s.Log.Level = log.String("level", s.Log.Level)
	s.Log.Format = log.String("format", s.Log.Format)

	tracing := v.Section("tracing")
	s.Tracing.Enabled = tracing.Bool("enabled", s.Tracing.Enabled)
	s.Tracing.Exporter = tracing.String("exporter", s.Tracing.Exporter)
	s.Tracing.ServiceName = tracing.String("service_name", s.Tracing.ServiceName)

	dump := v.Section("dump")
	s.Dump.Indent = dump.String("indent", s.Dump.Indent)
	s.Dump.Detail = dump.Bool("detail", s.Dump.Detail)

	notify := v.Section("notify")
	if n := notify.Int("buffer", s.Notify.Buffer); n > 0 {
		s.Notify.Buffer = n
	}

	return s
}

// values gives lenient typed access to a decoded document.
type values map[string]any

func (v values) String(key, defaultVal string) string {
	if s, ok := v[key].(string); ok {
		return s
	}
	return defaultVal
}

func (v values) Bool(key string, defaultVal bool) bool {
	if b, ok := v[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Int accepts int, int64 and whole float64 values (JSON numbers).
func (v values) Int(key string, defaultVal int) int {
	switch val := v[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// Section returns a nested mapping, or an empty one.
func (v values) Section(key string) values {
	if m, ok := v[key].(map[string]any); ok {
		return values(m)
	}
	return values(nil)
}
