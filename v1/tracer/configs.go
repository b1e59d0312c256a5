package tracer

// Config holds the settings for the OpenTelemetry tracer.
type Config struct {
	// ServiceName identifies this service in exported traces.
	ServiceName string `yaml:"service_name" envconfig:"SEARCHSTORE_SERVICE_NAME"`

	// AppEnv is the deployment environment tag, e.g. "production".
	AppEnv string `yaml:"app_env" envconfig:"SEARCHSTORE_APP_ENV"`

	// EnableExport turns on the OTLP HTTP exporter. When false, spans
	// are created but never leave the process, which keeps tracing
	// calls cheap in environments without a collector.
	EnableExport bool `yaml:"enable_export" envconfig:"SEARCHSTORE_TRACING_ENABLE_EXPORT"`
}

// DefaultConfig returns a tracer configuration suitable for local
// development: spans are recorded in process but not exported.
func DefaultConfig() Config {
	return Config{
		ServiceName:  "searchstore",
		AppEnv:       "development",
		EnableExport: false,
	}
}
