package observability

// Config holds the settings for the Prometheus observer and its
// metrics endpoint.
type Config struct {
	// Address is the listen address of the /metrics HTTP server,
	// e.g. ":9090".
	Address string `yaml:"address" envconfig:"SEARCHSTORE_METRICS_ADDRESS"`

	// ServiceName is attached to every metric as a constant
	// service="<name>" label.
	ServiceName string `yaml:"service_name" envconfig:"SEARCHSTORE_SERVICE_NAME"`

	// EnableDefaultCollectors registers the Go runtime, process and
	// build info collectors in addition to the operation metrics.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"SEARCHSTORE_METRICS_ENABLE_DEFAULT_COLLECTORS"`
}

// DefaultConfig returns the configuration used when nothing else is
// provided: metrics on :9090 with default collectors enabled.
func DefaultConfig() Config {
	return Config{
		Address:                 ":9090",
		ServiceName:             "searchstore",
		EnableDefaultCollectors: true,
	}
}
