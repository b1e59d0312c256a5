package searchstore

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Aleph-Alpha/searchstore/v1/fault"
)

// Config holds connection and behavior settings for the search store client.
//
// It is intentionally minimal, readable, and easy to override from environment
// variables, YAML, or programmatically via helper methods.
//
// Example (programmatic):
//
//	cfg := searchstore.DefaultConfig()
//	cfg.BaseURL = "http://localhost:8080"
//	cfg.APIKey = os.Getenv("SEARCHSTORE_API_KEY")
//	cfg.Timeout = 10 * time.Second
//
// Example (builder style):
//
//	cfg := searchstore.FromEndpoint("http://localhost:8080").
//	    WithAPIKey(os.Getenv("SEARCHSTORE_API_KEY")).
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Base URL of the search store, e.g. "http://localhost:8080".
	// REST and GraphQL paths are appended to it.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Optional bearer token for secured deployments.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Maximum request duration before timing out. Per-request timeouts
	// in RequestOptions take precedence.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Number of retry attempts after a retryable failure. Only server
	// errors and network failures are retried; client errors never are.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`

	// Delay before the first retry attempt.
	RetryInitialInterval time.Duration `yaml:"retry_initial_interval" mapstructure:"retry_initial_interval"`

	// Upper bound for the exponential retry delay.
	RetryMaxInterval time.Duration `yaml:"retry_max_interval" mapstructure:"retry_max_interval"`

	// Circuit breaker settings for the query transport.
	Breaker BreakerConfig `yaml:"breaker" mapstructure:"breaker"`

	// Chunk size for batch object ingestion.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size"`

	// Maximum number of batch chunks in flight at once.
	MaxConcurrentBatches int `yaml:"max_concurrent_batches" mapstructure:"max_concurrent_batches"`

	// Logger is an optional logger, typically from v1/logger.
	Logger Logger `yaml:"-" mapstructure:"-"`
}

// BreakerConfig holds circuit breaker settings for the transport.
// The breaker opens when at least three requests were made within
// Interval and the failure ratio reaches ReadyToTripRatio.
type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxRequests      uint32        `yaml:"max_requests" mapstructure:"max_requests"`
	Interval         time.Duration `yaml:"interval" mapstructure:"interval"`
	Timeout          time.Duration `yaml:"timeout" mapstructure:"timeout"`
	ReadyToTripRatio float64       `yaml:"ready_to_trip_ratio" mapstructure:"ready_to_trip_ratio"`
}

// Logger is an interface that matches v1/logger.Logger.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultTimeout              = 30 * time.Second
	DefaultMaxRetries           = 3
	DefaultRetryInitialInterval = 500 * time.Millisecond
	DefaultRetryMaxInterval     = 5 * time.Second
	DefaultBatchSize            = 100
	DefaultMaxConcurrentBatches = 4

	DefaultBreakerMaxRequests      = 3
	DefaultBreakerInterval         = 60 * time.Second
	DefaultBreakerTimeout          = 30 * time.Second
	DefaultBreakerReadyToTripRatio = 0.6
)

// DefaultConfig provides sensible defaults for most use cases.
// The breaker is enabled by default since the transport is the only
// path to the service.
func DefaultConfig() Config {
	return Config{
		BaseURL:              "http://localhost:8080",
		Timeout:              DefaultTimeout,
		MaxRetries:           DefaultMaxRetries,
		RetryInitialInterval: DefaultRetryInitialInterval,
		RetryMaxInterval:     DefaultRetryMaxInterval,
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      DefaultBreakerMaxRequests,
			Interval:         DefaultBreakerInterval,
			Timeout:          DefaultBreakerTimeout,
			ReadyToTripRatio: DefaultBreakerReadyToTripRatio,
		},
		BatchSize:            DefaultBatchSize,
		MaxConcurrentBatches: DefaultMaxConcurrentBatches,
	}
}

// FromEndpoint returns a default config pre-filled with a specific base URL.
func FromEndpoint(url string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = url
	return cfg
}

// Builder-style helpers (optional, ergonomic)
func (c Config) WithAPIKey(key string) Config {
	c.APIKey = key
	return c
}

func (c Config) WithTimeout(d time.Duration) Config {
	c.Timeout = d
	return c
}

func (c Config) WithMaxRetries(n int) Config {
	c.MaxRetries = n
	return c
}

func (c Config) WithBatchSize(n int) Config {
	c.BatchSize = n
	return c
}

func (c Config) WithBreaker(enabled bool) Config {
	c.Breaker.Enabled = enabled
	return c
}

// Validate reports whether the configuration can produce a working client.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fault.Validationf("base url is required")
	}
	if c.MaxRetries < 0 {
		return fault.Validationf("max retries must be >= 0, got %d", c.MaxRetries)
	}
	if c.BatchSize < 0 {
		return fault.Validationf("batch size must be >= 0, got %d", c.BatchSize)
	}
	if c.MaxConcurrentBatches < 0 {
		return fault.Validationf("max concurrent batches must be >= 0, got %d", c.MaxConcurrentBatches)
	}
	return nil
}

// applyDefaults fills zero-valued settings with their defaults.
func (c Config) applyDefaults() Config {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryInitialInterval == 0 {
		c.RetryInitialInterval = DefaultRetryInitialInterval
	}
	if c.RetryMaxInterval == 0 {
		c.RetryMaxInterval = DefaultRetryMaxInterval
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxConcurrentBatches == 0 {
		c.MaxConcurrentBatches = DefaultMaxConcurrentBatches
	}
	if c.Breaker.Enabled {
		if c.Breaker.MaxRequests == 0 {
			c.Breaker.MaxRequests = DefaultBreakerMaxRequests
		}
		if c.Breaker.Interval == 0 {
			c.Breaker.Interval = DefaultBreakerInterval
		}
		if c.Breaker.Timeout == 0 {
			c.Breaker.Timeout = DefaultBreakerTimeout
		}
		if c.Breaker.ReadyToTripRatio == 0 {
			c.Breaker.ReadyToTripRatio = DefaultBreakerReadyToTripRatio
		}
	}
	return c
}

// LoadConfig loads configuration from defaults and environment variables.
// Every setting can be overridden with a SEARCHSTORE_* variable, e.g.
// SEARCHSTORE_BASE_URL or SEARCHSTORE_BREAKER_ENABLED.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("api_key", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("max_retries", DefaultMaxRetries)
	v.SetDefault("retry_initial_interval", DefaultRetryInitialInterval)
	v.SetDefault("retry_max_interval", DefaultRetryMaxInterval)
	v.SetDefault("batch_size", DefaultBatchSize)
	v.SetDefault("max_concurrent_batches", DefaultMaxConcurrentBatches)
	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.max_requests", DefaultBreakerMaxRequests)
	v.SetDefault("breaker.interval", DefaultBreakerInterval)
	v.SetDefault("breaker.timeout", DefaultBreakerTimeout)
	v.SetDefault("breaker.ready_to_trip_ratio", DefaultBreakerReadyToTripRatio)

	v.SetEnvPrefix("SEARCHSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fault.Serializationf("unable to decode config: %v", err)
	}

	return cfg, nil
}
