package logger

// Log levels accepted by Config.Level
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls how the logger is built.
type Config struct {
	// Level is the minimum level that gets emitted. One of the level
	// constants above; anything else falls back to info.
	Level string `yaml:"level" envconfig:"SEARCHSTORE_LOG_LEVEL"`

	// ServiceName is stamped onto every log entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"SEARCHSTORE_SERVICE_NAME"`
}

// DefaultConfig returns the logger configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Level:       Info,
		ServiceName: "searchstore",
	}
}
