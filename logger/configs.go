package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Output encodings accepted by Config.Encoding.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// Config configures the zap logger built by NewLoggerClient.
type Config struct {
	// Level is the minimum level written: "debug", "info", "warning" or
	// "error". Anything else means "info".
	Level string `yaml:"level" envconfig:"LOGGER_LEVEL"`

	// Encoding is "json" (default) or "console".
	Encoding string `yaml:"encoding" envconfig:"LOGGER_ENCODING"`

	// ServiceName is added as the "service" field of every entry.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to entries logged through the
	// ...WithContext methods when the context carries a valid span context.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// CallerSkip is the number of stack frames between the caller to report
	// and the logger. Values below 1 mean 1.
	CallerSkip int `yaml:"caller_skip" envconfig:"LOGGER_CALLER_SKIP"`
}
