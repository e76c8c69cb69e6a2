package logger

import "go.uber.org/zap/zapcore"

// Accepted values for Config.Level. Anything zapcore.ParseLevel understands
// ("warn", "dpanic", ...) is accepted as well.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Accepted values for Config.Encoding.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

type Config struct {
	// Level is the minimum level written. Unknown or empty values mean info.
	Level string `mapstructure:"level"`

	// Encoding selects the zap encoder.
	// Default: "json"
	Encoding string `mapstructure:"encoding"`

	// Development switches zap to development mode: stack traces on warn and
	// panics on DPanic.
	Development bool `mapstructure:"development"`

	// EnableTracing adds trace_id and span_id from the context to every
	// *WithContext log entry.
	EnableTracing bool `mapstructure:"enable_tracing"`

	// ServiceName is attached to every entry as "service".
	ServiceName string `mapstructure:"service_name"`
}

// zapLevel maps Level to a zap level, falling back to info.
func (c Config) zapLevel() zapcore.Level {
	switch c.Level {
	case Debug:
		return zapcore.DebugLevel
	case Info, "":
		return zapcore.InfoLevel
	case Warning:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	}
	if lvl, err := zapcore.ParseLevel(c.Level); err == nil {
		return lvl
	}
	return zapcore.InfoLevel
}
