package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "POGO_LOG_LEVEL"

// InitLogger installs a console logger tagged with app as the global logger.
func InitLogger(app, level string) zerolog.Logger {
	return InitLoggerTo(os.Stderr, app, level)
}

// InitLoggerTo is InitLogger writing to out.
func InitLoggerTo(out io.Writer, app, level string) zerolog.Logger {
	if env, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(env) != "" {
		level = env
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).Level(ParseLevel(level)).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}

// ParseLevel maps a level name to a zerolog level. Unknown names yield info.
func ParseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
