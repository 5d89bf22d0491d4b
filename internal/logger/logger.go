package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.SetGlobalLevel(levelFromEnv())
}

func levelFromEnv() zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO", "":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a logger for the given service, writing human-readable output
// to stderr. The level is controlled globally via LOG_LEVEL.
func New(service string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
