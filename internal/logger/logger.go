package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger, configured once at startup and read-only
// afterwards.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the global logger from the LOG_LEVEL and LOG_FORMAT settings.
func Init(level, format string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}

	if format == "console" {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger().Level(parsed)
	} else {
		Logger = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(parsed)
	}

	log.Logger = Logger
}

// WithRequestID returns a child logger carrying the request correlation id.
func WithRequestID(requestID string) zerolog.Logger {
	return Logger.With().Str("request_id", requestID).Logger()
}
