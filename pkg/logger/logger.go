package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"pdf-to-speech/internal/domain"

	"github.com/rs/zerolog"
)

// AppLogger implements the domain.Logger interface
type AppLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a new logger instance writing JSON lines to stdout.
// format "console" switches to a human readable writer.
func NewLogger(levelStr string, format string) domain.Logger {
	var out io.Writer = os.Stdout
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
	}
	return NewLoggerWithWriter(levelStr, out)
}

// NewLoggerWithWriter creates a logger that writes to out.
func NewLoggerWithWriter(levelStr string, out io.Writer) domain.Logger {
	zl := zerolog.New(out).
		Level(parseLogLevel(levelStr)).
		With().
		Timestamp().
		Logger()

	return &AppLogger{logger: zl}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.log(l.logger.Info(), msg, fields)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	l.log(l.logger.Error().Err(err), msg, fields)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.log(l.logger.Debug(), msg, fields)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.log(l.logger.Warn(), msg, fields)
}

// log attaches key/value pairs; a trailing key without value is dropped.
func (l *AppLogger) log(event *zerolog.Event, msg string, fields []interface{}) {
	if event == nil {
		return
	}
	if len(fields)%2 != 0 {
		fields = fields[:len(fields)-1]
	}
	if len(fields) > 0 {
		event = event.Fields(normalizeFields(fields))
	}
	event.Msg(msg)
}

// normalizeFields renders durations as milliseconds so log lines stay numeric.
func normalizeFields(fields []interface{}) []interface{} {
	out := make([]interface{}, len(fields))
	copy(out, fields)
	for i := 1; i < len(out); i += 2 {
		if d, ok := out[i].(time.Duration); ok {
			out[i] = d.Milliseconds()
		}
	}
	return out
}

// parseLogLevel converts string log level to a zerolog level
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
