package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLevel maps LOG_LEVEL values to slog levels. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger returns a JSON logger on out, fanned out to logFile when one is
// configured. The cleanup function closes the file.
func SetupLogger(out io.Writer, level slog.Level, logFile string) (*slog.Logger, func() error) {
	stdoutHandler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	if logFile == "" {
		return slog.New(stdoutHandler), func() error { return nil }
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger := slog.New(stdoutHandler)
		logger.Error("failed to open log file, logging to console only", "error", err, "file", logFile)
		return logger, func() error { return nil }
	}

	return SetupLoggerWithWriters(out, file, level), file.Close
}

// SetupLoggerWithWriters fans JSON records out to the console and a log sink.
func SetupLoggerWithWriters(console, sink io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		slog.NewJSONHandler(console, &slog.HandlerOptions{Level: level}),
		slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: level}),
	))
}
