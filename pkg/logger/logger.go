// Package logger provides a leveled printf-style logger writing to
// stdout and an optional log file simultaneously.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Level is the minimum severity that gets written.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger writes leveled log lines. Safe for concurrent use (the
// underlying log.Logger serializes writes).
type Logger struct {
	out   *log.Logger
	level Level
	file  *os.File
}

// New creates a logger writing to stdout and, when file is non-empty,
// to the given file (created with its parent directory if needed).
func New(file string, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	writers := []io.Writer{os.Stdout}
	var f *os.File
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log directory: %w", err)
		}
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		writers = append(writers, f)
	}

	return &Logger{
		out:   log.New(io.MultiWriter(writers...), "", log.LstdFlags),
		level: lvl,
		file:  f,
	}, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, v ...interface{}) { l.write(LevelDebug, "DEBUG", format, v...) }

// Info logs at info level.
func (l *Logger) Info(format string, v ...interface{}) { l.write(LevelInfo, "INFO", format, v...) }

// Warn logs at warn level.
func (l *Logger) Warn(format string, v ...interface{}) { l.write(LevelWarn, "WARN", format, v...) }

// Error logs at error level.
func (l *Logger) Error(format string, v ...interface{}) { l.write(LevelError, "ERROR", format, v...) }

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.write(LevelError, "FATAL", format, v...)
	os.Exit(1)
}

func (l *Logger) write(lvl Level, tag string, format string, v ...interface{}) {
	if lvl < l.level {
		return
	}
	l.out.Printf("[%s] %s", tag, fmt.Sprintf(format, v...))
}

func parseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
}
