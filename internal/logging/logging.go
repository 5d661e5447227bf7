package logging

import (
	"io"
	"log"
)

// Logger provides leveled logging on top of a std log.Logger.
// A nil *Logger discards everything.
type Logger struct {
	out   *log.Logger
	debug bool
}

// New creates a logger writing through the process-wide std logger, so
// tea.LogToFile and log.SetOutput redirect it too.
func New(debug bool) *Logger {
	return &Logger{out: log.Default(), debug: debug}
}

// NewWriter creates a logger writing to w.
func NewWriter(w io.Writer, debug bool) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags), debug: debug}
}

// Nop returns a logger that drops every message.
func Nop() *Logger {
	return NewWriter(io.Discard, false)
}

// DebugEnabled reports whether debug messages are emitted.
func (l *Logger) DebugEnabled() bool {
	return l != nil && l.debug
}

// Info logs an info message
func (l *Logger) Info(format string, args ...any) {
	l.printf("INFO: ", format, args...)
}

// Warn logs a recoverable problem.
func (l *Logger) Warn(format string, args ...any) {
	l.printf("WARN: ", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...any) {
	l.printf("ERROR: ", format, args...)
}

// Debug logs a debug message, only when debug is enabled.
func (l *Logger) Debug(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.printf("DEBUG: ", format, args...)
}

func (l *Logger) printf(level, format string, args ...any) {
	if l == nil || l.out == nil {
		return
	}
	l.out.Printf(level+format, args...)
}
