// Package logger is the logging seam for netuse.
//
// While the dashboard runs it owns the terminal, so anything it logs goes to
// a FileLogger or Noop. The env logger writes to stderr and is only used by
// commands that print line-oriented output, like doctor.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger takes printf-style messages at four levels.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// DebugEnv turns on debug output for the env logger when set to any value.
const DebugEnv = "NETUSE_DEBUG"

// Level names a log severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type envLogger struct {
	out   *log.Logger
	debug bool
}

// NewEnvLogger logs to stderr with prefix in front of every line. Debug
// lines are kept only if NETUSE_DEBUG was set when the logger was created.
func NewEnvLogger(prefix string) Logger {
	return newEnvLogger(os.Stderr, prefix, os.Getenv(DebugEnv) != "")
}

func newEnvLogger(w io.Writer, prefix string, debug bool) *envLogger {
	if prefix != "" {
		prefix += " "
	}
	return &envLogger{out: log.New(w, prefix, log.LstdFlags|log.Lmsgprefix), debug: debug}
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if l.debug {
		l.out.Printf(format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	l.out.Printf(format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	l.out.Printf("WARN: "+format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	l.out.Printf("ERROR: "+format, args...)
}

type noopLogger struct{}

// Noop discards everything.
func Noop() Logger { return noopLogger{} }

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// LogMessage is one captured message.
type LogMessage struct {
	Level   Level
	Message string
}

// BufferLogger keeps messages in memory so tests can assert on them.
type BufferLogger struct {
	Messages []LogMessage
}

func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) record(level Level, format string, args []interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.record(LevelDebug, format, args) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.record(LevelInfo, format, args) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.record(LevelWarn, format, args) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.record(LevelError, format, args) }

// HasLevel reports whether anything was logged at level.
func (l *BufferLogger) HasLevel(level Level) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear drops captured messages.
func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}
