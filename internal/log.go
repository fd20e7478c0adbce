package internal

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarn:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelTrace:
		return "TRACE"
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ParseLogLevel maps a LOG_LEVEL value to a level. Matching ignores case.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LogLevelError, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "INFO":
		return LogLevelInfo, nil
	case "DEBUG":
		return LogLevelDebug, nil
	case "TRACE":
		return LogLevelTrace, nil
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger provides leveled logging
type Logger struct {
	level     LogLevel
	component string
	out       *log.Logger
}

// NewLogger creates a new logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level, out: log.Default()}
}

// NewDefaultLogger creates a logger based on LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	level := LogLevelInfo
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if parsed, err := ParseLogLevel(levelStr); err == nil {
			level = parsed
		}
	}
	return NewLogger(level)
}

// With returns a logger that tags every line with component.
func (l *Logger) With(component string) *Logger {
	return &Logger{level: l.level, component: component, out: l.out}
}

// WithOutput returns a copy that writes through out.
func (l *Logger) WithOutput(out *log.Logger) *Logger {
	return &Logger{level: l.level, component: l.component, out: out}
}

func (l *Logger) printf(level LogLevel, format string, args ...interface{}) {
	if l.level < level {
		return
	}
	prefix := "[" + level.String() + "] "
	if l.component != "" {
		prefix += l.component + ": "
	}
	l.out.Printf(prefix+format, args...)
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.printf(LogLevelError, format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.printf(LogLevelWarn, format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.printf(LogLevelInfo, format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.printf(LogLevelDebug, format, args...)
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	l.printf(LogLevelTrace, format, args...)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
