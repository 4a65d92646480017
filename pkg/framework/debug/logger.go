// Package debug provides logging, profiling and buffer analysis for plugin
// and tooling code.
package debug

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured log fields.
type Fields = logrus.Fields

// Logger is a leveled logger with an optional component prefix.
type Logger struct {
	base   *logrus.Logger
	entry  *logrus.Entry
	prefix string
}

var defaultLogger = New(os.Stderr, "")

// New creates a logger writing text records to output at info level.
func New(output io.Writer, prefix string) *Logger {
	base := logrus.New()
	base.SetOutput(output)
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	})
	return newLogger(base, prefix)
}

func newLogger(base *logrus.Logger, prefix string) *Logger {
	entry := logrus.NewEntry(base)
	if prefix != "" {
		entry = entry.WithField("component", prefix)
	}
	return &Logger{base: base, entry: entry, prefix: prefix}
}

// ParseLevel converts a level name ("debug", "info", "warn", "error", "off")
// to a logrus level. "off" maps to panic level, which nothing here logs at.
func ParseLevel(name string) (logrus.Level, error) {
	if strings.EqualFold(strings.TrimSpace(name), "off") {
		return logrus.PanicLevel, nil
	}
	return logrus.ParseLevel(name)
}

// Named returns a logger sharing output and level with l under another
// component prefix.
func (l *Logger) Named(prefix string) *Logger {
	return newLogger(l.base, prefix)
}

// Prefix returns the component prefix.
func (l *Logger) Prefix() string {
	return l.prefix
}

// SetOutput sets the output destination for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level logrus.Level) {
	l.base.SetLevel(level)
}

// SetLevelName sets the minimum log level by name.
func (l *Logger) SetLevelName(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	l.base.SetLevel(level)
	return nil
}

// Level returns the current minimum level.
func (l *Logger) Level() logrus.Level {
	return l.base.GetLevel()
}

// IsDebug reports whether debug records are written.
func (l *Logger) IsDebug() bool {
	return l.base.IsLevelEnabled(logrus.DebugLevel)
}

// WithFields returns an entry carrying the component prefix plus fields.
func (l *Logger) WithFields(fields Fields) *logrus.Entry {
	return l.entry.WithFields(fields)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Default returns the default logger instance.
func Default() *Logger {
	return defaultLogger
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level logrus.Level) {
	defaultLogger.SetLevel(level)
}

// WithFields returns an entry of the default logger.
func WithFields(fields Fields) *logrus.Entry {
	return defaultLogger.WithFields(fields)
}

// Debug logs a debug message using the default logger.
func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

// Info logs an informational message using the default logger.
func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

// Warn logs a warning message using the default logger.
func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

// Error logs an error message using the default logger.
func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}
