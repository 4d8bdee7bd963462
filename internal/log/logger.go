// Package log is the application logger. It keeps a small package-level
// API (Info, Debugf, LogWithFields, ...) over a logrus logger so callers
// never import logrus directly.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"folderpick/internal/errors"
)

var (
	isDebug atomic.Bool

	mu     sync.RWMutex
	logger = NewLogger()
)

// Field is a single structured key/value pair
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, structured entries
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// Option configures a Logger
type Option func(*Logger)

// WithOutput sends entries to w
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.entry.Logger.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line
func WithJSON() Option {
	return func(l *Logger) {
		l.entry.Logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyTime: "timestamp",
			},
		})
	}
}

// WithFile appends entries to the file at path, creating parent
// directories as needed. Falls back to stderr if the file can't be opened.
func WithFile(path string) Option {
	return func(l *Logger) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
			return
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
			return
		}
		l.file = f
		l.entry.Logger.SetOutput(f)
	}
}

// WithLevel sets the minimum level. Unknown names are ignored.
func WithLevel(level string) Option {
	return func(l *Logger) {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return
		}
		l.entry.Logger.SetLevel(lvl)
	}
}

// NewLogger creates a logger writing text entries to stderr
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	l := &Logger{entry: logrus.NewEntry(base)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	next := NewLogger(opts...)
	mu.Lock()
	prev := logger
	logger = next
	mu.Unlock()
	if prev != nil {
		prev.Close()
	}
}

func std() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetDebug enables or disables debug entries for every logger
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// DebugEnabled reports whether debug entries are written
func DebugEnabled() bool {
	return isDebug.Load()
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a child logger carrying fields
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data)}
}

// WithContext returns a child logger bound to ctx
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx)}
}

// WithError returns a child logger describing err
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

func join(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return msg + ": " + fmt.Sprint(args...)
}

// Info logs a message with arguments
func (l *Logger) Info(msg string, args ...interface{}) {
	l.entry.Info(join(msg, args))
}

// Infof logs a formatted message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Debug logs a message with arguments when debug is on
func (l *Logger) Debug(msg string, args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debug(join(msg, args))
	}
}

// Debugf logs a formatted message when debug is on
func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.entry.Debugf(format, args...)
	}
}

// Warn logs a warning with arguments
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.entry.Warn(join(msg, args))
}

// Warnf logs a formatted warning
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Error logs an error with arguments
func (l *Logger) Error(msg string, args ...interface{}) {
	l.entry.Error(join(msg, args))
}

// Errorf logs a formatted error
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{F("error", err.Error())}
	if kind := errors.KindOf(err); kind != errors.Unknown {
		fields = append(fields, F("error_kind", kind.String()))
	}
	var be *errors.BackendError
	if errors.As(err, &be) {
		fields = append(fields, F("endpoint", be.Endpoint()))
		if be.Status() != 0 {
			fields = append(fields, F("status", be.Status()))
		}
	}
	var ce *errors.ConfigError
	if errors.As(err, &ce) && ce.Param() != "" {
		fields = append(fields, F("param", ce.Param()))
	}
	var ne *errors.NodeError
	if errors.As(err, &ne) && ne.NodeType() != "" {
		fields = append(fields, F("node_type", ne.NodeType()))
	}
	return fields
}

// LogWithFields returns the package logger carrying fields
func LogWithFields(fields ...Field) *Logger {
	return std().With(fields...)
}

// LogWithError returns the package logger describing err
func LogWithError(err error) *Logger {
	return std().WithError(err)
}

// LogError logs err at error level with msg
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

// Info logs a message with arguments
func Info(msg string, args ...interface{}) {
	std().Info(msg, args...)
}

// Infof logs a formatted message
func Infof(format string, args ...interface{}) {
	std().Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	std().Debug(msg, args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	std().Debugf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	std().Error(msg, args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	std().Errorf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	std().Warn(msg, args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	std().Warnf(format, args...)
}
