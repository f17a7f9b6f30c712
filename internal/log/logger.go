package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"mlibctl/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.RWMutex
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log line
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger
type Option func(*logrus.Logger)

// WithOutput sends log lines to w
func WithOutput(w io.Writer) Option {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// WithJSON switches to JSON formatted lines
func WithJSON() Option {
	return func(l *logrus.Logger) {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

// WithFile appends log lines to the file at path. Falls back to stderr
// when the file cannot be opened.
func WithFile(path string) Option {
	return func(l *logrus.Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			l.SetOutput(os.Stderr)
			l.Warnf("cannot open log file %s: %v", path, err)
			return
		}
		l.SetOutput(f)
	}
}

// Logger is a thin wrapper over a logrus entry
type Logger struct {
	entry *logrus.Entry
}

// NewLogger creates a logger writing text lines to stderr unless
// configured otherwise.
func NewLogger(opts ...Option) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.DebugLevel)
	for _, opt := range opts {
		opt(l)
	}
	return &Logger{entry: logrus.NewEntry(l)}
}

// With returns a logger carrying the given fields
func (l *Logger) With(fields ...Field) *Logger {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(lf)}
}

// WithError returns a logger carrying err and, for classified errors, its kind
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	e := l.entry.WithError(err)
	if kind := errors.KindOf(err); kind != errors.Unknown {
		e = e.WithField("kind", kind.String())
	}
	var gwErr *errors.GatewayError
	if errors.As(err, &gwErr) {
		e = e.WithField("op", gwErr.Op())
	}
	return &Logger{entry: e}
}

// WithContext attaches ctx to the entry. A nil ctx is allowed.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx)}
}

func (l *Logger) Info(args ...interface{}) { l.entry.Info(args...) }

func (l *Logger) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

func (l *Logger) Warn(args ...interface{}) { l.entry.Warn(args...) }

func (l *Logger) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l *Logger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Debug logs only when debug output is enabled
func (l *Logger) Debug(args ...interface{}) {
	if debugEnabled() {
		l.entry.Debug(args...)
	}
}

// Debugf logs a formatted message only when debug output is enabled
func (l *Logger) Debugf(format string, args ...interface{}) {
	if debugEnabled() {
		l.entry.Debugf(format, args...)
	}
}

func debugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return isDebug
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetDebug toggles debug output for every logger
func SetDebug(debug bool) {
	mu.Lock()
	isDebug = debug
	mu.Unlock()
}

// Configure replaces the package logger
func Configure(opts ...Option) {
	l := NewLogger(opts...)
	mu.Lock()
	logger = l
	mu.Unlock()
}

// SetOutput redirects the package logger
func SetOutput(w io.Writer) {
	Configure(WithOutput(w))
}

// Default returns the package logger
func Default() *Logger {
	return current()
}

// LogWithFields returns the package logger with fields attached
func LogWithFields(fields ...Field) *Logger {
	return current().With(fields...)
}

// LogWithError returns the package logger with err attached
func LogWithError(err error) *Logger {
	return current().WithError(err)
}

func Info(format string, args ...interface{}) {
	current().Infof(format, args...)
}

func Infof(format string, args ...interface{}) {
	current().Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	if len(args) == 0 {
		current().Debug(msg)
		return
	}
	current().Debug(msg + ": " + fmt.Sprint(args...))
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	current().Debugf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	if len(args) == 0 {
		current().Error(msg)
		return
	}
	current().Error(msg + ": " + fmt.Sprint(args...))
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	current().Errorf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	if len(args) == 0 {
		current().Warn(msg)
		return
	}
	current().Warn(msg + ": " + fmt.Sprint(args...))
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	current().Warnf(format, args...)
}
