package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter adapts logrus.Logger to implement our Logger interface.
// This allows us to use logrus as the underlying logging implementation
// while keeping the rest of the codebase decoupled from it.
type LogrusAdapter struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

var (
	defaultLogger     Logger
	defaultLoggerOnce sync.Once
)

// GetLogger returns the process-wide default logger, creating it on first use.
// Packages that need a logger before dependency injection has happened
// (package-level `var log = logging.GetLogger()`) go through here.
func GetLogger() Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewLogrusAdapter("info", "text")
	})
	return defaultLogger
}

// SetAllLogLevels sets the global logrus level so that every existing and
// future logrus-backed logger honours it.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
}

// NewLogrusAdapter creates a new LogrusAdapter with the specified log level and format.
//
// Parameters:
//   - level: Log level as string ("debug", "info", "warn", "error")
//   - format: Log format as string ("json" or "text")
//
// Returns a Logger interface implementation backed by logrus.
func NewLogrusAdapter(level, format string) Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set log format
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &LogrusAdapter{
		logger: logger,
		entry:  logrus.NewEntry(logger),
	}
}

// NewLogrusAdapterFromLogger creates a LogrusAdapter from an existing logrus.Logger.
// This is useful for maintaining compatibility with existing code.
func NewLogrusAdapterFromLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogrusAdapter{
		logger: logger,
		entry:  logrus.NewEntry(logger),
	}
}

// Debug logs a debug-level message with optional fields
func (l *LogrusAdapter) Debug(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Debug(msg)
}

// Info logs an info-level message with optional fields
func (l *LogrusAdapter) Info(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Info(msg)
}

// Warn logs a warning-level message with optional fields
func (l *LogrusAdapter) Warn(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Warn(msg)
}

// Error logs an error-level message with optional fields
func (l *LogrusAdapter) Error(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Error(msg)
}

// WithError returns a new logger with an error field attached
func (l *LogrusAdapter) WithError(err error) Logger {
	return &LogrusAdapter{
		logger: l.logger,
		entry:  l.entry.WithError(err),
	}
}

// WithField returns a new logger with a single field attached
func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return &LogrusAdapter{
		logger: l.logger,
		entry:  l.entry.WithField(key, value),
	}
}

// WithFields returns a new logger with multiple fields attached
func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return &LogrusAdapter{
		logger: l.logger,
		entry:  l.entry.WithFields(convertFields(fields)),
	}
}

// convertFields converts our Field slice to logrus.Fields map
func convertFields(fields []Field) logrus.Fields {
	logrusFields := make(logrus.Fields, len(fields))
	for _, field := range fields {
		logrusFields[field.Key] = field.Value
	}
	return logrusFields
}

// Fatal logs a fatal-level message and exits the program
func (l *LogrusAdapter) Fatal(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Fatal(msg)
}

// Fatalf logs a fatal-level message with formatting and exits the program
func (l *LogrusAdapter) Fatalf(msg string, args ...interface{}) {
	l.entry.Fatalf(msg, args...)
}
