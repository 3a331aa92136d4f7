package logging

import "fmt"

// MockLogger is a mock implementation of the Logger interface for testing.
// It captures log entries for verification in tests.
type MockLogger struct {
	Entries       []LogEntry
	pendingError  error
	pendingFields []Field
}

// LogEntry represents a single log entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// Debug logs a debug-level message with optional fields.
func (m *MockLogger) Debug(msg string, fields ...Field) {
	m.record("DEBUG", msg, fields)
}

// Info logs an info-level message with optional fields.
func (m *MockLogger) Info(msg string, fields ...Field) {
	m.record("INFO", msg, fields)
}

// Warn logs a warning-level message with optional fields.
func (m *MockLogger) Warn(msg string, fields ...Field) {
	m.record("WARN", msg, fields)
}

// Error logs an error-level message with optional fields.
func (m *MockLogger) Error(msg string, fields ...Field) {
	m.record("ERROR", msg, fields)
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	allFields := append(m.pendingFields, fields...)
	m.Entries = append(m.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
		Error:   m.pendingError,
	})
}

// WithError returns a new logger with an error field attached.
func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{
		Entries:       m.Entries,
		pendingError:  err,
		pendingFields: m.pendingFields,
	}
}

// WithField returns a new logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a new logger with multiple fields attached.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	allFields := append(m.pendingFields, fields...)
	return &MockLogger{
		Entries:       m.Entries,
		pendingError:  m.pendingError,
		pendingFields: allFields,
	}
}

// Fatal logs a fatal-level message.
// In the mock implementation, we don't actually exit.
func (m *MockLogger) Fatal(msg string, fields ...Field) {
	m.record("FATAL", msg, fields)
}

// Fatalf logs a fatal-level message with formatting.
// In the mock implementation, we don't actually exit.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.Entries = append(m.Entries, LogEntry{
		Level:   "FATAL",
		Message: fmt.Sprintf(msg, args...),
		Fields:  m.pendingFields,
		Error:   m.pendingError,
	})
}

// GetEntries returns all captured log entries.
func (m *MockLogger) GetEntries() []LogEntry {
	return m.Entries
}

// HasEntry checks if a log entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.Entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}

// Clear removes all captured log entries.
func (m *MockLogger) Clear() {
	m.Entries = []LogEntry{}
}
