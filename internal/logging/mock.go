package logging

import "sync"

// MockLogger records log calls for assertions in tests.
type MockLogger struct {
	mu      sync.Mutex
	Entries []MockEntry
}

// MockEntry is one recorded log call.
type MockEntry struct {
	Level  string
	Msg    string
	Fields []Field
}

// NewMockLogger returns an empty recording logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, MockEntry{Level: level, Msg: msg, Fields: fields})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return m
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m
}

// Messages returns the recorded messages in order.
func (m *MockLogger) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		msgs[i] = e.Msg
	}
	return msgs
}
