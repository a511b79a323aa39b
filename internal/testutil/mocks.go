package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// MockClock implements the limiters' Clock interface with controllable time.
// This is used across pacing tests to make deadline arithmetic deterministic
// without actual time delays.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a new MockClock starting at the given time.
// If zero time is provided, uses current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{now: start}
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock clock forward by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set sets the mock clock to a specific time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// LogRecorder is a slog.Handler that captures log records so tests can
// assert on lateness warnings.
type LogRecorder struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewLogRecorder creates a new LogRecorder.
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

// Logger returns a *slog.Logger writing into the recorder.
func (r *LogRecorder) Logger() *slog.Logger {
	return slog.New(r)
}

// Enabled implements slog.Handler.
func (r *LogRecorder) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler.
func (r *LogRecorder) Handle(_ context.Context, record slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record.Clone())
	return nil
}

// WithAttrs implements slog.Handler. The recorder ignores handler attributes.
func (r *LogRecorder) WithAttrs([]slog.Attr) slog.Handler {
	return r
}

// WithGroup implements slog.Handler. The recorder ignores groups.
func (r *LogRecorder) WithGroup(string) slog.Handler {
	return r
}

// Count returns the number of captured records.
func (r *LogRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Messages returns the messages of all captured records.
func (r *LogRecorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := make([]string, len(r.records))
	for i, rec := range r.records {
		msgs[i] = rec.Message
	}
	return msgs
}

// Contains reports whether any captured message contains substr.
func (r *LogRecorder) Contains(substr string) bool {
	for _, msg := range r.Messages() {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// Reset clears all captured records.
func (r *LogRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
}
