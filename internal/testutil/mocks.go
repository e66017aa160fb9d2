package testutil

import (
	"storemon/internal/models"
	"storemon/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountOf returns how many recorded entries hit the given level.
func (m *MockLogger) CountOf(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu          sync.Mutex
	Requests    int
	CacheHits   int
	CacheMisses int
	Triggered   int
	Completed   int
	Failed      int
	StoreErrors int
	Durations   []time.Duration
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncReportsTriggered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Triggered++
}
func (m *MockMetrics) IncReportsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completed++
}
func (m *MockMetrics) IncReportsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failed++
}
func (m *MockMetrics) ObserveGenerationDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations = append(m.Durations, d)
}
func (m *MockMetrics) IncStoreComputeErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreErrors++
}

func (m *MockMetrics) Counts() (triggered, completed, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Triggered, m.Completed, m.Failed
}

// MockSink records written reports and can be forced to fail.
type MockSink struct {
	mu      sync.Mutex
	Written map[string][]models.MetricsRow
	FailErr error
}

func NewMockSink() *MockSink {
	return &MockSink{Written: make(map[string][]models.MetricsRow)}
}

func (m *MockSink) Write(reportID string, rows []models.MetricsRow) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailErr != nil {
		return "", m.FailErr
	}
	m.Written[reportID] = rows
	return "/reports/" + reportID + ".csv", nil
}

func (m *MockSink) Rows(reportID string) []models.MetricsRow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Written[reportID]
}
