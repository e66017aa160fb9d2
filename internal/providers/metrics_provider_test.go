package providers

import (
	"storemon/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

// --- minimal mock for ReportCounts ---

type metricsTestCounts struct{}

func (m *metricsTestCounts) Running() int { return 1 }
func (m *metricsTestCounts) Len() int     { return 3 }

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &metricsTestCounts{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", "2xx")
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncReportsTriggered()
	m.IncReportsCompleted()
	m.IncReportsFailed()
	m.ObserveGenerationDuration(time.Millisecond)
	m.IncStoreComputeErrors()
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestCounts{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestCounts{})

	// These should not panic
	m.IncRequestsTotal("/get_report", "2xx")
	m.IncRequestsTotal("/get_report", "4xx")
	m.ObserveRequestDuration("/get_report", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncReportsTriggered()
	m.IncReportsCompleted()
	m.IncReportsFailed()
	m.ObserveGenerationDuration(100 * time.Millisecond)
	m.IncStoreComputeErrors()
}
