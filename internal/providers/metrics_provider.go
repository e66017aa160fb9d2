package providers

import (
	"storemon/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReportCounts is the slice of the report store the metrics gauges need.
type ReportCounts interface {
	Running() int
	Len() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status string)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncReportsTriggered()
	IncReportsCompleted()
	IncReportsFailed()
	ObserveGenerationDuration(duration time.Duration)
	IncStoreComputeErrors()
}

type MetricsProvider struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	reportsTriggered   prometheus.Counter
	reportsCompleted   prometheus.Counter
	reportsFailed      prometheus.Counter
	generationDuration prometheus.Histogram
	storeErrors        prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status string) {
	m.requestsTotal.WithLabelValues(endpoint, status).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncReportsTriggered() {
	m.reportsTriggered.Inc()
}

func (m *MetricsProvider) IncReportsCompleted() {
	m.reportsCompleted.Inc()
}

func (m *MetricsProvider) IncReportsFailed() {
	m.reportsFailed.Inc()
}

func (m *MetricsProvider) ObserveGenerationDuration(duration time.Duration) {
	m.generationDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStoreComputeErrors() {
	m.storeErrors.Inc()
}

func NewMetricsProvider(conf *structures.Config, counts ReportCounts) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "storemon_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storemon_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storemon_cache_hits_total",
			Help: "Total number of report cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storemon_cache_misses_total",
			Help: "Total number of report cache misses",
		}),

		reportsTriggered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storemon_reports_triggered_total",
			Help: "Total number of report runs triggered",
		}),

		reportsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storemon_reports_completed_total",
			Help: "Total number of report runs completed",
		}),

		reportsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storemon_reports_failed_total",
			Help: "Total number of report runs failed",
		}),

		generationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "storemon_report_generation_seconds",
			Help:    "Duration of report generation runs in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}),

		storeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storemon_store_compute_errors_total",
			Help: "Total number of per-store metric computations that degraded",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "storemon_reports_running",
		Help: "Number of report runs currently in the Running state",
	}, func() float64 {
		return float64(counts.Running())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "storemon_reports_total",
		Help: "Number of report jobs tracked by the status store",
	}, func() float64 {
		return float64(counts.Len())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ string)              {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncReportsTriggered()                             {}
func (n *noopMetrics) IncReportsCompleted()                             {}
func (n *noopMetrics) IncReportsFailed()                                {}
func (n *noopMetrics) ObserveGenerationDuration(_ time.Duration)        {}
func (n *noopMetrics) IncStoreComputeErrors()                           {}
