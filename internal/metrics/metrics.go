package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"RSICheck/internal/model"
)

// Fetch results.
const (
	ResultOK    = "ok"
	ResultCache = "cache"
	ResultError = "error"
)

// Metrics holds the Prometheus collectors of the scanner. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	FetchTotal    *prometheus.CounterVec   // labels: source, result
	FetchDuration *prometheus.HistogramVec // labels: source

	ScansTotal   prometheus.Counter
	ScanDuration prometheus.Histogram
	LastScan     prometheus.Gauge
	SignalsTotal *prometheus.CounterVec // labels: signal

	NotifyTotal *prometheus.CounterVec // labels: result
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rsicheck_fetch_total",
			Help: "Price series loads by source and result (ok, cache, error)",
		}, []string{"source", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rsicheck_fetch_duration_seconds",
			Help:    "Latency of price series fetches from the data source",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),

		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rsicheck_scans_total",
			Help: "Completed watchlist scans",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rsicheck_scan_duration_seconds",
			Help:    "Watchlist scan latency, fetch and evaluation",
			Buckets: prometheus.DefBuckets,
		}),
		LastScan: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rsicheck_last_scan_timestamp_seconds",
			Help: "Unix time of the last completed scan",
		}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rsicheck_signals_total",
			Help: "Signals produced by scans, by type",
		}, []string{"signal"}),

		NotifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rsicheck_notify_total",
			Help: "Telegram deliveries by result",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.FetchTotal,
		m.FetchDuration,
		m.ScansTotal,
		m.ScanDuration,
		m.LastScan,
		m.SignalsTotal,
		m.NotifyTotal,
	)
	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFetch records one series load. d is ignored for cache hits.
func (m *Metrics) ObserveFetch(source, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchTotal.WithLabelValues(source, result).Inc()
	if result != ResultCache {
		m.FetchDuration.WithLabelValues(source).Observe(d.Seconds())
	}
}

// ObserveScan records a completed scan and the signals it produced.
func (m *Metrics) ObserveScan(d time.Duration, signals []model.SignalType) {
	if m == nil {
		return
	}
	m.ScansTotal.Inc()
	m.ScanDuration.Observe(d.Seconds())
	m.LastScan.SetToCurrentTime()
	for _, s := range signals {
		m.SignalsTotal.WithLabelValues(string(s)).Inc()
	}
}

// ObserveNotify records a Telegram delivery.
func (m *Metrics) ObserveNotify(err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.NotifyTotal.WithLabelValues(result).Inc()
}
