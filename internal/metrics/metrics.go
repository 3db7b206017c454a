// Package metrics exposes Prometheus metrics for the catalog, search and
// visitor sessions. All methods are safe on a nil *Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ziadkadry99/gravemap/internal/records"
)

const namespace = "gravemap"

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry       *prometheus.Registry
	records        prometheus.Gauge
	persons        prometheus.Gauge
	skipped        prometheus.Gauge
	reloads        *prometheus.CounterVec
	reloadDuration prometheus.Histogram
	searches       prometheus.Counter
	sessions       prometheus.Gauge
}

// New creates and registers the collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Burial locations in the published store.",
		}),
		persons: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "persons",
			Help:      "Persons in the published store.",
		}),
		skipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_skipped",
			Help:      "Rows dropped by the last successful reload.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Reload attempts by result.",
		}, []string{"result"}),
		reloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reload_duration_seconds",
			Help:      "Time taken to fetch and aggregate rows.",
			Buckets:   prometheus.DefBuckets,
		}),
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Search queries served.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Open visitor websocket sessions.",
		}),
	}
	m.registry.MustRegister(
		m.records, m.persons, m.skipped, m.reloads, m.reloadDuration, m.searches, m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ReloadFinished records a reload attempt. store is nil on failure.
func (m *Metrics) ReloadFinished(store *records.Store, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.reloadDuration.Observe(took.Seconds())
	if err != nil {
		m.reloads.WithLabelValues("error").Inc()
		return
	}
	m.reloads.WithLabelValues("ok").Inc()
	m.records.Set(float64(store.Len()))
	m.persons.Set(float64(store.PersonCount()))
	m.skipped.Set(float64(store.Skipped()))
}

// SearchServed counts one search.
func (m *Metrics) SearchServed() {
	if m == nil {
		return
	}
	m.searches.Inc()
}

// SessionOpened and SessionClosed track live websocket sessions.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
