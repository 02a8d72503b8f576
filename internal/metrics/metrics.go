// Package metrics exposes Prometheus collectors for HTTP traffic and health events.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "healthguard"

// emergencyTypes are reported under their own label value. Any other
// client supplied type is counted as otherEmergencyType.
var emergencyTypes = map[string]bool{
	"health_alert":     true,
	"health_emergency": true,
	"fall":             true,
	"manual":           true,
	"sos":              true,
}

const otherEmergencyType = "other"

type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	readingsTotal       *prometheus.CounterVec
	emergenciesTotal    *prometheus.CounterVec
}

// New registers all collectors on a fresh registry, so several instances can coexist in tests.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		httpRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		readingsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "health_readings_total",
			Help:      "Health readings stored, by client supplied abnormal flag",
		}, []string{"abnormal"}),
		emergenciesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emergencies_triggered_total",
			Help:      "Emergency alerts triggered, by known type or other",
		}, []string{"type"}),
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) RecordReading(abnormal bool) {
	if m == nil {
		return
	}
	m.readingsTotal.WithLabelValues(strconv.FormatBool(abnormal)).Inc()
}

func (m *Metrics) RecordEmergency(kind string) {
	if m == nil {
		return
	}
	if !emergencyTypes[kind] {
		kind = otherEmergencyType
	}
	m.emergenciesTotal.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
