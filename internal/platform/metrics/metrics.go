package metrics

import (
	"net/http"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "drivethru"

// ServerMetrics holds HTTP and order-level collectors.
type ServerMetrics struct {
	Requests   *prometheus.CounterVec
	LatencyMS  *prometheus.HistogramVec
	Actions    *prometheus.CounterVec
	ItemTotals *prometheus.GaugeVec
	gatherer   prometheus.Gatherer
}

// NewServerMetrics creates the collectors and registers them on reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewServerMetrics(reg *prometheus.Registry) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "actions_total",
		Help:      "Processed order actions by kind and outcome status.",
	}, []string{"action", "status"})
	totals := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "item_totals",
		Help:      "Current net quantity per item kind in the session.",
	}, []string{"item"})

	reg.MustRegister(requests, latency, actions, totals)
	return &ServerMetrics{
		Requests:   requests,
		LatencyMS:  latency,
		Actions:    actions,
		ItemTotals: totals,
		gatherer:   reg,
	}
}

// RecordAction counts one processed action and refreshes the totals gauge.
func (m *ServerMetrics) RecordAction(action string, result *domain.ActionResult) {
	m.Actions.WithLabelValues(action, string(result.Status)).Inc()
	for _, kind := range domain.ItemKinds {
		m.ItemTotals.WithLabelValues(string(kind)).Set(float64(result.Totals[kind]))
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
