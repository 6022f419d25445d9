package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
)

// Metrics counts dispatched actions. It satisfies contract.Recorder so the
// dispatcher can feed it directly.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ contractx.Recorder = (*Metrics)(nil)

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafe_actions",
			Name:      "invocations_total",
			Help:      "Dispatched actions by name and outcome.",
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cafe_actions",
			Name:      "duration_seconds",
			Help:      "Time spent running an action, including the backend call.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"action"}),
	}
	reg.MustRegister(
		m.invocations,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Record(_ context.Context, inv contractx.Invocation) error {
	m.invocations.WithLabelValues(inv.Action, string(inv.Outcome)).Inc()
	m.duration.WithLabelValues(inv.Action).Observe(inv.Duration.Seconds())
	return nil
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
