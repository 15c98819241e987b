// Package metrics exposes Prometheus counters for binds and hypervisor
// check-ins.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "candlepin"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry     *prometheus.Registry
	binds        *prometheus.CounterVec
	hostCheckins *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		binds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pool_binds_total",
			Help:      "Pool bind attempts by outcome.",
		}, []string{"outcome"}),
		hostCheckins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hypervisor_host_checkins_total",
			Help:      "Hosts processed by hypervisor check-in by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.binds,
		m.hostCheckins,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveBind(outcome string) {
	m.binds.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveHostCheckin(outcome string) {
	m.hostCheckins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
