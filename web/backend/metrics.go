package backend

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stagelog"

// Metrics owns the Prometheus registry served on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	requests    *prometheus.CounterVec
	upstream    *prometheus.CounterVec
	jobsQueued  prometheus.Counter
	jobsRunning prometheus.Gauge
	renamed     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by handler.",
		}, []string{"handler", "code", "method"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kopis_requests_total",
			Help:      "Requests sent to the KOPIS API.",
		}, []string{"code", "method"}),
		jobsQueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_queued_total",
			Help:      "Re-normalization jobs accepted into the queue.",
		}),
		jobsRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jobs_running",
			Help:      "Jobs currently executing.",
		}),
		renamed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renormalized_fields_total",
			Help:      "Ticket fields rewritten by re-normalization jobs.",
		}, []string{"field"}),
	}

	m.Registry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.upstream,
		m.jobsQueued,
		m.jobsRunning,
		m.renamed,
	)
	return m
}

// InstrumentTransport counts outgoing KOPIS requests by status code.
func (m *Metrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(m.upstream, next)
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) instrument(name string, h http.HandlerFunc) http.Handler {
	return promhttp.InstrumentHandlerCounter(
		m.requests.MustCurryWith(prometheus.Labels{"handler": name}),
		h,
	)
}
