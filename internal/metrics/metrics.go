// Package metrics provides the recorder the services report into. It is
// constructed once in main and passed by reference; nothing in this module
// keeps metric state in package globals.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives the observability signals the services emit.
type Recorder interface {
	IncRequest(endpoint, status string)
	ObserveLatency(endpoint string, d time.Duration)
	// IncDispatch counts the outcome of a cross-service transaction
	// dispatch ("success" or "error").
	IncDispatch(outcome string)
}

// Prometheus is a Recorder backed by prometheus collectors registered on the
// given registerer.
type Prometheus struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	dispatch *prometheus.CounterVec
}

// NewPrometheus registers the service's collectors under the given name
// prefix and returns the recorder.
func NewPrometheus(service string, reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: service + "_request_count",
			Help: "Total number of requests by endpoint and status.",
		}, []string{"endpoint", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: service + "_request_latency_seconds",
			Help: "Request latency in seconds.",
		}, []string{"endpoint"}),
		dispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: service + "_transaction_dispatch_count",
			Help: "Cross-service transaction dispatch outcomes.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(p.requests, p.latency, p.dispatch)
	return p
}

func (p *Prometheus) IncRequest(endpoint, status string) {
	p.requests.WithLabelValues(endpoint, status).Inc()
}

func (p *Prometheus) ObserveLatency(endpoint string, d time.Duration) {
	p.latency.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (p *Prometheus) IncDispatch(outcome string) {
	p.dispatch.WithLabelValues(outcome).Inc()
}

// Nop discards every signal. Used in tests.
type Nop struct{}

func (Nop) IncRequest(string, string)            {}
func (Nop) ObserveLatency(string, time.Duration) {}
func (Nop) IncDispatch(string)                   {}
