package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "redemption"

type Recorder interface {
	// ReservationOutcome counts reserve calls by code kind and result
	// ("reserved" or an ineligibility reason).
	ReservationOutcome(kind, outcome string)
	// TransitionOutcome counts confirm/release/expire calls by target status
	// and result ("applied", "noop", "conflict").
	TransitionOutcome(target, outcome string)
	SweepResult(expired, skipped, failed int)
	AuditRelayed(published, failed int)
}

type Prometheus struct {
	registry    *prometheus.Registry
	reservation *prometheus.CounterVec
	transition  *prometheus.CounterVec
	sweep       *prometheus.CounterVec
	relay       *prometheus.CounterVec
}

func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	p := &Prometheus{
		registry: reg,
		reservation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_total",
			Help:      "Reserve attempts by code kind and outcome.",
		}, []string{"kind", "outcome"}),
		transition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Ledger transition requests by target status and outcome.",
		}, []string{"target", "outcome"}),
		sweep: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reaper_entries_total",
			Help:      "Stale reservations handled by the reaper.",
		}, []string{"result"}),
		relay: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_events_total",
			Help:      "Audit events relayed from the outbox.",
		}, []string{"result"}),
	}
	reg.MustRegister(p.reservation, p.transition, p.sweep, p.relay)
	return p
}

func (p *Prometheus) ReservationOutcome(kind, outcome string) {
	p.reservation.WithLabelValues(kind, outcome).Inc()
}

func (p *Prometheus) TransitionOutcome(target, outcome string) {
	p.transition.WithLabelValues(target, outcome).Inc()
}

func (p *Prometheus) SweepResult(expired, skipped, failed int) {
	p.sweep.WithLabelValues("expired").Add(float64(expired))
	p.sweep.WithLabelValues("skipped").Add(float64(skipped))
	p.sweep.WithLabelValues("failed").Add(float64(failed))
}

func (p *Prometheus) AuditRelayed(published, failed int) {
	p.relay.WithLabelValues("published").Add(float64(published))
	p.relay.WithLabelValues("failed").Add(float64(failed))
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

type Nop struct{}

func (Nop) ReservationOutcome(string, string) {}
func (Nop) TransitionOutcome(string, string)  {}
func (Nop) SweepResult(int, int, int)         {}
func (Nop) AuditRelayed(int, int)             {}
