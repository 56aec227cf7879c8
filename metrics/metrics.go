// Package metrics implements the event.Observer contract on top of
// Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	cevent "github.com/next-trace/scg-event-aggregator/contract/event"
)

var (
	eventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventbus",
			Subsystem: "aggregator",
			Name:      "events_published_total",
			Help:      "Total number of published events",
		},
		[]string{"kind"},
	)

	handlerInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventbus",
			Subsystem: "aggregator",
			Name:      "handler_invocations_total",
			Help:      "Total number of handler invocations",
		},
		[]string{"kind", "outcome"},
	)

	resolutionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventbus",
			Subsystem: "adapter",
			Name:      "resolution_failures_total",
			Help:      "Total dynamic binding resolution failures",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(eventsPublishedTotal, handlerInvocationsTotal, resolutionFailuresTotal)
}

// Observer records dispatch activity in the package collectors.
type Observer struct{}

// New creates a Prometheus-backed observer.
func New() Observer { return Observer{} }

// Ensure Observer implements the contract.
var _ cevent.Observer = Observer{}

func (Observer) EventPublished(kind string, subscribers int) {
	_ = subscribers

	eventsPublishedTotal.WithLabelValues(kind).Inc()
}

func (Observer) HandlerInvoked(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	handlerInvocationsTotal.WithLabelValues(kind, outcome).Inc()
}

func (Observer) ResolutionFailed(name, reason string) {
	_ = name

	resolutionFailuresTotal.WithLabelValues(reason).Inc()
}
