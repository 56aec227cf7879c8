package adapter

import (
	"log/slog"

	cevent "github.com/next-trace/scg-event-aggregator/contract/event"
	"github.com/next-trace/scg-event-aggregator/registry"
	"github.com/next-trace/scg-event-aggregator/scheduler"
)

// State is an adapter's position in its lifecycle.
type State int

const (
	// StateUnregistered means the adapter holds no subscription. Both the
	// initial and the terminal state.
	StateUnregistered State = iota
	// StateRegistering means the adapter is waiting for the bus capability
	// to appear in the registry, polling once per scheduler tick.
	StateRegistering
	// StateSubscribed means the adapter's subscriptions are live.
	StateSubscribed
)

func (s State) String() string {
	switch s {
	case StateRegistering:
		return "registering"
	case StateSubscribed:
		return "subscribed"
	default:
		return "unregistered"
	}
}

// Option configures an adapter.
type Option func(*options)

type options struct {
	order    int
	logger   *slog.Logger
	observer cevent.Observer
}

func defaultOptions() options {
	return options{order: cevent.OrderDefault, observer: cevent.NopObserver{}}
}

// WithOrder sets the dispatch order of the adapter's subscriptions.
func WithOrder(n int) Option {
	return func(o *options) { o.order = n }
}

// WithLogger sets the logger for lifecycle transitions and resolution warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver sets the observer notified of resolution failures.
func WithObserver(obs cevent.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// attachWhenReady runs attach immediately when the bus capability is already
// registered and returns nil. Otherwise it registers a cooperative poll that
// retries once per tick until the bus appears, and returns the pending task.
func attachWhenReady(reg *registry.Registry, sched *scheduler.Scheduler, attach func(cevent.Bus)) *scheduler.Task {
	if bus, ok := registry.TryGet[cevent.Bus](reg); ok {
		attach(bus)
		return nil
	}

	return sched.Poll(func() bool {
		bus, ok := registry.TryGet[cevent.Bus](reg)
		if !ok {
			return false
		}

		attach(bus)

		return true
	})
}
