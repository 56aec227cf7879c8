package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/next-trace/scg-event-aggregator/aggregator"
	cevent "github.com/next-trace/scg-event-aggregator/contract/event"
	berr "github.com/next-trace/scg-event-aggregator/contract/errors"
	"github.com/next-trace/scg-event-aggregator/registry"
	"github.com/next-trace/scg-event-aggregator/scheduler"
)

// Static binds one event kind to one typed callback for the lifetime of its
// owner. Start subscribes (deferring until the bus capability appears in the
// registry); Stop unsubscribes and is terminal.
type Static struct {
	mu sync.Mutex

	id     string
	kind   reflect.Type
	sub    cevent.Subscription
	reg    *registry.Registry
	logger *slog.Logger

	state  State
	closed bool
	bus    cevent.Bus
	task   *scheduler.Task
}

// NewStatic constructs a static adapter for event type E.
func NewStatic[E cevent.Event](reg *registry.Registry, fn func(ctx context.Context, e E) error, opts ...Option) *Static {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Static{
		id:     uuid.NewString(),
		kind:   reflect.TypeOf((*E)(nil)).Elem(),
		sub:    aggregator.NewSubscription(fn, aggregator.WithOrder(o.order)),
		reg:    reg,
		logger: o.logger,
	}
}

// ID returns the adapter instance identifier carried in log fields.
func (s *Static) ID() string { return s.id }

// State reports the adapter's lifecycle state.
func (s *Static) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Start subscribes the adapter. When the bus capability is not yet in the
// registry, the adapter enters StateRegistering and retries once per
// scheduler tick. Starting an already started adapter is a no-op; starting a
// stopped one fails with ErrAdapterClosed.
func (s *Static) Start(sched *scheduler.Scheduler) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("start adapter %s: %w", s.id, berr.ErrAdapterClosed)
	}

	if s.state != StateUnregistered {
		s.mu.Unlock()
		return nil
	}

	s.state = StateRegistering
	s.mu.Unlock()

	task := attachWhenReady(s.reg, sched, s.attach)

	s.mu.Lock()
	defer s.mu.Unlock()

	if task != nil && s.state == StateRegistering {
		s.task = task

		if s.logger != nil {
			s.logger.Debug("waiting for bus", "adapter", s.id, "kind", s.kind.String())
		}
	}

	return nil
}

func (s *Static) attach(bus cevent.Bus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state == StateSubscribed {
		return
	}

	bus.SubscribeKind(s.kind, s.sub)
	s.bus = bus
	s.state = StateSubscribed
	s.task = nil

	if s.logger != nil {
		s.logger.Debug("subscribed", "adapter", s.id, "kind", s.kind.String())
	}
}

// Stop unsubscribes the adapter and retires it. Stop is terminal: the
// adapter cannot be started again.
func (s *Static) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.task != nil {
		s.task.Cancel()
		s.task = nil
	}

	if s.bus != nil {
		s.bus.UnsubscribeKind(s.kind, s.sub)
		s.bus = nil
	}

	s.state = StateUnregistered
	s.closed = true

	if s.logger != nil {
		s.logger.Debug("stopped", "adapter", s.id, "kind", s.kind.String())
	}
}
