package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	cevent "github.com/next-trace/scg-event-aggregator/contract/event"
	berr "github.com/next-trace/scg-event-aggregator/contract/errors"
)

// Aggregator is a thin in-process event bus. It keeps, per event kind, an
// ordered list of subscriptions and dispatches published events to all of
// them synchronously, in ascending order of their order key.
//
// Aggregator is concurrency-safe and contains no global state, though the
// intended usage is a single logical thread driven by the host's frame loop.
type Aggregator struct {
	mu sync.RWMutex

	subs map[reflect.Type][]cevent.Subscription

	logger   *slog.Logger
	observer cevent.Observer
}

// Option configures an Aggregator instance.
type Option func(*Aggregator)

// WithLogger sets the logger used for subscription bookkeeping. Nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) { a.logger = l }
}

// WithObserver sets the dispatch observer (e.g. the Prometheus one in the
// metrics package).
func WithObserver(o cevent.Observer) Option {
	return func(a *Aggregator) { a.observer = o }
}

// New constructs a new Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		subs:     make(map[reflect.Type][]cevent.Subscription),
		observer: cevent.NopObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Ensure Aggregator implements the contract bus.
var _ cevent.Bus = (*Aggregator)(nil)

// SubscribeKind inserts or moves s in the ordered list for kind. The list is
// re-sorted with a stable sort, so subscriptions sharing an order key keep
// their insertion order. Subscribing the same Subscription identity twice
// keeps a single entry.
func (a *Aggregator) SubscribeKind(kind reflect.Type, s cevent.Subscription) {
	a.mu.Lock()
	defer a.mu.Unlock()

	list := a.subs[kind]
	if indexOf(list, s) < 0 {
		list = append(list, s)
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].Order() < list[j].Order() })
	a.subs[kind] = list

	if a.logger != nil {
		a.logger.Debug("subscribed", "kind", kind.String(), "order", s.Order(), "count", len(list))
	}
}

// UnsubscribeKind removes s from the list for kind if present. Removing an
// absent subscription is a no-op, not an error.
func (a *Aggregator) UnsubscribeKind(kind reflect.Type, s cevent.Subscription) {
	a.mu.Lock()
	defer a.mu.Unlock()

	list := a.subs[kind]

	i := indexOf(list, s)
	if i < 0 {
		return
	}

	list = append(list[:i], list[i+1:]...)
	if len(list) == 0 {
		delete(a.subs, kind)
	} else {
		a.subs[kind] = list
	}

	if a.logger != nil {
		a.logger.Debug("unsubscribed", "kind", kind.String(), "count", len(list))
	}
}

// Publish dispatches e to every subscription registered for e's runtime kind.
// Dispatch operates on a point-in-time snapshot of the subscription list:
// subscriptions added or removed by a callback take effect on the next
// Publish, never the current one.
//
// Handler faults are not isolated. The first subscription returning an error
// aborts the remaining dispatch and the error propagates to the publisher,
// wrapped with ErrHandlerFault. Panics propagate unrecovered.
func (a *Aggregator) Publish(ctx context.Context, e cevent.Event) error {
	kind := reflect.TypeOf(e)

	a.mu.RLock()
	snapshot := append([]cevent.Subscription(nil), a.subs[kind]...)
	a.mu.RUnlock()

	a.observer.EventPublished(kind.String(), len(snapshot))

	if len(snapshot) == 0 {
		return nil
	}

	for _, s := range snapshot {
		err := s.Invoke(ctx, e)
		a.observer.HandlerInvoked(kind.String(), err)

		if err != nil {
			return fmt.Errorf("publish %s: %w: %w", kind.String(), berr.ErrHandlerFault, err)
		}
	}

	return nil
}

// Subscribers reports the number of subscriptions currently registered for kind.
func (a *Aggregator) Subscribers(kind reflect.Type) int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.subs[kind])
}

// indexOf returns the position of s in list by identity, or -1.
func indexOf(list []cevent.Subscription, s cevent.Subscription) int {
	for i, cur := range list {
		if cur == s {
			return i
		}
	}

	return -1
}

// Subscribe registers s for event type E.
func Subscribe[E cevent.Event](a *Aggregator, s cevent.Subscription) {
	a.SubscribeKind(reflect.TypeOf((*E)(nil)).Elem(), s)
}

// Unsubscribe removes s from event type E.
func Unsubscribe[E cevent.Event](a *Aggregator, s cevent.Subscription) {
	a.UnsubscribeKind(reflect.TypeOf((*E)(nil)).Elem(), s)
}

// Publish is a typed helper to publish via an Aggregator.
func Publish[E cevent.Event](ctx context.Context, a *Aggregator, e E) error {
	return a.Publish(ctx, e)
}
