package aggregator

import (
	"context"
	"fmt"
	"reflect"

	cevent "github.com/next-trace/scg-event-aggregator/contract/event"
	berr "github.com/next-trace/scg-event-aggregator/contract/errors"
)

// SubscribeOption configures a subscription built by NewSubscription or ForHandler.
type SubscribeOption func(*cevent.SubscribeOptions)

// WithOrder sets the dispatch order. Lower orders dispatch first; unset
// behaves as event.OrderDefault and dispatches last.
func WithOrder(n int) SubscribeOption {
	return func(o *cevent.SubscribeOptions) { o.Order = n }
}

// Handle is a Subscription bound to one typed callback. Each call to
// NewSubscription yields a distinct identity, so the same Handle can be
// subscribed, unsubscribed, and re-subscribed without duplication.
type Handle[E cevent.Event] struct {
	order int
	fn    func(ctx context.Context, e E) error
}

// NewSubscription wraps a typed callback as a Subscription.
func NewSubscription[E cevent.Event](fn func(ctx context.Context, e E) error, opts ...SubscribeOption) *Handle[E] {
	o := cevent.SubscribeOptions{Order: cevent.OrderDefault}
	for _, opt := range opts {
		opt(&o)
	}

	return &Handle[E]{order: o.Order, fn: fn}
}

// ForHandler wraps an event.Handler as a Subscription.
func ForHandler[E cevent.Event](h cevent.Handler[E], opts ...SubscribeOption) *Handle[E] {
	return NewSubscription[E](h.Handle, opts...)
}

// Order reports the dispatch order key.
func (h *Handle[E]) Order() int { return h.order }

// Invoke asserts the event to E and runs the callback.
func (h *Handle[E]) Invoke(ctx context.Context, e cevent.Event) error {
	ev, ok := e.(E)
	if !ok {
		return fmt.Errorf("invoke %s as %s: %w", reflect.TypeOf(e).String(), reflect.TypeOf((*E)(nil)).Elem().String(), berr.ErrKindMismatch)
	}

	return h.fn(ctx, ev)
}

// Ensure Handle implements the contract subscription.
var _ cevent.Subscription = (*Handle[struct{}])(nil)
