package event

import "context"

// Handler handles events of type E.
// Implementations must be safe for concurrent use by multiple goroutines.
type Handler[E Event] interface {
	Handle(ctx context.Context, e E) error
}

// Subscription is a registered callback with a dispatch order. The aggregator
// deduplicates by subscription identity: subscribing the same Subscription
// value twice for one kind keeps a single entry.
//
// Lower Order dispatches first. Subscriptions that do not care about ordering
// should report OrderDefault, which sorts after every explicit order.
type Subscription interface {
	Invoke(ctx context.Context, e Event) error
	Order() int
}
