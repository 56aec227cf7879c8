package event

import (
	"context"
	"reflect"
)

// Bus is a minimal, tech-agnostic interface that mirrors the capabilities of
// the concrete aggregator while remaining non-generic for interface
// compatibility. It is the capability components look up in the registry.
//
// Typed helpers remain available via generic helper functions in the
// aggregator package. This interface is intended for consumers that want to
// depend only on contracts.
type Bus interface {
	// SubscribeKind inserts or moves s in the ordered list for kind.
	// Idempotent with respect to duplicate entries for the same identity.
	SubscribeKind(kind reflect.Type, s Subscription)

	// UnsubscribeKind removes s if present; absent is a no-op.
	UnsubscribeKind(kind reflect.Type, s Subscription)

	// Publish dispatches e to a point-in-time snapshot of the subscriptions
	// registered for e's runtime kind, in ascending order.
	Publish(ctx context.Context, e Event) error
}
