package event

import "math"

// OrderDefault is the dispatch order assumed when none is specified.
// It sorts after every explicit order, so unordered subscriptions run last.
const OrderDefault = math.MaxInt

// SubscribeOptions represents subscription parameters.
type SubscribeOptions struct {
	Order int
}
