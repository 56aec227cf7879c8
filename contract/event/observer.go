package event

// Observer receives dispatch notifications from the aggregator and the
// adapters. Implementations may bridge to Prometheus or any other metrics
// backend. This keeps the aggregator decoupled from concrete metrics
// libraries (code-to-interface). Implementations must be safe for concurrent
// use.
type Observer interface {
	// EventPublished is called once per Publish with the number of
	// subscriptions in the dispatch snapshot (possibly zero).
	EventPublished(kind string, subscribers int)

	// HandlerInvoked is called after each subscription callback returns.
	HandlerInvoked(kind string, err error)

	// ResolutionFailed is called when a dynamic binding cannot be resolved
	// to a kind or a target method.
	ResolutionFailed(name, reason string)
}

// NopObserver is a no-op implementation useful for tests or when metrics are
// disabled.
type NopObserver struct{}

func (NopObserver) EventPublished(kind string, subscribers int) {
	_ = kind
	_ = subscribers
}

func (NopObserver) HandlerInvoked(kind string, err error) {
	_ = kind
	_ = err
}

func (NopObserver) ResolutionFailed(name, reason string) {
	_ = name
	_ = reason
}
