package aggregator

import (
	"context"
	"sync"

	cevent "github.com/next-trace/scg-event-aggregator/contract/event"
)

// Recorder is a thread-safe Subscription that records every event it
// receives, for testing and examples.
type Recorder struct {
	mu     sync.Mutex
	order  int
	Events []cevent.Event
}

// NewRecorder creates a recording subscription.
func NewRecorder(opts ...SubscribeOption) *Recorder {
	o := cevent.SubscribeOptions{Order: cevent.OrderDefault}
	for _, opt := range opts {
		opt(&o)
	}

	return &Recorder{order: o.Order}
}

func (r *Recorder) Order() int { return r.order }

func (r *Recorder) Invoke(ctx context.Context, e cevent.Event) error {
	_ = ctx

	r.mu.Lock()
	r.Events = append(r.Events, e)
	r.mu.Unlock()

	return nil
}

// Len reports how many events have been recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.Events)
}

// Ensure Recorder implements the contract subscription.
var _ cevent.Subscription = (*Recorder)(nil)
