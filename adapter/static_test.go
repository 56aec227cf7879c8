package adapter_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/next-trace/scg-event-aggregator/adapter"
	"github.com/next-trace/scg-event-aggregator/aggregator"
	cevent "github.com/next-trace/scg-event-aggregator/contract/event"
	berr "github.com/next-trace/scg-event-aggregator/contract/errors"
	"github.com/next-trace/scg-event-aggregator/registry"
	"github.com/next-trace/scg-event-aggregator/scheduler"
)

type severity struct{ Level int }

// recObserver records resolution failures for assertions.
type recObserver struct {
	mu       sync.Mutex
	failures []string
}

func (o *recObserver) EventPublished(kind string, subscribers int) { _, _ = kind, subscribers }

func (o *recObserver) HandlerInvoked(kind string, err error) { _, _ = kind, err }

func (o *recObserver) ResolutionFailed(name, reason string) {
	_ = name

	o.mu.Lock()
	o.failures = append(o.failures, reason)
	o.mu.Unlock()
}

var _ cevent.Observer = (*recObserver)(nil)

func newBusRegistry(t *testing.T) (*registry.Registry, *aggregator.Aggregator) {
	t.Helper()

	reg := registry.New()
	bus := aggregator.New()

	if err := registry.Register[cevent.Bus](reg, bus); err != nil {
		t.Fatalf("register bus: %v", err)
	}

	return reg, bus
}

func Test_StaticSubscribesImmediately(t *testing.T) {
	reg, bus := newBusRegistry(t)
	sched := scheduler.New()

	var seen []int

	ad := adapter.NewStatic(reg, func(ctx context.Context, e severity) error {
		seen = append(seen, e.Level)
		return nil
	}, adapter.WithOrder(5))

	if err := ad.Start(sched); err != nil {
		t.Fatalf("start: %v", err)
	}

	if got := ad.State(); got != adapter.StateSubscribed {
		t.Fatalf("state=%v", got)
	}

	if err := aggregator.Publish(context.Background(), bus, severity{Level: 4}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(seen) != 1 || seen[0] != 4 {
		t.Fatalf("seen=%v", seen)
	}

	// Start again is a no-op
	if err := ad.Start(sched); err != nil {
		t.Fatalf("restart: %v", err)
	}
}

func Test_StaticDefersUntilBusRegistered(t *testing.T) {
	reg := registry.New() // no bus yet
	bus := aggregator.New()
	sched := scheduler.New()

	calls := 0

	ad := adapter.NewStatic(reg, func(ctx context.Context, e severity) error {
		calls++
		return nil
	})

	if err := ad.Start(sched); err != nil {
		t.Fatalf("start: %v", err)
	}

	if got := ad.State(); got != adapter.StateRegistering {
		t.Fatalf("state=%v", got)
	}

	sched.Tick() // bus still absent

	if got := ad.State(); got != adapter.StateRegistering {
		t.Fatalf("state after tick=%v", got)
	}

	if err := registry.Register[cevent.Bus](reg, bus); err != nil {
		t.Fatalf("register bus: %v", err)
	}

	sched.Tick()

	if got := ad.State(); got != adapter.StateSubscribed {
		t.Fatalf("state after bus appeared=%v", got)
	}

	if err := aggregator.Publish(context.Background(), bus, severity{Level: 1}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func Test_StaticStopIsTerminal(t *testing.T) {
	reg, bus := newBusRegistry(t)
	sched := scheduler.New()

	calls := 0

	ad := adapter.NewStatic(reg, func(ctx context.Context, e severity) error {
		calls++
		return nil
	})

	if err := ad.Start(sched); err != nil {
		t.Fatalf("start: %v", err)
	}

	ad.Stop()

	if got := ad.State(); got != adapter.StateUnregistered {
		t.Fatalf("state=%v", got)
	}

	if err := aggregator.Publish(context.Background(), bus, severity{}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if calls != 0 {
		t.Fatalf("stopped adapter still received events")
	}

	if err := ad.Start(sched); !errors.Is(err, berr.ErrAdapterClosed) {
		t.Fatalf("want ErrAdapterClosed, got %v", err)
	}

	ad.Stop() // second stop is a no-op
}

func Test_StaticStopWhileRegisteringCancelsPoll(t *testing.T) {
	reg := registry.New() // bus never arrives
	sched := scheduler.New()

	ad := adapter.NewStatic(reg, func(ctx context.Context, e severity) error { return nil })

	if err := ad.Start(sched); err != nil {
		t.Fatalf("start: %v", err)
	}

	ad.Stop()
	sched.Tick()

	if got := sched.Pending(); got != 0 {
		t.Fatalf("pending=%d", got)
	}
}
