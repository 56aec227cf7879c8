package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/google/uuid"

	cevent "github.com/next-trace/scg-event-aggregator/contract/event"
	berr "github.com/next-trace/scg-event-aggregator/contract/errors"
	"github.com/next-trace/scg-event-aggregator/kinds"
	"github.com/next-trace/scg-event-aggregator/registry"
	"github.com/next-trace/scg-event-aggregator/scheduler"
)

// Binding names an event kind and the method a received event should invoke
// on the adapter's target. Bindings come from external configuration; see
// the config package for file loading.
type Binding struct {
	Kind   string `json:"kind" yaml:"kind" toml:"kind"`
	Method string `json:"method" yaml:"method" toml:"method"`
}

// Dynamic routes events to named methods on a target object. Kind names are
// resolved against the catalog when the adapter subscribes; target methods
// are resolved by reflection on every received event.
//
// A binding that cannot be resolved never dispatches. Each failure is logged
// as a warning and reported to the observer instead of being silently
// dropped.
type Dynamic struct {
	mu sync.Mutex

	id       string
	reg      *registry.Registry
	catalog  *kinds.Catalog
	target   any
	bindings []Binding
	logger   *slog.Logger
	observer cevent.Observer
	order    int

	state    State
	closed   bool
	bus      cevent.Bus
	task     *scheduler.Task
	resolved []*methodSub
}

// NewDynamic constructs a dynamic adapter routing bindings to methods on target.
func NewDynamic(reg *registry.Registry, catalog *kinds.Catalog, target any, bindings []Binding, opts ...Option) *Dynamic {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Dynamic{
		id:       uuid.NewString(),
		reg:      reg,
		catalog:  catalog,
		target:   target,
		bindings: append([]Binding(nil), bindings...),
		logger:   o.logger,
		observer: o.observer,
		order:    o.order,
	}
}

// ID returns the adapter instance identifier carried in log fields.
func (d *Dynamic) ID() string { return d.id }

// State reports the adapter's lifecycle state.
func (d *Dynamic) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}

// Subscriptions reports how many bindings resolved to live subscriptions.
func (d *Dynamic) Subscriptions() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.resolved)
}

// Start resolves the configured kind names and subscribes one subscription
// per resolved binding, deferring while the bus capability is absent from
// the registry. Unresolvable kind names are skipped with a warning.
func (d *Dynamic) Start(sched *scheduler.Scheduler) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return fmt.Errorf("start adapter %s: %w", d.id, berr.ErrAdapterClosed)
	}

	if d.state != StateUnregistered {
		d.mu.Unlock()
		return nil
	}

	d.state = StateRegistering
	d.mu.Unlock()

	task := attachWhenReady(d.reg, sched, d.attach)

	d.mu.Lock()
	defer d.mu.Unlock()

	if task != nil && d.state == StateRegistering {
		d.task = task

		if d.logger != nil {
			d.logger.Debug("waiting for bus", "adapter", d.id, "bindings", len(d.bindings))
		}
	}

	return nil
}

func (d *Dynamic) attach(bus cevent.Bus) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.state == StateSubscribed {
		return
	}

	for _, b := range d.bindings {
		kind, err := d.catalog.Resolve(b.Kind)
		if err != nil {
			d.warn("kind unresolved", b.Kind, b.Method)
			d.observer.ResolutionFailed(b.Kind, "kind_unresolved")

			continue
		}

		sub := &methodSub{d: d, kind: kind, method: b.Method}
		bus.SubscribeKind(kind, sub)
		d.resolved = append(d.resolved, sub)
	}

	d.bus = bus
	d.state = StateSubscribed
	d.task = nil

	if d.logger != nil {
		d.logger.Debug("subscribed", "adapter", d.id, "subscriptions", len(d.resolved))
	}
}

// Stop unsubscribes every resolved binding and retires the adapter. Stop is
// terminal: the adapter cannot be started again.
func (d *Dynamic) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if d.task != nil {
		d.task.Cancel()
		d.task = nil
	}

	if d.bus != nil {
		for _, sub := range d.resolved {
			d.bus.UnsubscribeKind(sub.kind, sub)
		}
		d.bus = nil
	}

	d.resolved = nil
	d.state = StateUnregistered
	d.closed = true

	if d.logger != nil {
		d.logger.Debug("stopped", "adapter", d.id)
	}
}

func (d *Dynamic) warn(msg, kind, method string) {
	if d.logger != nil {
		d.logger.Warn(msg, "adapter", d.id, "kind", kind, "method", method)
	}
}

// methodSub is one resolved binding registered with the bus.
type methodSub struct {
	d      *Dynamic
	kind   reflect.Type
	method string
}

func (m *methodSub) Order() int { return m.d.order }

func (m *methodSub) Invoke(ctx context.Context, e cevent.Event) error {
	_ = ctx

	return m.d.dispatch(m, e)
}

// dispatch finds a method on the target whose name matches the binding and
// whose parameter list is empty, a single parameter assignable from the
// event, or a single parameter assignable from one of the event's exported
// fields (first field match wins). An incompatible or missing method means
// no dispatch: a warning and an observer notification, never an error.
func (d *Dynamic) dispatch(b *methodSub, e cevent.Event) error {
	d.mu.Lock()
	target := d.target
	d.mu.Unlock()

	if target == nil {
		d.warn("target missing", b.kind.String(), b.method)
		d.observer.ResolutionFailed(b.method, "target_missing")

		return nil
	}

	m := reflect.ValueOf(target).MethodByName(b.method)
	if !m.IsValid() {
		d.warn("method unresolved", b.kind.String(), b.method)
		d.observer.ResolutionFailed(b.method, "method_unresolved")

		return nil
	}

	mt := m.Type()
	ev := reflect.ValueOf(e)

	switch mt.NumIn() {
	case 0:
		return call(m, nil)
	case 1:
		p := mt.In(0)
		if ev.Type().AssignableTo(p) {
			return call(m, []reflect.Value{ev})
		}

		if arg, ok := fieldAssignableTo(ev, p); ok {
			return call(m, []reflect.Value{arg})
		}
	}

	d.warn("no compatible parameter", b.kind.String(), b.method)
	d.observer.ResolutionFailed(b.method, "method_unresolved")

	return nil
}

// fieldAssignableTo returns the first exported field of the event (in
// declaration order) whose type is assignable to p.
func fieldAssignableTo(ev reflect.Value, p reflect.Type) (reflect.Value, bool) {
	sv := reflect.Indirect(ev)
	if sv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}

		if f.Type.AssignableTo(p) {
			return sv.Field(i), true
		}
	}

	return reflect.Value{}, false
}

// call invokes the bound method. A trailing error return propagates to the
// publisher; all other return values are discarded.
func call(m reflect.Value, args []reflect.Value) error {
	out := m.Call(args)
	if n := len(out); n > 0 {
		if err, ok := out[n-1].Interface().(error); ok && err != nil {
			return err
		}
	}

	return nil
}
