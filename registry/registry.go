// Package registry provides a capability registry: a type-keyed map holding
// at most one live instance per capability, used to hand out the event bus
// and other session-scoped services. It replaces a hidden global service
// locator with an explicitly constructed object passed to the components
// that need it.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	berr "github.com/next-trace/scg-event-aggregator/contract/errors"
)

// Registry maps capability types to their single live instance.
//
// The zero value is usable but uninitialized: every query fails with
// ErrNotInitialized until Init (or New) runs. Initialization happens once,
// at session start; entries are registered once and read many times.
type Registry struct {
	mu       sync.RWMutex
	services map[reflect.Type]any
}

// New constructs an initialized Registry.
func New() *Registry {
	r := &Registry{}
	r.Init()

	return r
}

// Init performs the one-time setup. Calling Init again is a no-op.
func (r *Registry) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.services == nil {
		r.services = make(map[reflect.Type]any)
	}
}

// Initialized reports whether Init has run.
func (r *Registry) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.services != nil
}

// Put stores instance under the capability type, overwriting any previous
// instance for that capability.
func (r *Registry) Put(capability reflect.Type, instance any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.services == nil {
		return fmt.Errorf("register %s: %w", capability.String(), berr.ErrNotInitialized)
	}

	r.services[capability] = instance

	return nil
}

// Lookup returns the instance stored under the capability type.
func (r *Registry) Lookup(capability reflect.Type) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.services == nil {
		return nil, fmt.Errorf("get %s: %w", capability.String(), berr.ErrNotInitialized)
	}

	v, ok := r.services[capability]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", capability.String(), berr.ErrNotRegistered)
	}

	return v, nil
}

// Register stores instance as the single provider of capability T,
// overwriting any previous instance.
func Register[T any](r *Registry, instance T) error {
	return r.Put(reflect.TypeOf((*T)(nil)).Elem(), instance)
}

// Get returns the instance registered for capability T. It fails with
// ErrNotInitialized before Init and ErrNotRegistered when nothing was
// registered for T.
func Get[T any](r *Registry) (T, error) {
	var zero T

	v, err := r.Lookup(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}

// TryGet returns the instance registered for capability T and whether it was
// found. It never fails; an uninitialized registry reports not found.
func TryGet[T any](r *Registry) (T, bool) {
	var zero T

	v, err := r.Lookup(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, false
	}

	return v.(T), true
}
