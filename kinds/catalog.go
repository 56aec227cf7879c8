// Package kinds maintains a catalog of named event kinds. The dynamic
// adapter resolves externally configured kind names against it: a direct
// match on the registered name, then a match on the qualified Go type name,
// then a scan of every registered kind by bare type name.
package kinds

import (
	"fmt"
	"reflect"
	"sync"

	cevent "github.com/next-trace/scg-event-aggregator/contract/event"
	berr "github.com/next-trace/scg-event-aggregator/contract/errors"
)

// Catalog maps registration names to concrete event kinds. Registration
// order is preserved, so name scans resolve the earliest registered match.
type Catalog struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	order  []string
}

// NewCatalog constructs an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]reflect.Type)}
}

// Put registers kind under name. Re-registering the same (name, kind) pair is
// a no-op; registering a different kind under an existing name fails with
// ErrKindExists.
func (c *Catalog) Put(name string, kind reflect.Type) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.byName[name]; ok {
		if prev == kind {
			return nil
		}

		return fmt.Errorf("register kind %q as %s: %w", name, kind.String(), berr.ErrKindExists)
	}

	c.byName[name] = kind
	c.order = append(c.order, name)

	return nil
}

// Register registers event type E under name.
func Register[E cevent.Event](c *Catalog, name string) error {
	return c.Put(name, reflect.TypeOf((*E)(nil)).Elem())
}

// Resolve maps a configured kind name to a concrete kind. It checks, in
// order: the registered name, the qualified Go type name (pkg.Type), and
// finally every registered kind's bare type name.
func (c *Catalog) Resolve(name string) (reflect.Type, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if t, ok := c.byName[name]; ok {
		return t, nil
	}

	for _, reg := range c.order {
		if c.byName[reg].String() == name {
			return c.byName[reg], nil
		}
	}

	for _, reg := range c.order {
		if c.byName[reg].Name() == name {
			return c.byName[reg], nil
		}
	}

	return nil, fmt.Errorf("resolve kind %q: %w", name, berr.ErrKindUnresolved)
}

// Len reports the number of registered kinds.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.byName)
}
