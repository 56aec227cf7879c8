/*
Package adapter provides handler adapters that bridge component lifecycles to
the event aggregator. A Static adapter binds one event kind to one typed
callback at compile time; a Dynamic adapter routes events to named methods on
a target object, resolved at runtime from externally configured bindings.

Both adapters defer their subscription while the bus capability is absent
from the registry, polling once per scheduler tick. Teardown is terminal: a
stopped adapter never re-subscribes.
*/
package adapter
