package event

// Event is a marker interface for in-process events (sync fan-out).
// Concrete kinds are plain data records; an event is passed by value to the
// aggregator and discarded after dispatch completes.
type Event interface{}
