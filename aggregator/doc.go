/*
Package aggregator provides a thin, opinionated in-process event bus.
It keeps one ordered subscription list per event kind, dispatches to a
point-in-time snapshot of that list, and remains decoupled from concrete
metrics and logging backends via interfaces.
*/
package aggregator
