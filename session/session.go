// Package session wires a registry, an aggregator, a kind catalog, and a
// frame scheduler into one explicitly constructed object. Components receive
// the session (or the pieces they need) instead of reaching for process-wide
// singletons, and the host loop drives Tick.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/next-trace/scg-event-aggregator/aggregator"
	"github.com/next-trace/scg-event-aggregator/config"
	cevent "github.com/next-trace/scg-event-aggregator/contract/event"
	"github.com/next-trace/scg-event-aggregator/kinds"
	"github.com/next-trace/scg-event-aggregator/metrics"
	"github.com/next-trace/scg-event-aggregator/registry"
	"github.com/next-trace/scg-event-aggregator/scheduler"
)

// Session is the composition root for one client session.
type Session struct {
	reg    *registry.Registry
	bus    *aggregator.Aggregator
	sched  *scheduler.Scheduler
	kinds  *kinds.Catalog
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	observer cevent.Observer
}

// WithLogger sets the logger handed to the aggregator and available to components.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver sets the dispatch observer handed to the aggregator.
func WithObserver(obs cevent.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// New constructs a Session. The registry completes its one-time setup here
// and the aggregator is registered under the event.Bus capability before New
// returns, so components constructed afterwards find it immediately.
func New(opts ...Option) (*Session, error) {
	o := options{observer: cevent.NopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}

	bus := aggregator.New(
		aggregator.WithLogger(o.logger),
		aggregator.WithObserver(o.observer),
	)

	reg := registry.New()
	if err := registry.Register[cevent.Bus](reg, bus); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	return &Session{
		reg:    reg,
		bus:    bus,
		sched:  scheduler.New(),
		kinds:  kinds.NewCatalog(),
		logger: o.logger,
	}, nil
}

// FromConfig constructs a Session applying a loaded configuration: log level
// and the Prometheus observer toggle. Explicit options win over the config.
func FromConfig(cfg config.Config, opts ...Option) (*Session, error) {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))),
	}
	if cfg.Metrics {
		base = append(base, WithObserver(metrics.New()))
	}

	return New(append(base, opts...)...)
}

// Registry returns the capability registry.
func (s *Session) Registry() *registry.Registry { return s.reg }

// Events returns the event bus.
func (s *Session) Events() *aggregator.Aggregator { return s.bus }

// Scheduler returns the frame scheduler.
func (s *Session) Scheduler() *scheduler.Scheduler { return s.sched }

// Kinds returns the event kind catalog.
func (s *Session) Kinds() *kinds.Catalog { return s.kinds }

// Logger returns the session logger, possibly nil.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Tick advances the frame scheduler by one step. The host loop calls this
// once per frame.
func (s *Session) Tick() { s.sched.Tick() }

// Shutdown ends the session. Adapters own their subscriptions and stop
// themselves; the session only reports the teardown.
func (s *Session) Shutdown() {
	if s.logger != nil {
		s.logger.Info("session shutdown", "pending_tasks", s.sched.Pending())
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
