// Package bus is the publisher-facing side of the event manager. A Bus posts
// events to a manager.Manager and is assembled with functional options:
//
//	b, err := bus.New(
//		bus.WithConcurrent(),
//		bus.WithListeners(&Audit{}),
//	)
//	if err != nil { ... }
//	err = b.Post(&LoginEvent{User: "ana"})
package bus

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/sergheevdev/event-bus/internal/handler"
	"github.com/sergheevdev/event-bus/internal/manager"
)

// Bus delivers posted events to the handlers registered with its manager.
type Bus struct {
	manager manager.Manager
}

// Option configures New.
type Option func(*options)

type options struct {
	concurrent bool
	manager    manager.Manager
	listeners  []handler.Listener
	logger     *zerolog.Logger
	extractor  handler.Extractor
	invoker    handler.Invoker
	publisher  manager.EventPublisher
}

// WithConcurrent builds a manager.Concurrent instead of a manager.Simple.
func WithConcurrent() Option {
	return func(o *options) { o.concurrent = true }
}

// WithManager uses m instead of building a manager. It takes precedence over
// every other manager option.
func WithManager(m manager.Manager) Option {
	return func(o *options) { o.manager = m }
}

// WithListeners registers ls, in order, before New returns.
func WithListeners(ls ...handler.Listener) Option {
	return func(o *options) { o.listeners = append(o.listeners, ls...) }
}

// WithLogger sets the logger of the built manager.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithExtractor sets the handler extractor of the built manager.
func WithExtractor(x handler.Extractor) Option {
	return func(o *options) { o.extractor = x }
}

// WithInvoker sets the handler invoker of the built manager.
func WithInvoker(i handler.Invoker) Option {
	return func(o *options) { o.invoker = i }
}

// WithPublisher sets the lifecycle event publisher of the built manager.
func WithPublisher(p manager.EventPublisher) Option {
	return func(o *options) { o.publisher = p }
}

// New assembles a Bus. Every listener given through WithListeners is
// registered; registration failures are aggregated and returned together
// with the Bus, which stays usable with the listeners that did register.
func New(opts ...Option) (*Bus, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := o.manager
	if m == nil {
		m = manager.New(manager.Config{
			Concurrent: o.concurrent,
			Logger:     o.logger,
			Extractor:  o.extractor,
			Invoker:    o.invoker,
			Publisher:  o.publisher,
		})
	}
	b := &Bus{manager: m}

	var result *multierror.Error
	for i, l := range o.listeners {
		if _, err := m.Register(l); err != nil {
			result = multierror.Append(result, fmt.Errorf("listener %d: %w", i, err))
		}
	}
	return b, result.ErrorOrNil()
}

// Post transmits ev to its handlers. See manager.Manager.Transmit.
func (b *Bus) Post(ev handler.Event) error {
	return b.manager.Transmit(ev)
}

// Manager returns the manager behind b, for registration and queries.
func (b *Bus) Manager() manager.Manager { return b.manager }
