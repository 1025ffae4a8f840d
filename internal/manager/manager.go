package manager

import (
	"fmt"
	"reflect"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/sergheevdev/event-bus/internal/handler"
	"github.com/sergheevdev/event-bus/internal/index"
)

// Manager registers listeners and routes transmitted events to their
// handlers. Both Simple and Concurrent implement it.
type Manager interface {
	Register(l handler.Listener) (int, error)
	RegisterMeeting(l handler.Listener, pred handler.Predicate) (int, error)
	Unregister(l handler.Listener) (int, error)
	UnregisterMeeting(l handler.Listener, pred handler.Predicate) (int, error)
	UnregisterWithMeeting(listenerType reflect.Type, pred handler.Predicate) (int, error)
	Transmit(ev handler.Event) error

	GetAll() []handler.Listener
	GetMeeting(pred handler.Predicate) []handler.Listener
	GetWith(listenerType reflect.Type) []handler.Listener
	GetWithMeeting(listenerType reflect.Type, pred handler.Predicate) []handler.Listener

	Contains(l handler.Listener) bool
	ContainsAnyMeeting(pred handler.Predicate) bool
	ContainsAnyWith(listenerType reflect.Type) bool
	ContainsAnyWithMeeting(listenerType reflect.Type, pred handler.Predicate) bool

	HandlersAmount() int
	HandlersAmountWith(listenerType reflect.Type) int
	HandlersAmountMeeting(pred handler.Predicate) int
	HandlersAmountWithMeeting(listenerType reflect.Type, pred handler.Predicate) int

	Size() int
	SizeWith(listenerType reflect.Type) int
	SizeMeeting(pred handler.Predicate) int
	SizeWithMeeting(listenerType reflect.Type, pred handler.Predicate) int

	ClearAll() error
	Snapshot() Snapshot
}

// New returns a Concurrent manager when cfg.Concurrent is set and a Simple
// one otherwise.
func New(cfg Config) Manager {
	if cfg.Concurrent {
		return NewConcurrent(cfg)
	}
	return NewSimple(cfg)
}

// Simple is a Manager without internal synchronization. Callers must not use
// it from more than one goroutine at a time, and that includes Transmit
// running alongside Register or Unregister.
type Simple struct {
	variant   string
	listeners *index.ListenerSet
	types     *index.TypeIndex
	handlers  *index.HandlerIndex
	queues    *index.EventQueues

	extractor handler.Extractor
	invoker   handler.Invoker
	publisher EventPublisher
	log       *zerolog.Logger
	meter     meter
}

// NewSimple constructs an unsynchronized manager. cfg.Concurrent is ignored.
func NewSimple(cfg Config) *Simple {
	return newSimple(cfg, VariantSimple)
}

func newSimple(cfg Config, variant string) *Simple {
	cfg = cfg.withDefaults()
	return &Simple{
		variant:   variant,
		listeners: index.NewListenerSet(),
		types:     index.NewTypeIndex(),
		handlers:  index.NewHandlerIndex(),
		queues:    index.NewEventQueues(),
		extractor: cfg.Extractor,
		invoker:   cfg.Invoker,
		publisher: cfg.Publisher,
		log:       cfg.Logger,
		meter:     newMeter(variant),
	}
}

// Register adds every handler declared by l and returns how many entries
// were new. Registering the same listener again is legal and returns 0 for
// handlers already present.
//
// On an invalid handler declaration the handlers processed before it stay
// registered and the error is returned with their count.
func (m *Simple) Register(l handler.Listener) (int, error) {
	return m.RegisterMeeting(l, handler.All)
}

// RegisterMeeting is Register restricted to the handlers satisfying pred.
func (m *Simple) RegisterMeeting(l handler.Listener, pred handler.Predicate) (int, error) {
	if err := checkListener(l); err != nil {
		return 0, err
	}
	if pred == nil {
		return 0, invalidArgument("nil predicate")
	}

	descs, extractErr := m.extractor.ExtractMeeting(reflect.TypeOf(l), pred)

	m.listeners.Add(l)
	m.types.Add(l)

	added := 0
	var err error
	for _, d := range descs {
		e, entryErr := handler.NewEntry(l, d)
		if entryErr != nil {
			err = entryErr
			break
		}
		queued := m.queues.Offer(e.EventType(), e)
		filed := m.handlers.Add(l, e)
		if queued && filed {
			added++
		}
	}
	if err == nil {
		err = extractErr
	}

	// a listener with no entries must not linger in the listener indices
	if !m.handlers.Contains(l) {
		m.listeners.Remove(l)
		m.types.Remove(l)
	}

	name := listenerName(l)
	m.meter.registrations.Add(float64(added))
	m.log.Debug().Str("listener", name).Int("added", added).Str("variant", m.variant).Msg("register")
	m.publisher.Publish(Event{Name: EventRegister, Listener: name, Fields: map[string]any{"added": added}})

	if err != nil {
		return added, fmt.Errorf("register %s: %w", name, err)
	}
	return added, nil
}

// Unregister removes every handler of l and returns how many were removed.
// A listener that is not registered yields 0 and no error.
func (m *Simple) Unregister(l handler.Listener) (int, error) {
	return m.UnregisterMeeting(l, handler.All)
}

// UnregisterMeeting removes the handlers of l satisfying pred. The listener
// stays registered while it has handlers left.
func (m *Simple) UnregisterMeeting(l handler.Listener, pred handler.Predicate) (int, error) {
	if err := checkListener(l); err != nil {
		return 0, err
	}
	if pred == nil {
		return 0, invalidArgument("nil predicate")
	}
	return m.unregister(l, pred)
}

// UnregisterWithMeeting applies UnregisterMeeting to every registered
// listener of the given concrete type and sums the results.
func (m *Simple) UnregisterWithMeeting(listenerType reflect.Type, pred handler.Predicate) (int, error) {
	if listenerType == nil {
		return 0, invalidArgument("nil listener type")
	}
	if pred == nil {
		return 0, invalidArgument("nil predicate")
	}
	total := 0
	var result *multierror.Error
	for _, l := range m.types.Get(listenerType) {
		n, err := m.unregister(l, pred)
		total += n
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return total, result.ErrorOrNil()
}

func (m *Simple) unregister(l handler.Listener, pred handler.Predicate) (int, error) {
	if !m.listeners.Contains(l) {
		return 0, nil
	}
	name := listenerName(l)
	removed := 0
	var result *multierror.Error
	for _, e := range m.handlers.Get(l) {
		if !pred(e.Descriptor) {
			continue
		}
		dequeued := m.queues.Remove(e.EventType(), e)
		unfiled := m.handlers.Remove(l, e)
		if dequeued && unfiled {
			removed++
			continue
		}
		cerr := &ConsistencyError{Entry: e, InHandlerIndex: unfiled, InEventQueues: dequeued}
		m.log.Error().Err(cerr).Str("listener", name).Str("variant", m.variant).Msg("inconsistent state")
		m.publisher.Publish(Event{Name: EventInconsistent, Listener: name, Fields: map[string]any{"entry": e.String()}})
		result = multierror.Append(result, cerr)
	}

	if !m.handlers.Contains(l) {
		m.listeners.Remove(l)
		m.types.Remove(l)
	}

	m.meter.removals.Add(float64(removed))
	m.log.Debug().Str("listener", name).Int("removed", removed).Str("variant", m.variant).Msg("unregister")
	m.publisher.Publish(Event{Name: EventUnregister, Listener: name, Fields: map[string]any{"removed": removed}})
	return removed, result.ErrorOrNil()
}

// Transmit passes ev to every handler of its dynamic type in ascending order.
// The handler queue is copied before the first call, so registrations made by
// handlers only affect later transmits. The first failing handler stops the
// dispatch and its failure is returned as an *InvocationError.
func (m *Simple) Transmit(ev handler.Event) error {
	if ev == nil {
		return invalidArgument("nil event")
	}
	m.meter.transmits.Inc()
	if m.queues.IsEmpty() {
		return nil
	}
	q := m.queues.For(reflect.TypeOf(ev))
	if q == nil {
		return nil
	}

	start := time.Now()
	defer m.meter.observeDispatch(start)

	return q.Each(func(e handler.Entry) error {
		m.meter.invocations.Inc()
		if err := m.invoker.Invoke(e, ev); err != nil {
			m.meter.failures.Inc()
			ierr := newInvocationError(e, err)
			m.log.Error().Err(err).
				Str("listener", ierr.Listener).
				Str("handler", ierr.HandlerID).
				Str("event", ierr.EventType.String()).
				Msg("handler failed")
			m.publisher.Publish(Event{Name: EventTransmitFail, Listener: ierr.Listener, Fields: map[string]any{"handler": ierr.HandlerID}})
			return ierr
		}
		return nil
	})
}

// ClearAll unregisters every listener. Failures are aggregated.
func (m *Simple) ClearAll() error {
	var result *multierror.Error
	for _, l := range m.listeners.All() {
		if _, err := m.unregister(l, handler.All); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func checkListener(l handler.Listener) error {
	if l == nil {
		return invalidArgument("nil listener")
	}
	v := reflect.ValueOf(l)
	if v.Kind() != reflect.Pointer {
		return invalidArgument("listener %T must be a pointer", l)
	}
	if v.IsNil() {
		return invalidArgument("nil %T listener", l)
	}
	// distinct pointers to zero-sized values may share an address
	if v.Type().Elem().Size() == 0 {
		return invalidArgument("listener %T points to a zero-sized type", l)
	}
	return nil
}

func listenerName(l handler.Listener) string {
	return fmt.Sprintf("%T@%p", l, l)
}
