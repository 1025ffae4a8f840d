package manager

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/sergheevdev/event-bus/internal/handler"
)

// Listener fixtures carry at least one field: the manager rejects pointers to
// zero-sized values, since distinct ones may share an address.

type Counter struct{ Value int }

type counterListener struct{ name string }

func (*counterListener) HandlerTags() []handler.Tag {
	return []handler.Tag{
		{Method: "Double", ID: "double", Order: 2},
		{Method: "Add", ID: "add", Order: 1},
	}
}

func (*counterListener) Add(c *Counter) { c.Value += 10 }
func (*counterListener) Double(c *Counter) { c.Value *= 2 }

type alpha struct{ seen []string }
type beta struct{ seen []string }
type gamma struct{ seen []string }

// first handles alpha (order 1) and beta (order 2).
type first struct{ name string }

func (*first) HandlerTags() []handler.Tag {
	return []handler.Tag{
		{Method: "OnAlpha", ID: "first-alpha", Order: 1},
		{Method: "OnBeta", ID: "first-beta", Order: 2},
	}
}

func (f *first) OnAlpha(a *alpha) { a.seen = append(a.seen, f.name) }
func (f *first) OnBeta(b *beta) { b.seen = append(b.seen, f.name) }

// second handles alpha (order 1), beta (order 2) and gamma (order 3).
type second struct{ name string }

func (*second) HandlerTags() []handler.Tag {
	return []handler.Tag{
		{Method: "OnAlpha", ID: "second-alpha", Order: 1},
		{Method: "OnBeta", ID: "second-beta", Order: 2},
		{Method: "OnGamma", ID: "second-gamma", Order: 3},
	}
}

func (s *second) OnAlpha(a *alpha) { a.seen = append(a.seen, s.name) }
func (s *second) OnBeta(b *beta) { b.seen = append(b.seen, s.name) }
func (s *second) OnGamma(g *gamma) { g.seen = append(g.seen, s.name) }

type trace struct{ steps []string }

// stateless has no fields, so two *stateless values may be the same pointer.
type stateless struct{}

func (*stateless) HandlerTags() []handler.Tag {
	return []handler.Tag{{Method: "On", ID: "on", Order: 1}}
}

func (*stateless) On(t *trace) { t.steps = append(t.steps, "stateless") }

// marker appends its name to a trace at order 5.
type marker struct{ name string }

func (*marker) HandlerTags() []handler.Tag {
	return []handler.Tag{{Method: "Mark", ID: "mark", Order: 5}}
}

func (m *marker) Mark(t *trace) { t.steps = append(t.steps, m.name) }

// earlyMarker runs before every marker.
type earlyMarker struct{ name string }

func (*earlyMarker) HandlerTags() []handler.Tag {
	return []handler.Tag{{Method: "Mark", ID: "early", Order: -1}}
}

func (m *earlyMarker) Mark(t *trace) { t.steps = append(t.steps, m.name) }

// recruiter registers another listener while handling a trace.
type recruiter struct {
	m       Manager
	recruit handler.Listener
}

func (*recruiter) HandlerTags() []handler.Tag {
	return []handler.Tag{{Method: "OnTrace", ID: "recruit", Order: 0}}
}

func (r *recruiter) OnTrace(t *trace) {
	t.steps = append(t.steps, "recruiter")
	if _, err := r.m.Register(r.recruit); err != nil {
		panic(err)
	}
}

type job struct{ done int }

var errJob = errors.New("job failed")

type failing struct{ name string }

func (*failing) HandlerTags() []handler.Tag {
	return []handler.Tag{
		{Method: "Last", ID: "last", Order: 3},
		{Method: "Fail", ID: "fail", Order: 2},
		{Method: "First", ID: "first", Order: 1},
	}
}

func (*failing) First(j *job) { j.done++ }
func (*failing) Fail(*job) error { return errJob }
func (*failing) Last(j *job) { j.done++ }

type panicking struct{ name string }

func (*panicking) HandlerTags() []handler.Tag {
	return []handler.Tag{{Method: "Boom", ID: "boom", Order: 1}}
}

func (*panicking) Boom(*job) { panic("boom") }

// halfValid declares one good and one broken handler.
type halfValid struct{ name string }

func (*halfValid) HandlerTags() []handler.Tag {
	return []handler.Tag{
		{Method: "Good", ID: "good", Order: 1},
		{Method: "Missing", ID: "missing", Order: 2},
	}
}

func (*halfValid) Good(*job) {}

type allInvalid struct{ name string }

func (*allInvalid) HandlerTags() []handler.Tag {
	return []handler.Tag{{Method: "Missing", ID: "missing"}}
}

// valueListener implements handler.Listener on a value receiver.
type valueListener struct{ name string }

func (valueListener) HandlerTags() []handler.Tag { return nil }

var (
	firstType   = reflect.TypeOf(&first{})
	secondType  = reflect.TypeOf(&second{})
	counterType = reflect.TypeOf(&counterListener{})
)

func eventTypeIs(v any) handler.Predicate {
	t := reflect.TypeOf(v)
	return func(d handler.Descriptor) bool { return d.EventType == t }
}

// variants returns a constructor per manager variant.
func variants() map[string]func(cfg Config) Manager {
	return map[string]func(cfg Config) Manager{
		VariantSimple:     func(cfg Config) Manager { return NewSimple(cfg) },
		VariantConcurrent: func(cfg Config) Manager { return NewConcurrent(cfg) },
	}
}

func simpleOf(m Manager) *Simple {
	switch v := m.(type) {
	case *Simple:
		return v
	case *Concurrent:
		return v.inner
	}
	panic(fmt.Sprintf("unexpected manager %T", m))
}

// checkPaired verifies that every entry of the handler index is queued under
// its event type and vice versa, and that the listener indices match.
func checkPaired(s *Simple) error {
	total := 0
	for _, l := range s.handlers.Listeners() {
		if !s.listeners.Contains(l) || !s.types.Contains(l) {
			return fmt.Errorf("listener %s has entries but is not registered", listenerName(l))
		}
		for _, e := range s.handlers.Get(l) {
			if !s.queues.Contains(e.EventType(), e) {
				return fmt.Errorf("entry %s is not queued", e)
			}
			total++
		}
	}
	if q := s.queues.Len(); q != total {
		return fmt.Errorf("queues hold %d entries, handler index %d", q, total)
	}
	for _, l := range s.listeners.All() {
		if !s.handlers.Contains(l) {
			return fmt.Errorf("listener %s is registered without entries", listenerName(l))
		}
	}
	if s.listeners.Len() != s.types.Len() {
		return fmt.Errorf("listener set has %d, type index %d", s.listeners.Len(), s.types.Len())
	}
	return nil
}
