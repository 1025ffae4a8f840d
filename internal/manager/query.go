package manager

import (
	"reflect"

	"github.com/sergheevdev/event-bus/internal/handler"
)

// Query methods never return live views of the indices. A nil type or
// predicate matches nothing.
//
// The "Meeting" getters and sizes keep a listener only when every one of its
// handlers satisfies the predicate. ContainsAny*Meeting is satisfied by a
// single handler, and HandlersAmount*Meeting counts matching handlers.

// GetAll returns the registered listeners in registration order.
func (m *Simple) GetAll() []handler.Listener { return m.listeners.All() }

// GetMeeting returns the listeners all of whose handlers satisfy pred.
func (m *Simple) GetMeeting(pred handler.Predicate) []handler.Listener {
	if pred == nil {
		return nil
	}
	return m.filterAll(m.listeners.All(), pred)
}

// GetWith returns the registered listeners of the given concrete type.
func (m *Simple) GetWith(listenerType reflect.Type) []handler.Listener {
	if listenerType == nil {
		return nil
	}
	return m.types.Get(listenerType)
}

// GetWithMeeting returns the listeners of the given type all of whose
// handlers satisfy pred.
func (m *Simple) GetWithMeeting(listenerType reflect.Type, pred handler.Predicate) []handler.Listener {
	if listenerType == nil || pred == nil {
		return nil
	}
	return m.filterAll(m.types.Get(listenerType), pred)
}

// Contains reports whether l is registered.
func (m *Simple) Contains(l handler.Listener) bool {
	if checkListener(l) != nil {
		return false
	}
	return m.listeners.Contains(l)
}

// ContainsAnyMeeting reports whether any registered handler satisfies pred.
func (m *Simple) ContainsAnyMeeting(pred handler.Predicate) bool {
	if pred == nil {
		return false
	}
	return m.anyMatch(m.listeners.All(), pred)
}

// ContainsAnyWith reports whether a listener of the given type is registered.
func (m *Simple) ContainsAnyWith(listenerType reflect.Type) bool {
	if listenerType == nil {
		return false
	}
	return m.types.ContainsType(listenerType)
}

// ContainsAnyWithMeeting reports whether any handler of a listener of the
// given type satisfies pred.
func (m *Simple) ContainsAnyWithMeeting(listenerType reflect.Type, pred handler.Predicate) bool {
	if listenerType == nil || pred == nil {
		return false
	}
	return m.anyMatch(m.types.Get(listenerType), pred)
}

// HandlersAmount returns the number of registered handler entries.
func (m *Simple) HandlersAmount() int { return m.handlers.Len() }

// HandlersAmountWith returns the number of handler entries held by listeners
// of the given type.
func (m *Simple) HandlersAmountWith(listenerType reflect.Type) int {
	if listenerType == nil {
		return 0
	}
	n := 0
	for _, l := range m.types.Get(listenerType) {
		n += m.handlers.LenFor(l)
	}
	return n
}

// HandlersAmountMeeting returns the number of handler entries satisfying pred.
func (m *Simple) HandlersAmountMeeting(pred handler.Predicate) int {
	if pred == nil {
		return 0
	}
	return m.countMatching(m.listeners.All(), pred)
}

// HandlersAmountWithMeeting returns the number of handler entries of
// listeners of the given type that satisfy pred.
func (m *Simple) HandlersAmountWithMeeting(listenerType reflect.Type, pred handler.Predicate) int {
	if listenerType == nil || pred == nil {
		return 0
	}
	return m.countMatching(m.types.Get(listenerType), pred)
}

// Size returns the number of registered listeners.
func (m *Simple) Size() int { return m.listeners.Len() }

// SizeWith returns the number of registered listeners of the given type.
func (m *Simple) SizeWith(listenerType reflect.Type) int {
	if listenerType == nil {
		return 0
	}
	return m.types.LenFor(listenerType)
}

// SizeMeeting counts the listeners all of whose handlers satisfy pred.
func (m *Simple) SizeMeeting(pred handler.Predicate) int {
	if pred == nil {
		return 0
	}
	return len(m.filterAll(m.listeners.All(), pred))
}

// SizeWithMeeting counts the listeners of the given type all of whose
// handlers satisfy pred.
func (m *Simple) SizeWithMeeting(listenerType reflect.Type, pred handler.Predicate) int {
	if listenerType == nil || pred == nil {
		return 0
	}
	return len(m.filterAll(m.types.Get(listenerType), pred))
}

func (m *Simple) filterAll(ls []handler.Listener, pred handler.Predicate) []handler.Listener {
	var out []handler.Listener
	for _, l := range ls {
		if m.allMatch(l, pred) {
			out = append(out, l)
		}
	}
	return out
}

func (m *Simple) allMatch(l handler.Listener, pred handler.Predicate) bool {
	for _, e := range m.handlers.Get(l) {
		if !pred(e.Descriptor) {
			return false
		}
	}
	return true
}

func (m *Simple) anyMatch(ls []handler.Listener, pred handler.Predicate) bool {
	for _, l := range ls {
		for _, e := range m.handlers.Get(l) {
			if pred(e.Descriptor) {
				return true
			}
		}
	}
	return false
}

func (m *Simple) countMatching(ls []handler.Listener, pred handler.Predicate) int {
	n := 0
	for _, l := range ls {
		for _, e := range m.handlers.Get(l) {
			if pred(e.Descriptor) {
				n++
			}
		}
	}
	return n
}
