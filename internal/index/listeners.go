package index

import (
	"reflect"

	"github.com/sergheevdev/event-bus/internal/handler"
)

// ListenerSet is the set of registered listener instances.
type ListenerSet struct {
	members map[handler.Listener]struct{}
	order   []handler.Listener
}

// NewListenerSet returns an empty set.
func NewListenerSet() *ListenerSet {
	return &ListenerSet{members: make(map[handler.Listener]struct{})}
}

// Add inserts l and reports whether it was new.
func (s *ListenerSet) Add(l handler.Listener) bool {
	if _, ok := s.members[l]; ok {
		return false
	}
	s.members[l] = struct{}{}
	s.order = append(s.order, l)
	return true
}

// Remove deletes l and reports whether it was present.
func (s *ListenerSet) Remove(l handler.Listener) bool {
	if _, ok := s.members[l]; !ok {
		return false
	}
	delete(s.members, l)
	for i, x := range s.order {
		if x == l {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether l is registered.
func (s *ListenerSet) Contains(l handler.Listener) bool {
	_, ok := s.members[l]
	return ok
}

// All returns the listeners in registration order.
func (s *ListenerSet) All() []handler.Listener {
	out := make([]handler.Listener, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of listeners.
func (s *ListenerSet) Len() int { return len(s.members) }

// IsEmpty reports whether no listener is registered.
func (s *ListenerSet) IsEmpty() bool { return len(s.members) == 0 }

// Clear removes every listener.
func (s *ListenerSet) Clear() {
	clear(s.members)
	s.order = nil
}

// TypeIndex groups registered listener instances by their concrete type.
type TypeIndex struct {
	m *Multimap[reflect.Type, handler.Listener]
}

// NewTypeIndex returns an empty index.
func NewTypeIndex() *TypeIndex {
	return &TypeIndex{m: NewMultimap[reflect.Type, handler.Listener]()}
}

// Add files l under its concrete type and reports whether it was new.
func (x *TypeIndex) Add(l handler.Listener) bool { return x.m.Add(reflect.TypeOf(l), l) }

// Remove unfiles l and reports whether it was present.
func (x *TypeIndex) Remove(l handler.Listener) bool { return x.m.Remove(reflect.TypeOf(l), l) }

// Contains reports whether l is filed under its type.
func (x *TypeIndex) Contains(l handler.Listener) bool { return x.m.Contains(reflect.TypeOf(l), l) }

// ContainsType reports whether any listener of type t is filed.
func (x *TypeIndex) ContainsType(t reflect.Type) bool { return x.m.ContainsKey(t) }

// Get returns the listeners of type t in registration order.
func (x *TypeIndex) Get(t reflect.Type) []handler.Listener { return x.m.Get(t) }

// Types returns every type with at least one listener.
func (x *TypeIndex) Types() []reflect.Type { return x.m.Keys() }

// Len returns the number of filed listeners.
func (x *TypeIndex) Len() int { return x.m.Len() }

// LenFor returns the number of listeners of type t.
func (x *TypeIndex) LenFor(t reflect.Type) int { return x.m.LenFor(t) }

// IsEmpty reports whether no listener is filed.
func (x *TypeIndex) IsEmpty() bool { return x.m.IsEmpty() }

// ClearFor drops every listener of type t.
func (x *TypeIndex) ClearFor(t reflect.Type) bool { return x.m.ClearFor(t) }

// Clear drops every listener.
func (x *TypeIndex) Clear() { x.m.Clear() }

// HandlerIndex maps a listener instance to its registered handler entries.
// Entries are keyed by handler.EntryKey, so equal entries collapse.
type HandlerIndex struct {
	m       *Multimap[handler.Listener, handler.EntryKey]
	entries map[handler.EntryKey]handler.Entry
}

// NewHandlerIndex returns an empty index.
func NewHandlerIndex() *HandlerIndex {
	return &HandlerIndex{
		m:       NewMultimap[handler.Listener, handler.EntryKey](),
		entries: make(map[handler.EntryKey]handler.Entry),
	}
}

// Add files e under l and reports whether it was new.
func (x *HandlerIndex) Add(l handler.Listener, e handler.Entry) bool {
	k := e.Key()
	if !x.m.Add(l, k) {
		return false
	}
	x.entries[k] = e
	return true
}

// Remove unfiles e from l and reports whether it was present.
func (x *HandlerIndex) Remove(l handler.Listener, e handler.Entry) bool {
	k := e.Key()
	if !x.m.Remove(l, k) {
		return false
	}
	delete(x.entries, k)
	return true
}

// Contains reports whether l has at least one entry.
func (x *HandlerIndex) Contains(l handler.Listener) bool { return x.m.ContainsKey(l) }

// ContainsEntry reports whether e is filed under l.
func (x *HandlerIndex) ContainsEntry(l handler.Listener, e handler.Entry) bool {
	return x.m.Contains(l, e.Key())
}

// Get returns l's entries in registration order.
func (x *HandlerIndex) Get(l handler.Listener) []handler.Entry {
	keys := x.m.Get(l)
	if keys == nil {
		return nil
	}
	out := make([]handler.Entry, len(keys))
	for i, k := range keys {
		out[i] = x.entries[k]
	}
	return out
}

// Listeners returns every listener with at least one entry.
func (x *HandlerIndex) Listeners() []handler.Listener { return x.m.Keys() }

// Len returns the total number of entries.
func (x *HandlerIndex) Len() int { return x.m.Len() }

// LenFor returns the number of entries filed under l.
func (x *HandlerIndex) LenFor(l handler.Listener) int { return x.m.LenFor(l) }

// IsEmpty reports whether no entry is filed.
func (x *HandlerIndex) IsEmpty() bool { return x.m.IsEmpty() }

// ClearFor drops every entry of l.
func (x *HandlerIndex) ClearFor(l handler.Listener) bool {
	keys := x.m.Get(l)
	if !x.m.ClearFor(l) {
		return false
	}
	for _, k := range keys {
		delete(x.entries, k)
	}
	return true
}

// Clear drops every entry.
func (x *HandlerIndex) Clear() {
	x.m.Clear()
	clear(x.entries)
}
