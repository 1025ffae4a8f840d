package manager

import (
	"reflect"
	"sort"
)

// QueueInfo is the size of one event type's handler queue.
type QueueInfo struct {
	EventType reflect.Type
	Handlers  int
}

// ListenerTypeInfo counts the registered listeners of one concrete type.
type ListenerTypeInfo struct {
	ListenerType reflect.Type
	Listeners    int
	Handlers     int
}

// Snapshot is a read-only projection of the manager state.
type Snapshot struct {
	Variant       string
	Listeners     int
	Handlers      int
	Queues        []QueueInfo
	ListenerTypes []ListenerTypeInfo
}

// Snapshot returns the current counts. Queues and ListenerTypes are sorted by
// type name.
func (m *Simple) Snapshot() Snapshot {
	s := Snapshot{
		Variant:   m.variant,
		Listeners: m.listeners.Len(),
		Handlers:  m.handlers.Len(),
	}
	for _, t := range m.queues.Types() {
		s.Queues = append(s.Queues, QueueInfo{EventType: t, Handlers: m.queues.LenFor(t)})
	}
	sort.Slice(s.Queues, func(i, j int) bool {
		return s.Queues[i].EventType.String() < s.Queues[j].EventType.String()
	})
	for _, t := range m.types.Types() {
		s.ListenerTypes = append(s.ListenerTypes, ListenerTypeInfo{
			ListenerType: t,
			Listeners:    m.types.LenFor(t),
			Handlers:     m.HandlersAmountWith(t),
		})
	}
	sort.Slice(s.ListenerTypes, func(i, j int) bool {
		return s.ListenerTypes[i].ListenerType.String() < s.ListenerTypes[j].ListenerType.String()
	})
	return s
}
