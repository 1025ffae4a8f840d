package index

import (
	"reflect"

	"github.com/sergheevdev/event-bus/internal/handler"
	"github.com/sergheevdev/event-bus/internal/queue"
)

// EventQueues maps an event type to the ordered queue of entries handling it.
// Queues are created lazily and dropped as soon as they empty.
type EventQueues struct {
	queues map[reflect.Type]*queue.Ordered[handler.Entry]
}

// NewEventQueues returns an empty index.
func NewEventQueues() *EventQueues {
	return &EventQueues{queues: make(map[reflect.Type]*queue.Ordered[handler.Entry])}
}

func newEntryQueue() *queue.Ordered[handler.Entry] {
	return queue.New(handler.ByOrder, handler.Entry.Equal)
}

// Offer adds e to t's queue and reports whether it was new.
func (q *EventQueues) Offer(t reflect.Type, e handler.Entry) bool {
	oq, ok := q.queues[t]
	if !ok {
		oq = newEntryQueue()
		q.queues[t] = oq
	}
	return oq.Offer(e)
}

// Remove drops e from t's queue and reports whether it was present.
func (q *EventQueues) Remove(t reflect.Type, e handler.Entry) bool {
	oq, ok := q.queues[t]
	if !ok {
		return false
	}
	removed := oq.Remove(e)
	if oq.IsEmpty() {
		delete(q.queues, t)
	}
	return removed
}

// Contains reports whether e is queued under t.
func (q *EventQueues) Contains(t reflect.Type, e handler.Entry) bool {
	oq, ok := q.queues[t]
	return ok && oq.Contains(e)
}

// For returns a copy of t's queue, or nil when no handler accepts t.
// The copy is unaffected by later changes to the index.
func (q *EventQueues) For(t reflect.Type) *queue.Ordered[handler.Entry] {
	oq, ok := q.queues[t]
	if !ok {
		return nil
	}
	return oq.Clone()
}

// Types returns every event type with at least one queued entry.
func (q *EventQueues) Types() []reflect.Type {
	out := make([]reflect.Type, 0, len(q.queues))
	for t := range q.queues {
		out = append(out, t)
	}
	return out
}

// Len returns the total number of queued entries across all types.
func (q *EventQueues) Len() int {
	n := 0
	for _, oq := range q.queues {
		n += oq.Len()
	}
	return n
}

// LenFor returns the number of entries queued under t.
func (q *EventQueues) LenFor(t reflect.Type) int {
	if oq, ok := q.queues[t]; ok {
		return oq.Len()
	}
	return 0
}

// IsEmpty reports whether no event type has a queue.
func (q *EventQueues) IsEmpty() bool { return len(q.queues) == 0 }

// Clear drops every queue.
func (q *EventQueues) Clear() { clear(q.queues) }
