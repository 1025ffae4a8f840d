package manager

// Event represents a manager lifecycle event.
// Minimal and stable: name + listener and optional fields via key/values.
type Event struct {
	Name     string
	Listener string
	Fields   map[string]any
}

// Lifecycle event names.
const (
	EventRegister     = "register"
	EventUnregister   = "unregister"
	EventTransmitFail = "transmit_failed"
	EventInconsistent = "inconsistent_state"
)

// EventPublisher receives lifecycle events from the manager. Publish is
// called while the concurrent manager holds its lock, so implementations must
// be non-blocking, must not panic and must not call back into the manager.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
