// Package types holds the JSON payloads served by the introspection API.
package types

// QueueStatus summarizes the handler queue of one event type.
type QueueStatus struct {
	// Go type of the event, as printed by reflect.
	// example: *demo.Counter
	EventType string `json:"event_type"`
	// Number of handlers queued for the event type.
	// example: 2
	Handlers int `json:"handlers"`
}

// ListenerTypeStatus counts the registered instances of one listener type.
type ListenerTypeStatus struct {
	// example: *demo.CounterListener
	ListenerType string `json:"listener_type"`
	// example: 1
	Listeners int `json:"listeners"`
	// Handlers held by all instances of the type.
	// example: 2
	Handlers int `json:"handlers"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Manager variant serving the bus.
	// example: concurrent
	Variant string `json:"variant"`
	// Number of registered listener instances.
	// example: 1
	Listeners int `json:"listeners"`
	// Number of registered handler entries.
	// example: 2
	Handlers int `json:"handlers"`
	// Per event type queues, sorted by event type.
	Queues []QueueStatus `json:"queues"`
	// Per listener type counts, sorted by listener type.
	ListenerTypes []ListenerTypeStatus `json:"listener_types"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: not found
	Error string `json:"error"`
	// HTTP status code.
	// example: 404
	Code int `json:"code"`
}

// KindsResponse is returned by GET /events.
type KindsResponse struct {
	// Event kinds accepted by POST /events/{kind}, sorted.
	// example: ["counter","note"]
	Kinds []string `json:"kinds"`
}

// PublishResponse is returned by POST /events/{kind} once every handler ran.
type PublishResponse struct {
	// example: counter
	Kind string `json:"kind"`
	// The event as the handlers left it.
	Event any `json:"event"`
}
