// Package manager provides the event manager: listener registration,
// handler bookkeeping and ordered dispatch. It is structured into small files
// by concern:
//
//   - manager.go: Manager interface, the Simple variant, register/unregister/transmit.
//   - query.go: read-only queries (Get*, Contains*, HandlersAmount*, Size*).
//   - concurrent.go: the Concurrent variant, one mutex around Simple.
//   - config.go: Config and defaults; New picks the variant.
//   - errors.go: sentinel and typed errors (IsInvalidArgument, IsInconsistent, IsInvocation).
//   - events.go, eventpub_memory.go: lifecycle event publishing.
//   - metrics.go: Prometheus collectors labelled by variant.
//   - snapshot.go: Snapshot for the introspection API.
//
// Every registered handler entry lives in two indices at once: under its
// listener and in the ordered queue of its event type. A listener is
// registered if and only if it has at least one entry. An operation that
// finds the indices disagreeing reports ErrInconsistentState.
//
// Events are routed by their dynamic type. A handler declared for *Counter
// receives *Counter values only; posting a Counter value reaches nobody.
package manager
