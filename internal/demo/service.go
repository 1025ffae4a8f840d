package demo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/sergheevdev/event-bus/internal/bus"
	"github.com/sergheevdev/event-bus/internal/handler"
	"github.com/sergheevdev/event-bus/internal/manager"
)

// Decoder builds an event from a JSON payload.
type Decoder func(payload []byte) (handler.Event, error)

// UnknownKindError reports a kind with no decoder.
type UnknownKindError struct{ Kind string }

func (e *UnknownKindError) Error() string { return fmt.Sprintf("unknown event kind %q", e.Kind) }

func (e *UnknownKindError) StatusCode() int { return http.StatusNotFound }

// DecodeError reports a payload that does not decode into its event.
type DecodeError struct {
	Kind string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s event: %v", e.Kind, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) StatusCode() int { return http.StatusBadRequest }

// Service publishes decoded events on a bus. Decoders are registered with
// Handle before the Service is shared between goroutines.
type Service struct {
	bus      *bus.Bus
	decoders map[string]Decoder
}

// NewService returns a Service posting to b, with decoders for the
// "counter" and "note" kinds.
func NewService(b *bus.Bus) *Service {
	s := &Service{bus: b, decoders: make(map[string]Decoder)}
	s.Handle("counter", decodeInto[Counter])
	s.Handle("note", decodeInto[Note])
	return s
}

// Handle sets the decoder of kind, replacing any previous one.
func (s *Service) Handle(kind string, dec Decoder) {
	s.decoders[kind] = dec
}

// Kinds returns the known kinds, sorted.
func (s *Service) Kinds() []string {
	kinds := make([]string, 0, len(s.decoders))
	for k := range s.decoders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Publish decodes payload as an event of the given kind and posts it. The
// event is returned as the handlers left it, also when one of them failed.
func (s *Service) Publish(kind string, payload []byte) (handler.Event, error) {
	dec, ok := s.decoders[kind]
	if !ok {
		return nil, &UnknownKindError{Kind: kind}
	}
	ev, err := dec(payload)
	if err != nil {
		return nil, &DecodeError{Kind: kind, Err: err}
	}
	return ev, s.bus.Post(ev)
}

// Snapshot reports the state of the manager behind the bus.
func (s *Service) Snapshot() manager.Snapshot {
	return s.bus.Manager().Snapshot()
}

// decodeInto decodes into a new E. An empty payload yields the zero event.
func decodeInto[E any](payload []byte) (handler.Event, error) {
	ev := new(E)
	if len(bytes.TrimSpace(payload)) == 0 {
		return ev, nil
	}
	if err := json.Unmarshal(payload, ev); err != nil {
		return nil, err
	}
	return ev, nil
}
