package demo

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergheevdev/event-bus/internal/bus"
	"github.com/sergheevdev/event-bus/internal/handler"
	"github.com/sergheevdev/event-bus/internal/manager"
)

func newService(t *testing.T) (*Service, *Journal) {
	t.Helper()
	j := NewJournal(nil)
	b, err := bus.New(bus.WithConcurrent(), bus.WithListeners(&CounterListener{Name: "counter"}, j))
	require.NoError(t, err)
	return NewService(b), j
}

func TestPublish_CounterRunsInOrder(t *testing.T) {
	s, j := newService(t)

	ev, err := s.Publish("counter", []byte(`{"value": 10}`))
	require.NoError(t, err)
	assert.Equal(t, &Counter{Value: 40}, ev)
	assert.Equal(t, []string{"counter: 40"}, j.Entries())
}

func TestPublish_EmptyPayloadIsZeroEvent(t *testing.T) {
	s, _ := newService(t)

	ev, err := s.Publish("counter", nil)
	require.NoError(t, err)
	assert.Equal(t, &Counter{Value: 20}, ev)
}

func TestPublish_Note(t *testing.T) {
	s, j := newService(t)

	_, err := s.Publish("note", []byte(`{"text":"hello"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"note: hello"}, j.Entries())

	_, err = s.Publish("note", []byte(`{}`))
	require.Error(t, err)
	assert.True(t, manager.IsInvocation(err))
	assert.ErrorIs(t, err, ErrEmptyNote)
}

func TestPublish_UnknownKind(t *testing.T) {
	s, _ := newService(t)

	_, err := s.Publish("nope", []byte(`{}`))
	var uk *UnknownKindError
	require.True(t, errors.As(err, &uk))
	assert.Equal(t, "nope", uk.Kind)
	assert.Equal(t, http.StatusNotFound, uk.StatusCode())
}

func TestPublish_DecodeError(t *testing.T) {
	s, _ := newService(t)

	_, err := s.Publish("counter", []byte(`{"value":"x"}`))
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "counter", de.Kind)
	assert.Equal(t, http.StatusBadRequest, de.StatusCode())
}

func TestService_HandleAndKinds(t *testing.T) {
	s, _ := newService(t)
	assert.Equal(t, []string{"counter", "note"}, s.Kinds())

	type custom struct{ N int }
	s.Handle("custom", func([]byte) (handler.Event, error) { return &custom{N: 1}, nil })
	assert.Equal(t, []string{"counter", "custom", "note"}, s.Kinds())

	// no listener handles *custom; posting it is a no-op
	ev, err := s.Publish("custom", nil)
	require.NoError(t, err)
	assert.Equal(t, &custom{N: 1}, ev)
}

func TestService_Snapshot(t *testing.T) {
	s, _ := newService(t)

	snap := s.Snapshot()
	assert.Equal(t, manager.VariantConcurrent, snap.Variant)
	assert.Equal(t, 2, snap.Listeners)
	assert.Equal(t, 4, snap.Handlers)
	require.Len(t, snap.Queues, 2)
	assert.Equal(t, "*demo.Counter", snap.Queues[0].EventType.String())
	assert.Equal(t, 3, snap.Queues[0].Handlers)
}
