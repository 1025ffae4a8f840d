// Package demo wires a small set of events and listeners onto a bus. The evbus
// binary uses it for the demo command and for POST /events/{kind}.
package demo

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sergheevdev/event-bus/internal/handler"
)

// Counter is mutated in place by CounterListener.
type Counter struct {
	Value int `json:"value"`
}

// Note is a free-form message recorded by Journal.
type Note struct {
	Text string `json:"text"`
}

// ErrEmptyNote is returned by Journal for notes without text.
var ErrEmptyNote = errors.New("note text is empty")

// CounterListener adds 10 to a Counter and then doubles it.
type CounterListener struct {
	Name string
}

// HandlerTags implements handler.Listener.
func (*CounterListener) HandlerTags() []handler.Tag {
	return []handler.Tag{
		{Method: "Add", ID: "counter-add", Order: 1},
		{Method: "Double", ID: "counter-double", Order: 2},
	}
}

func (*CounterListener) Add(c *Counter) { c.Value += 10 }

func (*CounterListener) Double(c *Counter) { c.Value *= 2 }

// Journal records notes and the counter values it observes after the
// counter handlers ran.
type Journal struct {
	log *zerolog.Logger

	mu      sync.Mutex
	entries []string
}

// NewJournal returns an empty Journal. A nil logger disables logging.
func NewJournal(log *zerolog.Logger) *Journal {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Journal{log: log}
}

// HandlerTags implements handler.Listener.
func (*Journal) HandlerTags() []handler.Tag {
	return []handler.Tag{
		{Method: "OnNote", ID: "journal-note", Order: 1},
		{Method: "OnCounter", ID: "journal-counter", Order: 10},
	}
}

func (j *Journal) OnNote(n *Note) error {
	if n.Text == "" {
		return ErrEmptyNote
	}
	j.record("note: " + n.Text)
	return nil
}

func (j *Journal) OnCounter(c *Counter) {
	j.record(fmt.Sprintf("counter: %d", c.Value))
}

func (j *Journal) record(s string) {
	j.mu.Lock()
	j.entries = append(j.entries, s)
	j.mu.Unlock()
	j.log.Info().Str("entry", s).Msg("journal")
}

// Entries returns a copy of the recorded entries, oldest first.
func (j *Journal) Entries() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}
