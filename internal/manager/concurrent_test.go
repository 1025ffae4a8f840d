package manager

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergheevdev/event-bus/internal/handler"
)

// tally counts the pings it sees. The Concurrent manager serializes handler
// calls, so hits needs no lock of its own.
type tally struct {
	name string
	hits int
}

type ping struct{ n int }

func (*tally) HandlerTags() []handler.Tag {
	return []handler.Tag{{Method: "OnPing", ID: "tally", Order: 1}}
}

func (t *tally) OnPing(p *ping) {
	t.hits++
	p.n++
}

func TestConcurrent_ParallelRegisterTransmitUnregister(t *testing.T) {
	m := NewConcurrent(Config{})
	const workers = 8
	const rounds = 200

	stable := &tally{name: "stable"}
	_, err := m.Register(stable)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				l := &tally{name: fmt.Sprintf("w%d-%d", w, i)}
				if _, err := m.Register(l); err != nil {
					errs <- err
					return
				}
				p := &ping{}
				if err := m.Transmit(p); err != nil {
					errs <- err
					return
				}
				// stable plus l, plus whatever other workers have registered
				if p.n < 2 {
					errs <- fmt.Errorf("ping reached %d handlers, want at least 2", p.n)
					return
				}
				if n, err := m.Unregister(l); err != nil || n != 1 {
					errs <- fmt.Errorf("unregister %s: n=%d err=%v", l.name, n, err)
					return
				}
				_ = m.Size()
				_ = m.HandlersAmountMeeting(handler.All)
				_ = m.Snapshot()
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	assert.Equal(t, 1, m.Size())
	assert.Equal(t, workers*rounds, stable.hits)
	require.NoError(t, checkPaired(m.inner))
}

func TestConcurrent_ReturnedSlicesAreCopies(t *testing.T) {
	m := NewConcurrent(Config{})
	a, b := &tally{name: "a"}, &tally{name: "b"}
	for _, l := range []handler.Listener{a, b} {
		_, err := m.Register(l)
		require.NoError(t, err)
	}

	got := m.GetAll()
	_, err := m.Unregister(a)
	require.NoError(t, err)

	assert.Equal(t, []handler.Listener{a, b}, got)
	assert.Equal(t, []handler.Listener{b}, m.GetAll())
}
