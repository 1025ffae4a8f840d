package manager

import (
	"reflect"
	"sync"

	"github.com/sergheevdev/event-bus/internal/handler"
)

// Concurrent is a Manager safe for use by multiple goroutines. Every method,
// queries included, runs under one exclusive mutex, and Transmit holds it for
// the whole dispatch.
//
// The mutex is not reentrant: a handler that calls back into the same
// Concurrent manager from inside Transmit deadlocks. The same applies to
// EventPublisher implementations.
type Concurrent struct {
	mu    sync.Mutex
	inner *Simple
}

// NewConcurrent constructs a lock-guarded manager. cfg.Concurrent is ignored.
func NewConcurrent(cfg Config) *Concurrent {
	return &Concurrent{inner: newSimple(cfg, VariantConcurrent)}
}

// Register locks c and calls Simple.Register.
func (c *Concurrent) Register(l handler.Listener) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Register(l)
}

// RegisterMeeting locks c and calls Simple.RegisterMeeting.
func (c *Concurrent) RegisterMeeting(l handler.Listener, pred handler.Predicate) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.RegisterMeeting(l, pred)
}

// Unregister locks c and calls Simple.Unregister.
func (c *Concurrent) Unregister(l handler.Listener) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Unregister(l)
}

// UnregisterMeeting locks c and calls Simple.UnregisterMeeting.
func (c *Concurrent) UnregisterMeeting(l handler.Listener, pred handler.Predicate) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.UnregisterMeeting(l, pred)
}

// UnregisterWithMeeting locks c and calls Simple.UnregisterWithMeeting.
func (c *Concurrent) UnregisterWithMeeting(listenerType reflect.Type, pred handler.Predicate) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.UnregisterWithMeeting(listenerType, pred)
}

// Transmit locks c and calls Simple.Transmit.
func (c *Concurrent) Transmit(ev handler.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Transmit(ev)
}

// GetAll locks c and calls Simple.GetAll.
func (c *Concurrent) GetAll() []handler.Listener {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.GetAll()
}

// GetMeeting locks c and calls Simple.GetMeeting.
func (c *Concurrent) GetMeeting(pred handler.Predicate) []handler.Listener {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.GetMeeting(pred)
}

// GetWith locks c and calls Simple.GetWith.
func (c *Concurrent) GetWith(listenerType reflect.Type) []handler.Listener {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.GetWith(listenerType)
}

// GetWithMeeting locks c and calls Simple.GetWithMeeting.
func (c *Concurrent) GetWithMeeting(listenerType reflect.Type, pred handler.Predicate) []handler.Listener {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.GetWithMeeting(listenerType, pred)
}

// Contains locks c and calls Simple.Contains.
func (c *Concurrent) Contains(l handler.Listener) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Contains(l)
}

// ContainsAnyMeeting locks c and calls Simple.ContainsAnyMeeting.
func (c *Concurrent) ContainsAnyMeeting(pred handler.Predicate) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.ContainsAnyMeeting(pred)
}

// ContainsAnyWith locks c and calls Simple.ContainsAnyWith.
func (c *Concurrent) ContainsAnyWith(listenerType reflect.Type) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.ContainsAnyWith(listenerType)
}

// ContainsAnyWithMeeting locks c and calls Simple.ContainsAnyWithMeeting.
func (c *Concurrent) ContainsAnyWithMeeting(listenerType reflect.Type, pred handler.Predicate) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.ContainsAnyWithMeeting(listenerType, pred)
}

// HandlersAmount locks c and calls Simple.HandlersAmount.
func (c *Concurrent) HandlersAmount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.HandlersAmount()
}

// HandlersAmountWith locks c and calls Simple.HandlersAmountWith.
func (c *Concurrent) HandlersAmountWith(listenerType reflect.Type) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.HandlersAmountWith(listenerType)
}

// HandlersAmountMeeting locks c and calls Simple.HandlersAmountMeeting.
func (c *Concurrent) HandlersAmountMeeting(pred handler.Predicate) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.HandlersAmountMeeting(pred)
}

// HandlersAmountWithMeeting locks c and calls Simple.HandlersAmountWithMeeting.
func (c *Concurrent) HandlersAmountWithMeeting(listenerType reflect.Type, pred handler.Predicate) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.HandlersAmountWithMeeting(listenerType, pred)
}

// Size locks c and calls Simple.Size.
func (c *Concurrent) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Size()
}

// SizeWith locks c and calls Simple.SizeWith.
func (c *Concurrent) SizeWith(listenerType reflect.Type) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.SizeWith(listenerType)
}

// SizeMeeting locks c and calls Simple.SizeMeeting.
func (c *Concurrent) SizeMeeting(pred handler.Predicate) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.SizeMeeting(pred)
}

// SizeWithMeeting locks c and calls Simple.SizeWithMeeting.
func (c *Concurrent) SizeWithMeeting(listenerType reflect.Type, pred handler.Predicate) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.SizeWithMeeting(listenerType, pred)
}

// ClearAll locks c and calls Simple.ClearAll.
func (c *Concurrent) ClearAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.ClearAll()
}

// Snapshot locks c and calls Simple.Snapshot.
func (c *Concurrent) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Snapshot()
}

var (
	_ Manager = (*Simple)(nil)
	_ Manager = (*Concurrent)(nil)
)
