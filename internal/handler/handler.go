// Package handler defines listeners, handler descriptors and the registration
// unit the manager stores (Entry), together with the default reflection based
// extractor and invoker.
//
// A listener declares its handler methods through HandlerTags:
//
//	type Audit struct{ lines []string }
//
//	func (*Audit) HandlerTags() []handler.Tag {
//		return []handler.Tag{
//			{Method: "OnLogin", ID: "login", Order: 1},
//			{Method: "OnLogout", ID: "logout", Order: 2},
//		}
//	}
//
//	func (a *Audit) OnLogin(e *LoginEvent)   { a.lines = append(a.lines, e.User) }
//	func (a *Audit) OnLogout(e *LogoutEvent) error { ... }
//
// Tags are read from a fresh zero value of the listener's concrete type, so
// HandlerTags must not depend on the receiver's state.
package handler

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidHandler reports a tag or descriptor that does not describe a
// valid handler method.
var ErrInvalidHandler = errors.New("handler: invalid handler")

// Event is any value posted through the manager. Its dynamic type selects
// which handlers receive it.
type Event = any

// Listener hosts zero or more handler methods. The manager identifies
// listeners by pointer, so a listener must be a non-nil pointer to a type of
// non-zero size: Go may give distinct zero-sized values the same address.
type Listener interface {
	HandlerTags() []Tag
}

// Tag marks an exported method of a listener type as an event handler.
type Tag struct {
	// Method is the name of the exported method.
	Method string
	// ID is a free-form identifier, used in logs and predicates.
	ID string
	// Order sets execution priority; lower runs first.
	Order int
}

// Predicate selects handler descriptors.
type Predicate func(Descriptor) bool

var (
	listenerType = reflect.TypeOf((*Listener)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// Descriptor is an immutable, validated description of one handler method.
type Descriptor struct {
	ID        string
	Order     int
	EventType reflect.Type
	Owner     reflect.Type
	Method    reflect.Method
}

// DescriptorKey is the comparable identity of a Descriptor.
type DescriptorKey struct {
	Owner     reflect.Type
	Method    string
	ID        string
	Order     int
	EventType reflect.Type
}

// NewDescriptor validates tag against owner's method set. owner must be the
// concrete listener type, usually a pointer type.
func NewDescriptor(owner reflect.Type, tag Tag) (Descriptor, error) {
	if owner == nil {
		return Descriptor{}, fmt.Errorf("%w: nil owner type", ErrInvalidHandler)
	}
	m, ok := owner.MethodByName(tag.Method)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s has no exported method %q", ErrInvalidHandler, owner, tag.Method)
	}
	mt := m.Type
	// mt includes the receiver as its first input
	if mt.NumIn() != 2 {
		return Descriptor{}, fmt.Errorf("%w: %s.%s must take exactly one parameter", ErrInvalidHandler, owner, m.Name)
	}
	if mt.IsVariadic() {
		return Descriptor{}, fmt.Errorf("%w: %s.%s must not be variadic", ErrInvalidHandler, owner, m.Name)
	}
	param := mt.In(1)
	if param.Kind() == reflect.Interface {
		return Descriptor{}, fmt.Errorf("%w: %s.%s parameter %s must be a concrete event type", ErrInvalidHandler, owner, m.Name, param)
	}
	switch {
	case mt.NumOut() == 0:
	case mt.NumOut() == 1 && mt.Out(0) == errorType:
	default:
		return Descriptor{}, fmt.Errorf("%w: %s.%s must return nothing or a single error", ErrInvalidHandler, owner, m.Name)
	}
	return Descriptor{
		ID:        tag.ID,
		Order:     tag.Order,
		EventType: param,
		Owner:     owner,
		Method:    m,
	}, nil
}

// Key returns the comparable identity of d.
func (d Descriptor) Key() DescriptorKey {
	return DescriptorKey{
		Owner:     d.Owner,
		Method:    d.Method.Name,
		ID:        d.ID,
		Order:     d.Order,
		EventType: d.EventType,
	}
}

// Equal reports whether d and o describe the same handler.
func (d Descriptor) Equal(o Descriptor) bool { return d.Key() == o.Key() }

func (d Descriptor) String() string {
	return fmt.Sprintf("%s.%s(%s) id=%q order=%d", d.Owner, d.Method.Name, d.EventType, d.ID, d.Order)
}

// Entry pairs a listener instance with one of its handler descriptors. It is
// the unit of registration.
type Entry struct {
	Listener   Listener
	Descriptor Descriptor
}

// EntryKey is the comparable identity of an Entry.
type EntryKey struct {
	Listener   Listener
	Descriptor DescriptorKey
}

// NewEntry binds d to l. The descriptor must have been built for l's concrete
// type.
func NewEntry(l Listener, d Descriptor) (Entry, error) {
	if l == nil {
		return Entry{}, fmt.Errorf("%w: nil listener", ErrInvalidHandler)
	}
	if t := reflect.TypeOf(l); t != d.Owner {
		return Entry{}, fmt.Errorf("%w: %s is not declared by listener type %s", ErrInvalidHandler, d, t)
	}
	return Entry{Listener: l, Descriptor: d}, nil
}

// Key returns the comparable identity of e.
func (e Entry) Key() EntryKey {
	return EntryKey{Listener: e.Listener, Descriptor: e.Descriptor.Key()}
}

// Equal reports whether e and o bind the same listener to the same handler.
func (e Entry) Equal(o Entry) bool { return e.Key() == o.Key() }

// EventType returns the event type e accepts.
func (e Entry) EventType() reflect.Type { return e.Descriptor.EventType }

// Order returns e's execution priority.
func (e Entry) Order() int { return e.Descriptor.Order }

func (e Entry) String() string {
	return fmt.Sprintf("%p %s", e.Listener, e.Descriptor)
}

// ByOrder orders entries by ascending Order.
func ByOrder(a, b Entry) bool { return a.Descriptor.Order < b.Descriptor.Order }
