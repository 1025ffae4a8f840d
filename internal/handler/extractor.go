package handler

import (
	"fmt"
	"reflect"
)

// Extractor produces the handler descriptors eligible for registration from a
// concrete listener type.
type Extractor interface {
	// Extract returns every handler of listenerType.
	Extract(listenerType reflect.Type) ([]Descriptor, error)
	// ExtractMeeting returns the handlers of listenerType that satisfy pred.
	ExtractMeeting(listenerType reflect.Type, pred Predicate) ([]Descriptor, error)
}

// TagExtractor reads handler declarations from Listener.HandlerTags.
//
// Each method may be tagged once. When a tag is invalid or repeats a method,
// the descriptors built before it are returned along with an error wrapping
// ErrInvalidHandler.
type TagExtractor struct{}

// NewTagExtractor returns the default extractor.
func NewTagExtractor() TagExtractor { return TagExtractor{} }

// Extract implements Extractor.
func (x TagExtractor) Extract(t reflect.Type) ([]Descriptor, error) {
	return x.ExtractMeeting(t, All)
}

// ExtractMeeting implements Extractor.
func (TagExtractor) ExtractMeeting(t reflect.Type, pred Predicate) ([]Descriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil listener type", ErrInvalidHandler)
	}
	if pred == nil {
		return nil, fmt.Errorf("%w: nil predicate", ErrInvalidHandler)
	}
	if t.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: %s is an interface, not a concrete listener type", ErrInvalidHandler, t)
	}
	if !t.Implements(listenerType) {
		return nil, fmt.Errorf("%w: %s does not implement handler.Listener", ErrInvalidHandler, t)
	}

	tags, err := tagsOf(t)
	if err != nil {
		return nil, err
	}
	out := make([]Descriptor, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag.Method]; dup {
			return out, fmt.Errorf("%w: %s tags method %q more than once", ErrInvalidHandler, t, tag.Method)
		}
		seen[tag.Method] = struct{}{}
		d, err := NewDescriptor(t, tag)
		if err != nil {
			return out, err
		}
		if pred(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

// tagsOf calls HandlerTags on a zero value of t.
func tagsOf(t reflect.Type) (tags []Tag, err error) {
	var v reflect.Value
	if t.Kind() == reflect.Pointer {
		v = reflect.New(t.Elem())
	} else {
		v = reflect.New(t).Elem()
	}
	l, ok := v.Interface().(Listener)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not implement handler.Listener", ErrInvalidHandler, t)
	}
	defer func() {
		if r := recover(); r != nil {
			tags, err = nil, fmt.Errorf("%w: %s.HandlerTags panicked on a zero value: %v", ErrInvalidHandler, t, r)
		}
	}()
	return l.HandlerTags(), nil
}
