package manager

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/sergheevdev/event-bus/internal/handler"
)

var (
	// ErrInvalidArgument reports a nil listener, event, type or predicate, or a
	// listener that is not a non-nil pointer. No state is touched.
	ErrInvalidArgument = errors.New("manager: invalid argument")

	// ErrInconsistentState reports that the handler index and the event queues
	// disagree about an entry. It always signals a bug in this package.
	ErrInconsistentState = errors.New("manager: inconsistent state")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// IsInvalidArgument reports whether err was caused by bad caller input.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// ConsistencyError describes an entry that was present in only one of the
// two indices that must always agree.
type ConsistencyError struct {
	Entry          handler.Entry
	InHandlerIndex bool
	InEventQueues  bool
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("manager: inconsistent state: entry %s (handler index=%t, event queues=%t)",
		e.Entry, e.InHandlerIndex, e.InEventQueues)
}

// Is matches ErrInconsistentState.
func (e *ConsistencyError) Is(target error) bool { return target == ErrInconsistentState }

// IsInconsistent reports whether err signals corrupted manager state.
func IsInconsistent(err error) bool { return errors.Is(err, ErrInconsistentState) }

// InvocationError wraps the failure of one handler during Transmit. Handlers
// queued after the failing one were not called.
type InvocationError struct {
	HandlerID string
	Method    string
	Listener  string
	EventType reflect.Type
	Err       error
}

func newInvocationError(e handler.Entry, err error) *InvocationError {
	return &InvocationError{
		HandlerID: e.Descriptor.ID,
		Method:    e.Descriptor.Method.Name,
		Listener:  listenerName(e.Listener),
		EventType: e.Descriptor.EventType,
		Err:       err,
	}
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("manager: handler %q (%s.%s) failed on %s: %v",
		e.HandlerID, e.Listener, e.Method, e.EventType, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// IsInvocation reports whether err came from a failing handler.
func IsInvocation(err error) bool {
	var ie *InvocationError
	return errors.As(err, &ie)
}
