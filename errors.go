package ply

import "fmt"

// ErrorKind classifies layout engine failures.
type ErrorKind uint8

const (
	// ErrTextMeasurementFunctionNotProvided is raised when a text element is
	// declared before a measure function has been registered.
	ErrTextMeasurementFunctionNotProvided ErrorKind = iota
	// ErrArenaCapacityExceeded is raised when per-frame working memory runs out.
	ErrArenaCapacityExceeded
	// ErrElementsCapacityExceeded is raised when more elements are declared
	// than the configured maximum. Declarations past capacity are ignored.
	ErrElementsCapacityExceeded
	// ErrTextMeasurementCapacityExceeded is raised when the measured-word
	// cache runs out of slots.
	ErrTextMeasurementCapacityExceeded
	// ErrDuplicateID is raised when an id is declared twice in the same frame.
	ErrDuplicateID
	// ErrFloatingContainerParentNotFound is raised when a floating element's
	// parent id does not resolve to a declared element.
	ErrFloatingContainerParentNotFound
	// ErrInternalError indicates a broken engine invariant.
	ErrInternalError
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTextMeasurementFunctionNotProvided:
		return "text measurement function not provided"
	case ErrArenaCapacityExceeded:
		return "arena capacity exceeded"
	case ErrElementsCapacityExceeded:
		return "elements capacity exceeded"
	case ErrTextMeasurementCapacityExceeded:
		return "text measurement capacity exceeded"
	case ErrDuplicateID:
		return "duplicate element id"
	case ErrFloatingContainerParentNotFound:
		return "floating container parent not found"
	case ErrInternalError:
		return "internal error"
	}
	return "unknown error"
}

// LayoutError carries a classified engine failure. Declaration calls cannot
// return errors mid-frame, so errors are delivered to the handler registered
// with SetErrorHandler.
type LayoutError struct {
	Kind ErrorKind
	Text string
}

func (e *LayoutError) Error() string {
	if e.Text == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Text)
}

// Is lets errors.Is match on a LayoutError with the same kind.
func (e *LayoutError) Is(target error) bool {
	other, ok := target.(*LayoutError)
	return ok && other.Kind == e.Kind
}

// ErrorHandler receives engine errors as they occur during frame building.
type ErrorHandler func(err *LayoutError)

func (c *Context) raiseError(kind ErrorKind, text string) {
	err := &LayoutError{Kind: kind, Text: text}
	debugLog("error: %v", err)
	if c.errorHandler != nil {
		c.errorHandler(err)
	}
}
