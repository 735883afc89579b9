// Package coreerr defines the structured failure kinds the core surfaces
// to its collaborators. The core never logs and never wraps os/io errors
// here; those belong to the loaders and adapters that sit outside it.
package coreerr

import "fmt"

// Kind identifies which of the core's three failure taxonomies an Error
// belongs to.
type Kind int

const (
	// ConstraintViolation means a mapping or state operation would break
	// an invariant (Simple{from=to}, threshold_ms=0, reserved id 255, ...).
	ConstraintViolation Kind = iota
	// CapacityExceeded means a fixed-capacity resource is full (the
	// pending-key registry, a conditional-mapping inline table bound).
	CapacityExceeded
	// InvalidKey means a key code value was used outside the closed
	// enumeration. Not reachable through static Go types in this
	// implementation; kept defensive for deserialized input.
	InvalidKey
)

func (k Kind) String() string {
	switch k {
	case ConstraintViolation:
		return "constraint_violation"
	case CapacityExceeded:
		return "capacity_exceeded"
	case InvalidKey:
		return "invalid_key"
	default:
		return "unknown"
	}
}

// Error is the core's single error type. Resource names the resource
// involved for CapacityExceeded; it is empty for other kinds.
type Error struct {
	Kind     Kind
	Message  string
	Resource string
}

func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Resource)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewConstraintViolation builds a ConstraintViolation error.
func NewConstraintViolation(format string, args ...any) *Error {
	return &Error{Kind: ConstraintViolation, Message: fmt.Sprintf(format, args...)}
}

// NewCapacityExceeded builds a CapacityExceeded error for the named resource.
func NewCapacityExceeded(resource, format string, args ...any) *Error {
	return &Error{Kind: CapacityExceeded, Message: fmt.Sprintf(format, args...), Resource: resource}
}

// NewInvalidKey builds an InvalidKey error.
func NewInvalidKey(format string, args ...any) *Error {
	return &Error{Kind: InvalidKey, Message: fmt.Sprintf(format, args...)}
}

// KindIs reports whether e is non-nil and of the given Kind, so
// collaborators can check a failure's kind after errors.As.
func (e *Error) KindIs(k Kind) bool {
	return e != nil && e.Kind == k
}
