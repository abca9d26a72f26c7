package content

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyParented is returned when attaching an object that already has a parent.
	ErrAlreadyParented = errors.New("object already has a parent")
	// ErrDuplicateName is returned when a name is already registered in the container.
	ErrDuplicateName = errors.New("name already registered")
	// ErrInvalidName is returned when a named-only attachment has no name, or
	// when a name could not be written as a path component ("a.b", "12", "^").
	ErrInvalidName = errors.New("object has no valid name")
	// ErrNilObject is returned when a nil object or container is passed to a mutation.
	ErrNilObject = errors.New("nil object")
	// ErrIndexOutOfRange is returned by InsertContent for positions outside [0, len].
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrCycle is returned when an attachment would make a container its own ancestor.
	ErrCycle = errors.New("attachment would create a cycle")
)

// MutationError reports a rejected structural change to a container.
type MutationError struct {
	Op        string
	Container string
	Err       error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("content: %s on %s: %v", e.Op, e.Container, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

func (c *Container) mutationError(op string, err error) error {
	return &MutationError{Op: op, Container: c.describe(), Err: err}
}

func (c *Container) describe() string {
	if c.name != "" {
		return fmt.Sprintf("container %q", c.name)
	}
	p := c.Path()
	if p.Len() == 0 {
		return "root container"
	}
	return fmt.Sprintf("container at %q", p.String())
}
