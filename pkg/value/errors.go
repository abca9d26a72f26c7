package value

import (
	"errors"
	"fmt"
)

// ErrInvalidCast is matched by every cast failure.
var ErrInvalidCast = errors.New("invalid cast")

// CastError reports a failed Cast.
type CastError struct {
	From ValueType
	To   ValueType
	Err  error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("value: cannot cast %s to %s: %v", e.From, e.To, e.Err)
}

func (e *CastError) Unwrap() error { return e.Err }

func badCast(from, to ValueType) error {
	return &CastError{From: from, To: to, Err: ErrInvalidCast}
}

func badConversion(from, to ValueType, cause error) error {
	return &CastError{From: from, To: to, Err: fmt.Errorf("%w: %v", ErrInvalidCast, cause)}
}
