package compiler

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument is returned for documents without any content.
var ErrEmptyDocument = errors.New("empty document")

// DocumentError reports a problem at a location inside a story document,
// e.g. "content[1].named[0]".
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("compiler: %v", e.Err)
	}
	return fmt.Sprintf("compiler: at %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

func docErr(at string, err error) error {
	return &DocumentError{Path: at, Err: err}
}
