package fetch

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is returned for requests that cannot run.
var ErrInvalidRequest = errors.New("invalid fetch request")

// CollaboratorError reports a failed clone or conversion.
type CollaboratorError struct {
	Op  string // "clone" or "docs"
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }
