package doc_builder

import (
	"errors"
	"fmt"
)

// ErrNoSnapshots is wrapped by the ValidationError for an empty document.
var ErrNoSnapshots = errors.New("a document requires at least one snapshot")

// ValidationError reports a RawDoc that cannot be built. It is returned
// before any tokenization happens.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid document: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
