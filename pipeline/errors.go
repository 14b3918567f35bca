package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidArgumentsError reports a Do or verb-helper call whose arguments
// matched none of the recognized shapes (uri, opts, cb), (opts, cb), or
// (uri, cb). It is returned synchronously from normalization, never
// through the callback.
type InvalidArgumentsError struct {
	// Args are the offending arguments as given.
	Args []any
}

// Error implements the error interface.
func (e *InvalidArgumentsError) Error() string {
	types := make([]string, len(e.Args))
	for i, a := range e.Args {
		types[i] = fmt.Sprintf("%T", a)
	}
	return fmt.Sprintf("pipeline: invalid arguments (%s)", strings.Join(types, ", "))
}

// IsInvalidArguments checks if an error is an InvalidArgumentsError.
func IsInvalidArguments(err error) bool {
	var e *InvalidArgumentsError
	return errors.As(err, &e)
}
