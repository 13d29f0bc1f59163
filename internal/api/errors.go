package api

import (
	"errors"
	"fmt"
)

// ShapeError marks a response whose payload did not match the expected
// schema. Shape problems are logged at the service boundary and
// surfaced to views as a generic message; the cause stays available for
// the log.
type ShapeError struct {
	Endpoint string
	Cause    error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected response format from %s", e.Endpoint)
}

func (e *ShapeError) Unwrap() error { return e.Cause }

// IsShapeError reports whether err carries a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}
