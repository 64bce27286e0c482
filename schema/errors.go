package schema

import (
	"errors"
	"fmt"
)

// ErrEmptyReplaces is returned when a Replace marker names no fields.
var ErrEmptyReplaces = errors.New("patterngen: replace marker requires at least one replaced field")

// MarkerError records an invalid marker on a named element.
type MarkerError struct {
	Element string // field or method the marker is attached to
	Marker  string // marker kind, e.g. "replace"
	err     error
}

// NewMarkerError wraps err as a MarkerError for the given element.
func NewMarkerError(element, marker string, err error) *MarkerError {
	return &MarkerError{Element: element, Marker: marker, err: err}
}

// Error implements the error interface.
func (e *MarkerError) Error() string {
	return fmt.Sprintf("patterngen: invalid %s marker on %q: %s", e.Marker, e.Element, e.err)
}

// Unwrap returns the underlying cause.
func (e *MarkerError) Unwrap() error { return e.err }

// IsMarkerError reports whether err is a MarkerError.
func IsMarkerError(err error) bool {
	if err == nil {
		return false
	}
	var e *MarkerError
	return errors.As(err, &e)
}
