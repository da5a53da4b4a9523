package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrResolution marks a failed network identity resolution. Once the first
// fetch of a tracked value fails, every dependent call on the same factory
// observes an error wrapping ErrResolution until a new factory is built.
var ErrResolution = errors.New("network identity resolution failed")

// StatusError is a non-2xx response from the node. It carries the HTTP status
// and the upstream error body so callers can tell "the server failed" apart
// from "the server returned a response this client could not interpret" —
// decode and mapping failures are never wrapped in a StatusError.
type StatusError struct {
	StatusCode int
	Code       string // upstream machine-readable code, when provided
	Message    string
	Path       string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %d %s: %s", e.Path, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %d: %s", e.Path, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the node.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
