// internal/api/errors.go
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any StatusError carrying a 401.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is the normalized form of a non-2xx backend response
type StatusError struct {
	StatusCode   int
	ErrorMessage string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.ErrorMessage)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// TransportError wraps failures that never produced an HTTP response
type TransportError struct {
	Op         string
	Underlying error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Underlying)
}

func (e *TransportError) Unwrap() error { return e.Underlying }

// WrapTransportError creates a TransportError from underlying error
func WrapTransportError(op string, err error) error {
	return &TransportError{Op: op, Underlying: err}
}
