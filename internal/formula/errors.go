// internal/formula/errors.go
package formula

import (
	"errors"
	"fmt"
)

// ErrSyntaxUnchecked is returned by Submit when the current text was never checked
var ErrSyntaxUnchecked = errors.New("formula syntax has not been checked")

// ModuleNotFoundError is raised when "<token>." names no known module
type ModuleNotFoundError struct {
	Token string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module not found: %s", e.Token)
}

// FieldNotFoundError is raised at submit time for an unknown "<module>.<field>"
type FieldNotFoundError struct {
	Module string
	Field  string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field not found: %s.%s", e.Module, e.Field)
}

// SyntaxError carries the backend's verdict on an invalid formula
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Message == "" {
		return "invalid formula"
	}
	return fmt.Sprintf("invalid formula: %s", e.Message)
}
