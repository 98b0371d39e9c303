package config

import (
	"fmt"
	"strings"
)

// ValidationError is a single configuration problem.
type ValidationError struct {
	// Path is the option name, dotted for nested options.
	Path string

	// Message describes what's wrong.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects multiple configuration problems.
type ValidationErrors struct {
	Errors []*ValidationError
}

// Add records a problem.
func (e *ValidationErrors) Add(path, message string) {
	e.Errors = append(e.Errors, &ValidationError{Path: path, Message: message})
}

// HasErrors reports whether any problem was recorded.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e.Errors), strings.Join(msgs, "\n  - "))
}

// AsError returns the collector as an error, or nil when empty.
func (e *ValidationErrors) AsError() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
