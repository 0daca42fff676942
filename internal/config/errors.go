package config

import "fmt"

// ParseError is a project file that could not be read or decoded.
type ParseError struct {
	Path string
	Line int
	Err  error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	return &ParseError{Path: path, Line: line, Err: err}
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<config>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %v", path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error: %s: %v", path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError is a project file field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
