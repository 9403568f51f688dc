package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration loading.
var (
	// ErrInvalidInterval indicates a non-positive tick interval.
	ErrInvalidInterval = errors.New("tick interval must be > 0")

	// ErrInvalidLogLevel indicates an unrecognized log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// ParseError reports a configuration file that exists but cannot be parsed.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Err is the underlying decode error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
