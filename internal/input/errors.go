package input

import "errors"

// Normalization errors.
var (
	// ErrInvalidInput indicates a raw token that matches no known input.
	ErrInvalidInput = errors.New("unrecognized input code")

	// ErrEmptyCode indicates an empty or whitespace-only token.
	ErrEmptyCode = errors.New("empty input code")

	// ErrUnknownSource indicates a source name outside the supported set.
	ErrUnknownSource = errors.New("unsupported input source")
)
