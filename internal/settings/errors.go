package settings

import "errors"

// Errors returned by settings decoding and persistence.
var (
	// ErrMalformedDocument indicates the settings payload is not a JSON object.
	ErrMalformedDocument = errors.New("settings document must be a JSON object")

	// ErrMissingSkillKey indicates a skill item with an empty skill key.
	ErrMissingSkillKey = errors.New("skill item has no usable skill key")

	// ErrInvalidKeyCode indicates a configured key code no normalizer accepts.
	ErrInvalidKeyCode = errors.New("unresolvable key code")

	// ErrInvalidDuration indicates a negative skill duration.
	ErrInvalidDuration = errors.New("skill duration must be >= 0")
)
