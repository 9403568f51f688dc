package tracker

import "errors"

// Binding construction errors.
var (
	// ErrMissingSkillID indicates a binding descriptor without an identifier.
	ErrMissingSkillID = errors.New("binding has no skill id")

	// ErrMissingSkillKey indicates a binding descriptor without the required
	// skill key.
	ErrMissingSkillKey = errors.New("binding has no skill key")

	// ErrInvalidKeyCode indicates a configured key code that does not
	// normalize to any canonical input.
	ErrInvalidKeyCode = errors.New("binding key code is not a known input")

	// ErrInvalidTriggerMode indicates an unknown trigger mode name.
	ErrInvalidTriggerMode = errors.New("unknown trigger mode")
)
