package input

import (
	"fmt"
	"time"
)

// Event is a normalized input event. Code is always canonical and resolves
// back to Source via InferSource; construction fails instead of producing an
// event with an unresolvable code.
type Event struct {
	// Code is the canonical token, e.g. "F1", "MOUSE2", "Buttons0".
	Code string

	// Source is the device family the event came from.
	Source Source

	// Timestamp is when the event was captured.
	Timestamp time.Time

	// Pressed is true for press events and false for releases. Trigger
	// axis crossings report presses above the adapter's threshold.
	Pressed bool
}

// NewEvent normalizes raw for the given source and returns a stamped event.
func NewEvent(source Source, raw string, pressed bool) (Event, error) {
	code, err := normalizeFor(source, raw)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Code:      code,
		Source:    source,
		Timestamp: time.Now(),
		Pressed:   pressed,
	}, nil
}

// KeyboardEvent builds a press event from a keyboard adapter payload.
func KeyboardEvent(raw string) (Event, error) {
	return NewEvent(SourceKeyboard, raw, true)
}

// MouseEvent builds a press event from a mouse adapter payload.
func MouseEvent(raw string) (Event, error) {
	return NewEvent(SourceMouse, raw, true)
}

// GamepadEvent builds a press event from a gamepad adapter payload.
func GamepadEvent(raw string) (Event, error) {
	return NewEvent(SourceGamepad, raw, true)
}

// Released returns a copy of the event marked as a release.
func (e Event) Released() Event {
	e.Pressed = false
	return e
}

// Matches reports whether the event carries the given canonical code and
// source.
func (e Event) Matches(code string, source Source) bool {
	return e.Source == source && e.Code == code
}

// String returns "source:code" for logs and test failure messages.
func (e Event) String() string {
	state := "press"
	if !e.Pressed {
		state = "release"
	}
	return fmt.Sprintf("%s:%s(%s)", e.Source, e.Code, state)
}

// Canonicalize resolves a raw token with no explicit source, the shape
// configured key codes arrive in. The device family is inferred from the
// token itself, then the matching normalizer runs.
func Canonicalize(raw string) (string, Source, error) {
	source := inferRawSource(raw)
	if source == SourceNone {
		return "", SourceNone, fmt.Errorf("%w: %q", ErrInvalidInput, raw)
	}
	code, err := normalizeFor(source, raw)
	if err != nil {
		return "", SourceNone, err
	}
	return code, source, nil
}

func normalizeFor(source Source, raw string) (string, error) {
	switch source {
	case SourceKeyboard:
		return NormalizeKeyboard(raw)
	case SourceMouse:
		return NormalizeMouse(raw)
	case SourceGamepad:
		return NormalizeGamepad(raw)
	default:
		return "", fmt.Errorf("%w: %v", ErrUnknownSource, source)
	}
}
