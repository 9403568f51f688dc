package input

import (
	"fmt"
	"strings"
)

// Source identifies the device family an event originated from.
type Source uint8

const (
	// SourceNone indicates an unresolved source.
	SourceNone Source = iota
	// SourceKeyboard is a keyboard key press or release.
	SourceKeyboard
	// SourceMouse is a mouse button press or release.
	SourceMouse
	// SourceGamepad is a gamepad button press/release or trigger axis crossing.
	SourceGamepad
)

// String returns the canonical lowercase name for the source.
func (s Source) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceMouse:
		return "mouse"
	case SourceGamepad:
		return "gamepad"
	default:
		return "none"
	}
}

// sourceAliases maps simplified source names to Source values.
var sourceAliases = map[string]Source{
	"keyboard":   SourceKeyboard,
	"key":        SourceKeyboard,
	"keys":       SourceKeyboard,
	"kbd":        SourceKeyboard,
	"mouse":      SourceMouse,
	"gamepad":    SourceGamepad,
	"controller": SourceGamepad,
	"joystick":   SourceGamepad,
	"pad":        SourceGamepad,
}

// ParseSource resolves a source name (case-insensitive, common aliases
// accepted) to a Source. Returns ErrUnknownSource for anything else.
func ParseSource(name string) (Source, error) {
	token := simplify(name)
	if token == "" {
		return SourceNone, fmt.Errorf("%w: empty name", ErrUnknownSource)
	}
	src, ok := sourceAliases[token]
	if !ok {
		return SourceNone, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return src, nil
}

// InferSource classifies a canonical code purely by its lexical shape.
// It is the exact inverse of the partition the normalizers produce:
// MOUSE-prefixed codes are mouse, Buttons-prefixed codes are gamepad, and
// recognized keyboard names are keyboard. Codes outside the canonical
// vocabulary fail with ErrInvalidInput.
func InferSource(code string) (Source, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return SourceNone, ErrEmptyCode
	}
	switch {
	case strings.HasPrefix(code, "MOUSE"):
		if !isMouseCode(code) {
			return SourceNone, fmt.Errorf("%w: %q", ErrInvalidInput, code)
		}
		return SourceMouse, nil
	case strings.HasPrefix(code, "Buttons"):
		if !isGamepadCode(code) {
			return SourceNone, fmt.Errorf("%w: %q", ErrInvalidInput, code)
		}
		return SourceGamepad, nil
	default:
		if !isKeyboardCode(code) {
			return SourceNone, fmt.Errorf("%w: %q", ErrInvalidInput, code)
		}
		return SourceKeyboard, nil
	}
}

// inferRawSource guesses the device family of a raw, not yet normalized
// token. Used when configured key codes carry no explicit source.
func inferRawSource(raw string) Source {
	token := simplify(raw)
	if token == "" {
		return SourceNone
	}
	if _, ok := mouseAliases[token]; ok || strings.HasPrefix(token, "mouse") {
		return SourceMouse
	}
	if strings.HasPrefix(token, "joystickoffset") ||
		strings.HasPrefix(token, "gamepadbutton") ||
		strings.HasPrefix(token, "buttons") ||
		strings.HasPrefix(token, "axis") ||
		strings.HasPrefix(token, "trigger") {
		return SourceGamepad
	}
	return SourceKeyboard
}

// simplify lowercases a token and strips everything outside [a-z0-9],
// collapsing the many raw spellings of the same key into one lookup form.
func simplify(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
