package input

import (
	"fmt"
	"strconv"
	"strings"
)

// triggerAxisButtonBase offsets analog trigger axes into a virtual button
// range well above any physical face-button index, so trigger crossings and
// digital buttons occupy disjoint parts of the Buttons namespace.
const triggerAxisButtonBase = 20

// NormalizeGamepad translates a raw gamepad token into Buttons0..ButtonsN.
// Accepted shapes: "GamePad Button 0", "buttons7", "button3",
// "JoystickOffset.Buttons2", bare indices, and trigger axis descriptors
// ("axis4", "trigger5") which land on dedicated virtual button indices.
func NormalizeGamepad(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyCode
	}

	token := simplify(raw)
	if token == "" {
		return "", fmt.Errorf("%w: gamepad %q", ErrInvalidInput, raw)
	}

	token = strings.TrimPrefix(token, "joystickoffset")
	token = strings.TrimPrefix(token, "gamepad")

	if n, ok := trailingNumber(token, "buttons"); ok {
		return buttonsCode(n)
	}
	if n, ok := trailingNumber(token, "button"); ok {
		return buttonsCode(n)
	}
	if n, ok := trailingNumber(token, "axis"); ok {
		return buttonsCode(triggerAxisButtonBase + n)
	}
	if n, ok := trailingNumber(token, "trigger"); ok {
		return buttonsCode(triggerAxisButtonBase + n)
	}
	if index, err := strconv.Atoi(token); err == nil && index >= 0 {
		return buttonsCode(index)
	}

	return "", fmt.Errorf("%w: gamepad %q", ErrInvalidInput, raw)
}

// TriggerAxisCode returns the canonical virtual button code for an analog
// trigger axis index. Capture adapters use it after applying their press
// threshold hysteresis.
func TriggerAxisCode(axis int) (string, error) {
	if axis < 0 {
		return "", fmt.Errorf("%w: trigger axis %d", ErrInvalidInput, axis)
	}
	return buttonsCode(triggerAxisButtonBase + axis)
}

func buttonsCode(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: gamepad button index %d", ErrInvalidInput, index)
	}
	return "Buttons" + strconv.Itoa(index), nil
}

// isGamepadCode reports whether code is a canonical gamepad code.
func isGamepadCode(code string) bool {
	n, ok := trailingNumber(code, "Buttons")
	return ok && n >= 0
}
