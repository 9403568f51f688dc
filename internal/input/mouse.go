package input

import (
	"fmt"
	"strconv"
	"strings"
)

// mouseIndexCodes maps zero-based button indices to canonical codes.
var mouseIndexCodes = map[int]string{
	0: "MOUSE1",
	1: "MOUSE2",
	2: "MOUSE3",
	3: "MOUSEX1",
	4: "MOUSEX2",
}

// mouseAliases maps simplified mouse tokens to canonical codes. This is a
// closed set: anything outside it (scroll wheels, drags) is rejected.
var mouseAliases = map[string]string{
	"mouse1":       "MOUSE1",
	"left":         "MOUSE1",
	"lbutton":      "MOUSE1",
	"buttonleft":   "MOUSE1",
	"button1":      "MOUSE1",
	"mouse2":       "MOUSE2",
	"right":        "MOUSE2",
	"rbutton":      "MOUSE2",
	"buttonright":  "MOUSE2",
	"button2":      "MOUSE2",
	"mouse3":       "MOUSE3",
	"middle":       "MOUSE3",
	"mbutton":      "MOUSE3",
	"buttonmiddle": "MOUSE3",
	"button3":      "MOUSE3",
	"mousex1":      "MOUSEX1",
	"x1":           "MOUSEX1",
	"xbutton1":     "MOUSEX1",
	"buttonx1":     "MOUSEX1",
	"button4":      "MOUSEX1",
	"mousex2":      "MOUSEX2",
	"x2":           "MOUSEX2",
	"xbutton2":     "MOUSEX2",
	"buttonx2":     "MOUSEX2",
	"button5":      "MOUSEX2",
}

// NormalizeMouse translates a raw mouse token ("button.left", "right",
// "mouse2", a zero-based index) into MOUSE1..MOUSE3 / MOUSEX1 / MOUSEX2.
// Tokens outside the closed button set fail with ErrInvalidInput — scroll
// and motion events are never coerced into buttons.
func NormalizeMouse(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyCode
	}

	token := simplify(raw)
	if token == "" {
		return "", fmt.Errorf("%w: mouse %q", ErrInvalidInput, raw)
	}

	if canonical, ok := mouseAliases[token]; ok {
		return canonical, nil
	}

	if index, err := strconv.Atoi(token); err == nil {
		if canonical, ok := mouseIndexCodes[index]; ok {
			return canonical, nil
		}
		return "", fmt.Errorf("%w: mouse %q", ErrInvalidInput, raw)
	}

	// "mouseN" with a one-based index beyond the alias table.
	if n, ok := trailingNumber(token, "mouse"); ok {
		if canonical, exists := mouseIndexCodes[n-1]; exists {
			return canonical, nil
		}
	}

	return "", fmt.Errorf("%w: mouse %q", ErrInvalidInput, raw)
}

// isMouseCode reports whether code is a canonical mouse code.
func isMouseCode(code string) bool {
	switch code {
	case "MOUSE1", "MOUSE2", "MOUSE3", "MOUSEX1", "MOUSEX2":
		return true
	}
	return false
}
