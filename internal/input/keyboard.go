package input

import (
	"fmt"
	"strconv"
	"strings"
)

// maxFunctionKey caps the accepted function key range.
const maxFunctionKey = 24

// keyboardPunctuation maps literal punctuation characters to canonical
// names. Checked against the raw token before simplification strips them.
var keyboardPunctuation = map[string]string{
	",": "OemComma",
	"~": "OemTilde",
	"[": "OemOpenBrackets",
	"]": "OemCloseBrackets",
	":": "OemSemicolon",
	";": "OemSemicolon",
	"'": "OemQuotes",
	"+": "Add",
	"-": "Subtract",
}

// keyboardAliases maps simplified key names to canonical names.
var keyboardAliases = map[string]string{
	"esc":             "Escape",
	"escape":          "Escape",
	"enter":           "Return",
	"return":          "Return",
	"tab":             "Tab",
	"back":            "Back",
	"backspace":       "Back",
	"lshift":          "LShiftKey",
	"leftshift":       "LShiftKey",
	"shiftl":          "LShiftKey",
	"shiftleft":       "LShiftKey",
	"lshiftkey":       "LShiftKey",
	"rshift":          "RShiftKey",
	"rightshift":      "RShiftKey",
	"shiftr":          "RShiftKey",
	"shiftright":      "RShiftKey",
	"rshiftkey":       "RShiftKey",
	"lalt":            "LMenu",
	"leftalt":         "LMenu",
	"altleft":         "LMenu",
	"altl":            "LMenu",
	"lmenu":           "LMenu",
	"ralt":            "RMenu",
	"rightalt":        "RMenu",
	"altright":        "RMenu",
	"altr":            "RMenu",
	"rmenu":           "RMenu",
	"lcontrol":        "LControlKey",
	"leftcontrol":     "LControlKey",
	"controlleft":     "LControlKey",
	"lctrl":           "LControlKey",
	"ctrll":           "LControlKey",
	"lcontrolkey":     "LControlKey",
	"rcontrol":        "RControlKey",
	"rightcontrol":    "RControlKey",
	"controlright":    "RControlKey",
	"rctrl":           "RControlKey",
	"ctrlr":           "RControlKey",
	"rcontrolkey":     "RControlKey",
	"comma":           "OemComma",
	"oemcomma":        "OemComma",
	"tilde":           "OemTilde",
	"oemtilde":        "OemTilde",
	"openbracket":     "OemOpenBrackets",
	"leftbracket":     "OemOpenBrackets",
	"oemopenbrackets": "OemOpenBrackets",
	"closebracket":    "OemCloseBrackets",
	"rightbracket":    "OemCloseBrackets",
	"oemclosebrackets": "OemCloseBrackets",
	"semicolon":       "OemSemicolon",
	"oemsemicolon":    "OemSemicolon",
	"quote":           "OemQuotes",
	"apostrophe":      "OemQuotes",
	"oemquotes":       "OemQuotes",
	"add":             "Add",
	"plus":            "Add",
	"subtract":        "Subtract",
	"minus":           "Subtract",
}

// keyboardNamed holds every canonical keyboard name that is not generated
// from a pattern, for InferSource's inverse check.
var keyboardNamed = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, canonical := range keyboardAliases {
		set[canonical] = struct{}{}
	}
	for _, canonical := range keyboardPunctuation {
		set[canonical] = struct{}{}
	}
	return set
}()

// NormalizeKeyboard translates a raw keyboard token into its canonical
// code. Accepts case-insensitive key names ("f1", "Esc", "lshift"), single
// characters, punctuation, and "key."/"keys."/"keyboard." prefixed forms.
// Unknown tokens fail with ErrInvalidInput.
func NormalizeKeyboard(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrEmptyCode
	}

	if canonical, ok := keyboardPunctuation[text]; ok {
		return canonical, nil
	}

	lowered := strings.ToLower(text)
	for _, prefix := range []string{"key.", "keys.", "keyboard."} {
		if strings.HasPrefix(lowered, prefix) {
			text = text[len(prefix):]
			break
		}
	}

	// Quoted single characters ('x' or "x") from listener payloads.
	if len(text) == 3 && text[0] == text[2] && (text[0] == '\'' || text[0] == '"') {
		text = text[1:2]
	}

	if canonical, ok := keyboardPunctuation[text]; ok {
		return canonical, nil
	}

	token := simplify(text)
	if token == "" {
		return "", fmt.Errorf("%w: keyboard %q", ErrInvalidInput, raw)
	}

	if canonical, ok := keyboardAliases[token]; ok {
		return canonical, nil
	}

	if n, ok := trailingNumber(token, "f"); ok && n >= 1 && n <= maxFunctionKey {
		return "F" + strconv.Itoa(n), nil
	}
	if n, ok := trailingNumber(token, "numpad"); ok && n <= 9 {
		return "NumPad" + strconv.Itoa(n), nil
	}
	if n, ok := trailingNumber(token, "num"); ok && n <= 9 {
		return "NumPad" + strconv.Itoa(n), nil
	}
	if n, ok := trailingNumber(token, "d"); ok && n <= 9 {
		return "D" + strconv.Itoa(n), nil
	}

	if len(token) == 1 {
		c := token[0]
		if c >= 'a' && c <= 'z' {
			return strings.ToUpper(token), nil
		}
		if c >= '0' && c <= '9' {
			return "D" + token, nil
		}
	}

	return "", fmt.Errorf("%w: keyboard %q", ErrInvalidInput, raw)
}

// isKeyboardCode reports whether code is a canonical keyboard code.
func isKeyboardCode(code string) bool {
	if _, ok := keyboardNamed[code]; ok {
		return true
	}
	if len(code) == 1 && code[0] >= 'A' && code[0] <= 'Z' {
		return true
	}
	if n, ok := trailingNumber(code, "F"); ok {
		return n >= 1 && n <= maxFunctionKey
	}
	if n, ok := trailingNumber(code, "NumPad"); ok {
		return n <= 9 && len(code) == len("NumPad")+1
	}
	if n, ok := trailingNumber(code, "D"); ok {
		return n <= 9 && len(code) == 2
	}
	return false
}

// trailingNumber matches prefix immediately followed by decimal digits and
// returns the parsed number. The second result is false when the token does
// not have that exact shape.
func trailingNumber(token, prefix string) (int, bool) {
	if !strings.HasPrefix(token, prefix) || len(token) == len(prefix) {
		return 0, false
	}
	digits := token[len(prefix):]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
