package capture

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// namedKeys maps tcell special keys to raw tokens the keyboard normalizer
// accepts.
var namedKeys = map[tcell.Key]string{
	tcell.KeyEscape:     "esc",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
}

// buttonTokens lists the tracked mouse buttons in a fixed order so press
// and release diffs are deterministic.
var buttonTokens = []struct {
	mask  tcell.ButtonMask
	token string
}{
	{tcell.Button1, "left"},
	{tcell.Button2, "right"},
	{tcell.Button3, "middle"},
	{tcell.Button4, "x1"},
	{tcell.Button5, "x2"},
}

// keyToken translates a tcell key event to a raw keyboard token, or ""
// for keys outside the tracked vocabulary.
func keyToken(ev *tcell.EventKey) string {
	key := ev.Key()
	if key == tcell.KeyRune {
		return string(ev.Rune())
	}
	if name, ok := namedKeys[key]; ok {
		return name
	}
	if key >= tcell.KeyF1 && key <= tcell.KeyF64 {
		return "f" + strconv.Itoa(int(key-tcell.KeyF1)+1)
	}
	return ""
}
