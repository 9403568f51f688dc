package capture

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/skilltrack/internal/input"
)

// Terminal is a router adapter backed by a tcell screen. Key events emit
// keyboard presses; mouse button transitions emit presses and releases
// derived from the button mask diff.
type Terminal struct {
	mu        sync.Mutex
	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen
	emit      func(input.Event)
	running   bool
	done      chan struct{}
	buttons   tcell.ButtonMask
}

// NewTerminal creates an adapter that opens the process's terminal on
// Start.
func NewTerminal() *Terminal {
	return &Terminal{newScreen: tcell.NewScreen}
}

// NewTerminalWithScreen creates an adapter around an existing screen,
// usually a tcell simulation screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{newScreen: func() (tcell.Screen, error) { return screen, nil }}
}

// Running reports whether the event loop is active.
func (t *Terminal) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// SetEventCallback installs the router's event sink.
func (t *Terminal) SetEventCallback(fn func(input.Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emit = fn
}

// Start initializes the screen and launches the event loop. Starting a
// running adapter is a no-op.
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return nil
	}

	screen, err := t.newScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	screen.EnableMouse()

	t.screen = screen
	t.buttons = 0
	t.done = make(chan struct{})
	t.running = true
	go t.runLoop(screen, t.done)
	return nil
}

// Stop interrupts the event loop, waits for it to exit, and releases the
// screen. Stopping a stopped adapter is a no-op.
func (t *Terminal) Stop() error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	t.running = false
	screen, done := t.screen, t.done
	t.screen = nil
	t.done = nil
	t.mu.Unlock()

	_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	<-done
	screen.Fini()
	return nil
}

func (t *Terminal) runLoop(screen tcell.Screen, done chan<- struct{}) {
	defer close(done)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			return
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventMouse:
			t.handleMouse(ev)
		}
	}
}

// handleKey emits one keyboard press. Terminals do not report releases.
func (t *Terminal) handleKey(ev *tcell.EventKey) {
	token := keyToken(ev)
	if token == "" {
		return
	}
	t.send(input.SourceKeyboard, token, true)
}

// handleMouse diffs the button mask against the previous state and emits
// a press for each newly held button and a release for each freed one.
func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	t.mu.Lock()
	prev := t.buttons
	cur := ev.Buttons()
	t.buttons = cur
	t.mu.Unlock()

	for _, button := range buttonTokens {
		was := prev&button.mask != 0
		is := cur&button.mask != 0
		if was == is {
			continue
		}
		t.send(input.SourceMouse, button.token, is)
	}
}

// send normalizes and delivers one event. Tokens the normalizer rejects
// are outside the tracked vocabulary and are dropped.
func (t *Terminal) send(source input.Source, token string, pressed bool) {
	t.mu.Lock()
	emit := t.emit
	t.mu.Unlock()
	if emit == nil {
		return
	}
	ev, err := input.NewEvent(source, token, pressed)
	if err != nil {
		return
	}
	emit(ev)
}
