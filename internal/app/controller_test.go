package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dshills/skilltrack/internal/config"
	"github.com/dshills/skilltrack/internal/countdown"
	"github.com/dshills/skilltrack/internal/input"
	"github.com/dshills/skilltrack/internal/router"
	"github.com/dshills/skilltrack/internal/settings"
)

// fakeAdapter lets tests push events into the controller's router as if
// they came from a device.
type fakeAdapter struct {
	mu      sync.Mutex
	emit    func(input.Event)
	running bool
}

func (a *fakeAdapter) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = true
	return nil
}

func (a *fakeAdapter) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = false
	return nil
}

func (a *fakeAdapter) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

func (a *fakeAdapter) SetEventCallback(fn func(input.Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.emit = fn
}

func (a *fakeAdapter) press(t *testing.T, source input.Source, raw string) {
	t.Helper()
	ev, err := input.NewEvent(source, raw, true)
	if err != nil {
		t.Fatalf("NewEvent(%q) error = %v", raw, err)
	}
	a.mu.Lock()
	fn := a.emit
	a.mu.Unlock()
	if fn == nil {
		t.Fatal("adapter has no event callback")
	}
	fn(ev)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

const testSettingsDoc = `{
	"last_selected_profile_id": 0,
	"profiles": [
		{"id": 0, "name": "Default"},
		{"id": 1, "name": "Alt"}
	],
	"skill_items": [
		{"id": 7, "profile_id": 0, "name": "Frozen Orb", "time_length": 5.0,
		 "is_enabled": true, "select_key": "F8", "skill_key": "MOUSE2"},
		{"id": 8, "profile_id": 1, "name": "Nova", "time_length": 3.0,
		 "is_enabled": true, "skill_key": "F1"}
	]
}`

func writeSettings(t *testing.T, doc string) *settings.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return settings.NewStore(path)
}

func newTestController(t *testing.T) (*Controller, *fakeAdapter, *fakeClock) {
	t.Helper()
	adapter := &fakeAdapter{}
	clock := &fakeClock{now: time.Unix(1000, 0)}

	cfg := config.Default()
	// Keep the real ticker out of the way; tests drive EmitUpdates.
	cfg.Tracker.TickInterval = config.Duration(time.Hour)

	controller, err := New(Options{
		Config:   cfg,
		Store:    writeSettings(t, testSettingsDoc),
		Adapters: []router.Adapter{adapter},
		Clock:    clock.Now,
	})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	t.Cleanup(func() { _ = controller.Stop() })
	return controller, adapter, clock
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestControllerTriggerStartsCooldown(t *testing.T) {
	controller, adapter, clock := newTestController(t)
	service := controller.Service()

	if err := controller.Start(); err != nil {
		t.Fatalf("Start error = %v", err)
	}

	adapter.press(t, input.SourceKeyboard, "f8")
	adapter.press(t, input.SourceMouse, "right")

	waitFor(t, func() bool { return service.ActiveCount() == 1 })

	active, ok := service.Active("7")
	if !ok {
		t.Fatal("no active countdown for skill 7")
	}
	if active.Duration != 5*time.Second {
		t.Errorf("Duration = %v, want 5s from settings", active.Duration)
	}

	clock.Advance(5 * time.Second)
	events := service.EmitUpdates()
	if len(events) != 1 || events[0].Type != countdown.EventRemoved || !events[0].Completed {
		t.Errorf("EmitUpdates = %+v, want completed removal", events)
	}
}

func TestControllerSkillKeyAloneDoesNotFireSequenceBinding(t *testing.T) {
	controller, adapter, _ := newTestController(t)
	service := controller.Service()

	if err := controller.Start(); err != nil {
		t.Fatalf("Start error = %v", err)
	}

	adapter.press(t, input.SourceMouse, "right")
	if err := controller.Stop(); err != nil {
		t.Fatalf("Stop error = %v", err)
	}

	if got := service.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount = %d, want 0 without arming", got)
	}
}

func TestControllerStopClearsCooldownsAndArming(t *testing.T) {
	controller, adapter, _ := newTestController(t)
	service := controller.Service()

	if err := controller.Start(); err != nil {
		t.Fatalf("Start error = %v", err)
	}
	adapter.press(t, input.SourceKeyboard, "f8")
	adapter.press(t, input.SourceMouse, "right")
	waitFor(t, func() bool { return service.ActiveCount() == 1 })

	if err := controller.Stop(); err != nil {
		t.Fatalf("Stop error = %v", err)
	}
	if controller.Running() {
		t.Error("controller still running after Stop")
	}
	if got := service.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount = %d, want 0 after Stop", got)
	}
	if b := controller.Engine().Binding("7"); b == nil || b.Armed() {
		t.Error("binding armed after Stop")
	}
}

func TestControllerStartStopIdempotent(t *testing.T) {
	controller, _, _ := newTestController(t)

	if err := controller.Start(); err != nil {
		t.Fatalf("Start error = %v", err)
	}
	if err := controller.Start(); err != nil {
		t.Fatalf("second Start error = %v", err)
	}
	if err := controller.Stop(); err != nil {
		t.Fatalf("Stop error = %v", err)
	}
	if err := controller.Stop(); err != nil {
		t.Fatalf("second Stop error = %v", err)
	}
}

func TestControllerSelectProfileSwapsBindingsAndPersists(t *testing.T) {
	controller, adapter, _ := newTestController(t)
	service := controller.Service()

	if err := controller.Start(); err != nil {
		t.Fatalf("Start error = %v", err)
	}
	if err := controller.SelectProfile(1); err != nil {
		t.Fatalf("SelectProfile error = %v", err)
	}

	// Profile 1 has the skill-only F1 binding; the old MOUSE2 rule is gone.
	adapter.press(t, input.SourceKeyboard, "f8")
	adapter.press(t, input.SourceMouse, "right")
	adapter.press(t, input.SourceKeyboard, "f1")

	waitFor(t, func() bool { return service.ActiveCount() == 1 })
	if _, ok := service.Active("8"); !ok {
		t.Error("expected countdown for profile 1 skill 8")
	}
	if _, ok := service.Active("7"); ok {
		t.Error("old profile's binding still firing after switch")
	}

	if err := controller.Stop(); err != nil {
		t.Fatalf("Stop error = %v", err)
	}

	// Selection is persisted.
	reloaded, err := controller.store.Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if reloaded.LastSelectedProfileID != 1 {
		t.Errorf("persisted LastSelectedProfileID = %d, want 1", reloaded.LastSelectedProfileID)
	}
}

func TestControllerRejectsMalformedSettings(t *testing.T) {
	store := writeSettings(t, `{"skill_items": [{"id": 1, "skill_key": "scroll-wheel"}]}`)

	_, err := New(Options{Config: config.Default(), Store: store})
	if !errors.Is(err, settings.ErrInvalidKeyCode) {
		t.Fatalf("New error = %v, want ErrInvalidKeyCode", err)
	}
}

func TestControllerRequiresStore(t *testing.T) {
	if _, err := New(Options{Config: config.Default()}); err == nil {
		t.Fatal("New without store succeeded")
	}
}
