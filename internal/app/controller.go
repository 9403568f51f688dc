package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/dshills/skilltrack/internal/config"
	"github.com/dshills/skilltrack/internal/countdown"
	"github.com/dshills/skilltrack/internal/input"
	"github.com/dshills/skilltrack/internal/router"
	"github.com/dshills/skilltrack/internal/settings"
	"github.com/dshills/skilltrack/internal/tracker"
)

// Options configures a Controller.
type Options struct {
	// Config is the validated application configuration.
	Config config.Config
	// Store persists profiles and skill bindings. Required.
	Store *settings.Store
	// Adapters feed input events into the router.
	Adapters []router.Adapter
	// Logger receives lifecycle and error logs. Defaults to NullLogger.
	Logger *Logger
	// Clock overrides the countdown time source, for tests.
	Clock countdown.Clock
}

// Controller owns the tracking runtime: it loads settings into tracker
// bindings, routes adapter input through the engine, starts cooldowns for
// fired skills, and drives countdown updates on a fixed tick.
type Controller struct {
	mu       sync.Mutex
	cfg      config.Config
	store    *settings.Store
	logger   *Logger
	settings settings.Settings
	engine   *tracker.Engine
	router   *router.Router
	service  *countdown.Service

	running  bool
	stopTick chan struct{}
	tickDone chan struct{}
}

// New loads settings and assembles a stopped controller. Malformed skill
// bindings in the settings file fail construction.
func New(opts Options) (*Controller, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("settings store is required")
	}

	c := &Controller{
		cfg:    opts.Config,
		store:  opts.Store,
		logger: opts.Logger,
	}
	if c.logger == nil {
		c.logger = NullLogger
	}

	loaded, err := opts.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	c.settings = loaded

	bindings, err := c.buildBindings(loaded.LastSelectedProfileID)
	if err != nil {
		return nil, err
	}
	c.engine = tracker.NewEngine(bindings...)

	var serviceOpts []countdown.Option
	if opts.Clock != nil {
		serviceOpts = append(serviceOpts, countdown.WithClock(opts.Clock))
	}
	c.service = countdown.NewService(serviceOpts...)

	c.router = router.New(router.Options{
		Engine:      c.engine,
		Adapters:    opts.Adapters,
		OnTriggered: c.handleTriggered,
		OnError: func(err error) {
			c.logger.WithComponent("router").Error("input error: %v", err)
		},
	})
	return c, nil
}

// Service returns the countdown service for subscribing to lifecycle
// events.
func (c *Controller) Service() *countdown.Service { return c.service }

// Engine returns the tracker engine, for metrics and inspection.
func (c *Controller) Engine() *tracker.Engine { return c.engine }

// Settings returns the settings loaded at construction or by the last
// profile switch.
func (c *Controller) Settings() settings.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Running reports whether tracking is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Start resets sequence state, starts the router, and launches the tick
// loop. Starting a running controller is a no-op.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}

	c.engine.ResetAll()
	if err := c.router.Start(); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("start router: %w", err)
	}

	c.running = true
	c.stopTick = make(chan struct{})
	c.tickDone = make(chan struct{})
	go c.runTicker(c.cfg.Tracker.TickInterval.Std(), c.stopTick, c.tickDone)
	c.mu.Unlock()

	c.logger.Info("tracking started")
	return nil
}

// Stop halts the tick loop and the router, clears arming state, and
// removes all active countdowns. Stopping a stopped controller is a
// no-op.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	close(c.stopTick)
	tickDone := c.tickDone
	c.stopTick = nil
	c.tickDone = nil
	c.mu.Unlock()

	<-tickDone
	err := c.router.Stop()
	c.engine.ResetAll()
	for _, active := range c.service.ListActive() {
		c.service.Remove(active.SkillID)
	}

	if err != nil {
		c.logger.WithComponent("router").Error("stop: %v", err)
		return err
	}
	c.logger.Info("tracking stopped")
	return nil
}

// SelectProfile switches the active profile: bindings are rebuilt from
// the profile's skill items, sequence state is reset, and the selection
// is persisted in place.
func (c *Controller) SelectProfile(profileID int) error {
	bindings, err := c.buildBindings(profileID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.settings.LastSelectedProfileID = profileID
	c.mu.Unlock()

	c.router.SetBindings(bindings)
	if err := c.store.UpdateLastSelectedProfile(profileID); err != nil {
		return fmt.Errorf("persist profile selection: %w", err)
	}
	c.logger.Info("profile selected: %d", profileID)
	return nil
}

// buildBindings converts one profile's skill items into tracker bindings
// with the configured trigger mode.
func (c *Controller) buildBindings(profileID int) ([]*tracker.Binding, error) {
	mode := tracker.ModeSequence
	if c.cfg.Tracker.HoldMode {
		mode = tracker.ModeHold
	}

	c.mu.Lock()
	configs := c.settings.Bindings(profileID, mode)
	c.mu.Unlock()

	bindings := make([]*tracker.Binding, 0, len(configs))
	for _, cfg := range configs {
		binding, err := tracker.NewBinding(cfg)
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", profileID, err)
		}
		bindings = append(bindings, binding)
	}
	return bindings, nil
}

// handleTriggered starts or restarts cooldowns for every skill fired by
// one input event. Runs on the router's dispatch worker.
func (c *Controller) handleTriggered(ev input.Event, skillIDs []string) {
	for _, skillID := range skillIDs {
		binding := c.engine.Binding(skillID)
		if binding == nil {
			continue
		}
		if _, err := c.service.Refresh(skillID, binding.Duration()); err != nil {
			c.logger.WithComponent("countdown").Error("refresh %s: %v", skillID, err)
			continue
		}
		c.logger.Debug("skill %s triggered by %s", skillID, ev)
	}
}

// runTicker drives countdown updates until stopped.
func (c *Controller) runTicker(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.service.EmitUpdates()
		}
	}
}
