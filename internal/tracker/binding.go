package tracker

import (
	"fmt"
	"time"

	"github.com/dshills/skilltrack/internal/input"
)

// TriggerMode selects how a binding's select key participates in matching.
type TriggerMode uint8

const (
	// ModeSequence is the one-shot arm-then-fire machine: a select key
	// press arms the binding, the next skill key press fires it once and
	// returns it to idle.
	ModeSequence TriggerMode = iota

	// ModeHold treats the select key as a held modifier: the skill key
	// fires whenever it is pressed while the select key is down.
	ModeHold
)

// String returns the configuration name of the mode.
func (m TriggerMode) String() string {
	if m == ModeHold {
		return "hold"
	}
	return "sequence"
}

// ParseTriggerMode resolves a configuration mode name. The empty string
// maps to ModeSequence.
func ParseTriggerMode(name string) (TriggerMode, error) {
	switch name {
	case "", "sequence":
		return ModeSequence, nil
	case "hold":
		return ModeHold, nil
	default:
		return ModeSequence, fmt.Errorf("%w: %q", ErrInvalidTriggerMode, name)
	}
}

// BindingConfig describes one trackable skill as loaded from settings.
// Key codes may be raw ("GamePad Button 0") or already canonical ("MOUSE2");
// they are canonicalized during construction.
type BindingConfig struct {
	SkillID   string
	SelectKey string // optional; empty means skill-only
	SkillKey  string // required
	Enabled   bool
	Mode      TriggerMode
	Duration  time.Duration // cooldown started when the binding fires
}

// Binding is one configured trigger rule plus its private arming state.
// It is owned exclusively by the Engine's collection; state changes only
// through HandleEvent, ResetKeys, and SetEnabled.
type Binding struct {
	skillID      string
	selectKey    string
	selectSource input.Source
	skillKey     string
	skillSource  input.Source
	mode         TriggerMode
	duration     time.Duration
	enabled      bool
	armed        bool
}

// NewBinding validates and canonicalizes a descriptor.
func NewBinding(cfg BindingConfig) (*Binding, error) {
	if cfg.SkillID == "" {
		return nil, ErrMissingSkillID
	}
	if cfg.SkillKey == "" {
		return nil, fmt.Errorf("%w: skill %q", ErrMissingSkillKey, cfg.SkillID)
	}

	skillKey, skillSource, err := input.Canonicalize(cfg.SkillKey)
	if err != nil {
		return nil, fmt.Errorf("%w: skill %q key %q: %v",
			ErrInvalidKeyCode, cfg.SkillID, cfg.SkillKey, err)
	}

	binding := &Binding{
		skillID:     cfg.SkillID,
		skillKey:    skillKey,
		skillSource: skillSource,
		mode:        cfg.Mode,
		duration:    cfg.Duration,
		enabled:     cfg.Enabled,
	}

	if cfg.SelectKey != "" {
		selectKey, selectSource, err := input.Canonicalize(cfg.SelectKey)
		if err != nil {
			return nil, fmt.Errorf("%w: skill %q select key %q: %v",
				ErrInvalidKeyCode, cfg.SkillID, cfg.SelectKey, err)
		}
		binding.selectKey = selectKey
		binding.selectSource = selectSource
	}

	return binding, nil
}

// SkillID returns the opaque skill identifier.
func (b *Binding) SkillID() string { return b.skillID }

// SkillKey returns the canonical skill key code.
func (b *Binding) SkillKey() string { return b.skillKey }

// SelectKey returns the canonical select key code, or "" for skill-only
// bindings.
func (b *Binding) SelectKey() string { return b.selectKey }

// Mode returns the binding's trigger mode.
func (b *Binding) Mode() TriggerMode { return b.mode }

// Duration returns the configured cooldown length.
func (b *Binding) Duration() time.Duration { return b.duration }

// Enabled reports whether the binding participates in matching.
func (b *Binding) Enabled() bool { return b.enabled }

// Armed reports whether a sequence binding is waiting for its skill key,
// or a hold binding currently has its select key down.
func (b *Binding) Armed() bool { return b.armed }

// SetEnabled toggles the binding. Disabling clears arming state so a later
// re-enable cannot fire from a stale arm.
func (b *Binding) SetEnabled(enabled bool) {
	if b.enabled && !enabled {
		b.armed = false
	}
	b.enabled = enabled
}

// ResetKeys unconditionally returns the binding to idle. The engine calls
// it whenever sequence continuity must be broken (profile switch, stop).
func (b *Binding) ResetKeys() {
	b.armed = false
}

// matchesEvent reports whether the event's code and source line up with one
// of the binding's configured keys. Events for other keys are never routed
// to this binding at all.
func (b *Binding) matchesEvent(ev input.Event) bool {
	return b.matchesSkill(ev) || b.matchesSelect(ev)
}

func (b *Binding) matchesSkill(ev input.Event) bool {
	return ev.Matches(b.skillKey, b.skillSource)
}

func (b *Binding) matchesSelect(ev input.Event) bool {
	return b.selectKey != "" && ev.Matches(b.selectKey, b.selectSource)
}

// HandleEvent advances the state machine with one matching event and
// reports whether the skill fired. Disabled bindings never transition.
func (b *Binding) HandleEvent(ev input.Event) bool {
	if !b.enabled {
		return false
	}
	if b.mode == ModeHold {
		return b.handleHold(ev)
	}
	return b.handleSequence(ev)
}

func (b *Binding) handleSequence(ev input.Event) bool {
	// Sequence state advances on presses only.
	if !ev.Pressed {
		return false
	}
	if b.selectKey == "" {
		// Skill-only: every matching press is an immediate trigger.
		return b.matchesSkill(ev)
	}
	if b.armed && b.matchesSkill(ev) {
		b.armed = false
		return true
	}
	if b.matchesSelect(ev) {
		b.armed = true
	}
	return false
}

func (b *Binding) handleHold(ev input.Event) bool {
	if !ev.Pressed {
		if b.matchesSelect(ev) {
			b.armed = false
		}
		return false
	}
	if b.matchesSkill(ev) && (b.selectKey == "" || b.armed) {
		return true
	}
	if b.matchesSelect(ev) {
		b.armed = true
	}
	return false
}
