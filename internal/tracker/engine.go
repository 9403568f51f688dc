package tracker

import (
	"sync"

	"github.com/dshills/skilltrack/internal/input"
)

// Engine owns the ordered skill binding collection and routes normalized
// events through each binding's state machine.
type Engine struct {
	mu       sync.Mutex
	bindings []*Binding
	metrics  *Metrics
}

// NewEngine creates an engine with the given bindings in configured order.
func NewEngine(bindings ...*Binding) *Engine {
	e := &Engine{metrics: NewMetrics()}
	e.SetBindings(bindings)
	return e
}

// SetBindings replaces the binding collection wholesale, as happens on
// profile activation. All prior arming state is discarded with the old
// collection; the new bindings start idle.
func (e *Engine) SetBindings(bindings []*Binding) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.bindings = make([]*Binding, 0, len(bindings))
	for _, b := range bindings {
		if b == nil {
			continue
		}
		b.ResetKeys()
		e.bindings = append(e.bindings, b)
	}
}

// Bindings returns the collection in configured order. The slice is a copy;
// binding state remains owned by the engine.
func (e *Engine) Bindings() []*Binding {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*Binding, len(e.bindings))
	copy(out, e.bindings)
	return out
}

// Binding returns the binding for a skill id, or nil.
func (e *Engine) Binding(skillID string) *Binding {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, b := range e.bindings {
		if b.skillID == skillID {
			return b
		}
	}
	return nil
}

// Dispatch routes one event and returns the skill ids of every binding that
// fired, in configured order. Each binding is evaluated independently; a
// match on one never short-circuits the rest. Bindings whose keys do not
// match the event are untouched.
func (e *Engine) Dispatch(ev input.Event) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var triggered []string
	matched := false
	for _, b := range e.bindings {
		if !b.matchesEvent(ev) {
			continue
		}
		matched = true
		if b.HandleEvent(ev) {
			triggered = append(triggered, b.skillID)
			e.metrics.recordTrigger(b.skillID)
		}
	}
	e.metrics.recordDispatch(matched)
	return triggered
}

// ResetAll forces every binding back to idle, breaking any in-progress
// select sequences.
func (e *Engine) ResetAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, b := range e.bindings {
		b.ResetKeys()
	}
}

// Metrics returns a snapshot of dispatch statistics.
func (e *Engine) Metrics() MetricsSnapshot {
	return e.metrics.Snapshot()
}
