package tracker

import "sync"

// Metrics collects dispatch statistics for the engine.
type Metrics struct {
	mu         sync.Mutex
	dispatches uint64
	matched    uint64
	triggers   uint64
	triggersBy map[string]uint64
}

// MetricsSnapshot is a point-in-time copy of engine statistics.
type MetricsSnapshot struct {
	// Dispatches counts every event routed through the engine.
	Dispatches uint64
	// Matched counts events that reached at least one binding.
	Matched uint64
	// Triggers counts binding firings across all skills.
	Triggers uint64
	// TriggersBySkill counts firings per skill id.
	TriggersBySkill map[string]uint64
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{triggersBy: make(map[string]uint64)}
}

func (m *Metrics) recordDispatch(matched bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatches++
	if matched {
		m.matched++
	}
}

func (m *Metrics) recordTrigger(skillID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggers++
	m.triggersBy[skillID]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	by := make(map[string]uint64, len(m.triggersBy))
	for id, n := range m.triggersBy {
		by[id] = n
	}
	return MetricsSnapshot{
		Dispatches:      m.dispatches,
		Matched:         m.matched,
		Triggers:        m.triggers,
		TriggersBySkill: by,
	}
}
