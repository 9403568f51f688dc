package countdown

import "time"

// EventType identifies a countdown lifecycle event.
type EventType string

const (
	// EventUpdated reports a running timer's remaining time.
	EventUpdated EventType = "updated"
	// EventRemoved reports a timer leaving the active set.
	EventRemoved EventType = "removed"
)

// Event is an immutable lifecycle notification. Events for a single
// Refresh/Remove/EmitUpdates call are delivered synchronously, in the order
// the underlying state changes occur, before the call returns.
type Event struct {
	// Type is EventUpdated or EventRemoved.
	Type EventType

	// SkillID identifies the cooldown's skill.
	SkillID string

	// Duration is the timer's configured length.
	Duration time.Duration

	// Remaining is the time left; zero for removals.
	Remaining time.Duration

	// Completed distinguishes natural expiry (true) from manual removal
	// (false) on EventRemoved.
	Completed bool
}

// Active is a read-only snapshot of one running timer.
type Active struct {
	SkillID   string
	Duration  time.Duration
	StartedAt time.Time
	EndsAt    time.Time
	Remaining time.Duration
}
