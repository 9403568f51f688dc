// Package countdown owns the lifecycle of active skill cooldown timers.
//
// The Service keys timers by skill id, guarantees at most one active timer
// per id (a refresh replaces the schedule in place), and reports every state
// change to subscribers as UPDATED or REMOVED events. Time never advances on
// its own: the clock is injected and EmitUpdates is the sole method that
// recomputes remaining time, so the whole lifecycle is exercisable without
// sleeping.
package countdown
