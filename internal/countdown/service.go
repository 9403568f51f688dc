package countdown

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidDuration indicates a negative duration passed to Refresh.
var ErrInvalidDuration = errors.New("duration must be >= 0")

// Clock supplies the current instant. Injected so tests advance time with
// plain function calls instead of sleeping.
type Clock func() time.Time

// Subscription identifies one registered event callback.
type Subscription struct {
	id uuid.UUID
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects a time source. The default is time.Now.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

type timer struct {
	skillID   string
	duration  time.Duration
	startedAt time.Time
	endsAt    time.Time
}

func (t *timer) refresh(duration time.Duration, now time.Time) {
	t.duration = duration
	t.startedAt = now
	t.endsAt = now.Add(duration)
}

func (t *timer) remaining(now time.Time) time.Duration {
	left := t.endsAt.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

type subscriber struct {
	id uuid.UUID
	fn func(Event)
}

// Service is the authoritative scheduler for all active cooldown timers.
// Timers are keyed by skill id; refreshing an existing id replaces its
// schedule in place so the active set never holds duplicates.
type Service struct {
	mu          sync.Mutex
	clock       Clock
	timers      map[string]*timer
	order       []string // creation order, drives emission order
	subscribers []subscriber
}

// NewService creates a service with the given options.
func NewService(opts ...Option) *Service {
	s := &Service{
		clock:  time.Now,
		timers: make(map[string]*timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a callback invoked synchronously for every emitted
// event, in registration order, until unsubscribed. A panicking callback is
// recovered and does not prevent delivery to the rest.
func (s *Service) Subscribe(fn func(Event)) Subscription {
	sub := Subscription{id: uuid.New()}
	if fn == nil {
		return sub
	}
	s.mu.Lock()
	s.subscribers = append(s.subscribers, subscriber{id: sub.id, fn: fn})
	s.mu.Unlock()
	return sub
}

// Unsubscribe detaches a previously registered callback.
func (s *Service) Unsubscribe(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.subscribers {
		if existing.id == sub.id {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// Refresh starts or restarts the countdown for a skill id.
//
// A negative duration fails with ErrInvalidDuration and changes nothing.
// A zero duration completes instantly: the timer (if any) is cleared and a
// completed removal is emitted. Otherwise the timer is created or refreshed
// in place and an UPDATED event with the full duration is emitted.
func (s *Service) Refresh(skillID string, duration time.Duration) (Event, error) {
	if duration < 0 {
		return Event{}, fmt.Errorf("%w: %v for skill %q", ErrInvalidDuration, duration, skillID)
	}

	s.mu.Lock()
	now := s.clock()

	if duration == 0 {
		s.deleteLocked(skillID)
		event := Event{
			Type:      EventRemoved,
			SkillID:   skillID,
			Completed: true,
		}
		subs := s.subscribersLocked()
		s.mu.Unlock()
		deliver(subs, event)
		return event, nil
	}

	existing, ok := s.timers[skillID]
	if ok {
		existing.refresh(duration, now)
	} else {
		created := &timer{skillID: skillID}
		created.refresh(duration, now)
		s.timers[skillID] = created
		s.order = append(s.order, skillID)
	}

	event := Event{
		Type:      EventUpdated,
		SkillID:   skillID,
		Duration:  duration,
		Remaining: duration,
	}
	subs := s.subscribersLocked()
	s.mu.Unlock()
	deliver(subs, event)
	return event, nil
}

// Remove deletes the active timer for a skill id and emits a non-completed
// removal. Removing an id with no active timer is a silent no-op.
func (s *Service) Remove(skillID string) (Event, bool) {
	s.mu.Lock()
	existing, ok := s.timers[skillID]
	if !ok {
		s.mu.Unlock()
		return Event{}, false
	}
	now := s.clock()
	s.deleteLocked(skillID)
	event := Event{
		Type:      EventRemoved,
		SkillID:   skillID,
		Duration:  existing.duration,
		Remaining: existing.remaining(now),
	}
	subs := s.subscribersLocked()
	s.mu.Unlock()
	deliver(subs, event)
	return event, true
}

// EmitUpdates recomputes remaining time for every active timer against the
// injected clock. Running timers emit UPDATED; expired timers emit a
// completed REMOVED and leave the active set. Emission follows timer
// creation order. This is the sole method that advances countdown state.
func (s *Service) EmitUpdates() []Event {
	s.mu.Lock()
	now := s.clock()

	events := make([]Event, 0, len(s.order))
	for _, skillID := range append([]string(nil), s.order...) {
		state, ok := s.timers[skillID]
		if !ok {
			continue
		}
		left := state.remaining(now)
		if left <= 0 {
			s.deleteLocked(skillID)
			events = append(events, Event{
				Type:      EventRemoved,
				SkillID:   skillID,
				Duration:  state.duration,
				Completed: true,
			})
			continue
		}
		events = append(events, Event{
			Type:      EventUpdated,
			SkillID:   skillID,
			Duration:  state.duration,
			Remaining: left,
		})
	}

	subs := s.subscribersLocked()
	s.mu.Unlock()

	for _, event := range events {
		deliver(subs, event)
	}
	return events
}

// ActiveCount returns the number of distinct skill ids with a live timer.
func (s *Service) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Active returns the snapshot for one skill id.
func (s *Service) Active(skillID string) (Active, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.timers[skillID]
	if !ok {
		return Active{}, false
	}
	return s.snapshotLocked(state, s.clock()), true
}

// ListActive returns snapshots for all active timers, sorted by skill id.
func (s *Service) ListActive() []Active {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	out := make([]Active, 0, len(s.timers))
	for _, state := range s.timers {
		out = append(out, s.snapshotLocked(state, now))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillID < out[j].SkillID })
	return out
}

func (s *Service) snapshotLocked(state *timer, now time.Time) Active {
	return Active{
		SkillID:   state.skillID,
		Duration:  state.duration,
		StartedAt: state.startedAt,
		EndsAt:    state.endsAt,
		Remaining: state.remaining(now),
	}
}

func (s *Service) deleteLocked(skillID string) {
	if _, ok := s.timers[skillID]; !ok {
		return
	}
	delete(s.timers, skillID)
	for i, id := range s.order {
		if id == skillID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *Service) subscribersLocked() []subscriber {
	return append([]subscriber(nil), s.subscribers...)
}

// deliver invokes each callback outside the service lock, isolating panics
// so one failing subscriber cannot block the rest.
func deliver(subs []subscriber, event Event) {
	for _, sub := range subs {
		func() {
			defer func() { _ = recover() }()
			sub.fn(event)
		}()
	}
}
