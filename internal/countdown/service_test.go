package countdown

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestService() (*Service, *fakeClock) {
	clock := newFakeClock()
	return NewService(WithClock(clock.Now)), clock
}

func TestRefreshStartsTimerAndEmitsUpdated(t *testing.T) {
	service, _ := newTestService()

	event, err := service.Refresh("orb", 5*time.Second)
	if err != nil {
		t.Fatalf("Refresh error = %v", err)
	}
	if event.Type != EventUpdated {
		t.Errorf("Type = %v, want updated", event.Type)
	}
	if event.Remaining != 5*time.Second {
		t.Errorf("Remaining = %v, want 5s", event.Remaining)
	}
	if service.ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, want 1", service.ActiveCount())
	}
}

func TestRefreshExistingTimerReplacesInPlace(t *testing.T) {
	service, clock := newTestService()

	if _, err := service.Refresh("orb", 5*time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	clock.Advance(2 * time.Second)
	mid := service.EmitUpdates()
	if len(mid) != 1 || mid[0].Remaining != 3*time.Second {
		t.Fatalf("EmitUpdates = %+v, want one UPDATED with 3s remaining", mid)
	}

	refreshed, err := service.Refresh("orb", 5*time.Second)
	if err != nil {
		t.Fatalf("Refresh error = %v", err)
	}
	if refreshed.Remaining != 5*time.Second {
		t.Errorf("refreshed Remaining = %v, want 5s (reset, not accumulated)", refreshed.Remaining)
	}
	if service.ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, want 1 after re-refresh", service.ActiveCount())
	}

	clock.Advance(time.Second)
	post := service.EmitUpdates()
	if len(post) != 1 || post[0].Type != EventUpdated || post[0].Remaining != 4*time.Second {
		t.Errorf("EmitUpdates after refresh = %+v, want UPDATED with 4s", post)
	}
}

func TestCompletionEmitsRemovalAndClearsTimer(t *testing.T) {
	service, clock := newTestService()
	if _, err := service.Refresh("glacier", 2*time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	clock.Advance(time.Second)
	events := service.EmitUpdates()
	if len(events) != 1 || events[0].Type != EventUpdated || events[0].Remaining != time.Second {
		t.Fatalf("EmitUpdates = %+v, want UPDATED with 1s", events)
	}

	clock.Advance(time.Second)
	events = service.EmitUpdates()
	if len(events) != 1 {
		t.Fatalf("EmitUpdates = %+v, want one event", events)
	}
	if events[0].Type != EventRemoved || !events[0].Completed {
		t.Errorf("completion event = %+v, want REMOVED completed", events[0])
	}
	if events[0].Remaining != 0 {
		t.Errorf("completion Remaining = %v, want 0", events[0].Remaining)
	}
	if service.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", service.ActiveCount())
	}
	if _, ok := service.Active("glacier"); ok {
		t.Error("Active(glacier) still present after completion")
	}
}

func TestManualRemoveEmitsNonCompletedRemoval(t *testing.T) {
	service, clock := newTestService()
	if _, err := service.Refresh("orb", 6*time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}
	clock.Advance(time.Second)

	event, ok := service.Remove("orb")
	if !ok {
		t.Fatal("Remove returned ok = false for an active timer")
	}
	if event.Type != EventRemoved || event.Completed {
		t.Errorf("Remove event = %+v, want REMOVED not completed", event)
	}
	if event.Remaining != 5*time.Second {
		t.Errorf("Remove Remaining = %v, want 5s", event.Remaining)
	}
	if service.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", service.ActiveCount())
	}
}

func TestRemoveUnknownIDIsSilentNoOp(t *testing.T) {
	service, _ := newTestService()

	var received []Event
	service.Subscribe(func(e Event) { received = append(received, e) })

	if _, ok := service.Remove("missing"); ok {
		t.Error("Remove(missing) returned ok = true")
	}
	if len(received) != 0 {
		t.Errorf("Remove(missing) emitted %d events, want 0", len(received))
	}
}

func TestZeroDurationCompletesInstantly(t *testing.T) {
	service, _ := newTestService()
	if _, err := service.Refresh("orb", 4*time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	event, err := service.Refresh("orb", 0)
	if err != nil {
		t.Fatalf("Refresh(0) error = %v", err)
	}
	if event.Type != EventRemoved || !event.Completed {
		t.Errorf("Refresh(0) event = %+v, want REMOVED completed", event)
	}
	if service.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0 after zero-duration refresh", service.ActiveCount())
	}
}

func TestNegativeDurationRejectedWithoutStateChange(t *testing.T) {
	service, clock := newTestService()
	if _, err := service.Refresh("orb", 5*time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}
	clock.Advance(time.Second)

	if _, err := service.Refresh("orb", -time.Second); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("Refresh(-1s) error = %v, want ErrInvalidDuration", err)
	}

	// Prior timer unchanged.
	active, ok := service.Active("orb")
	if !ok {
		t.Fatal("timer removed by failed refresh")
	}
	if active.Remaining != 4*time.Second {
		t.Errorf("Remaining = %v, want 4s (untouched)", active.Remaining)
	}
	if service.ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, want 1", service.ActiveCount())
	}
}

func TestEmitUpdatesMixesCompletionAndUpdateInOneTick(t *testing.T) {
	service, clock := newTestService()
	if _, err := service.Refresh("short", time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}
	if _, err := service.Refresh("long", 3*time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	clock.Advance(1500 * time.Millisecond)
	events := service.EmitUpdates()
	if len(events) != 2 {
		t.Fatalf("EmitUpdates = %+v, want 2 events", events)
	}

	// Creation order: short first, then long.
	if events[0].SkillID != "short" || events[0].Type != EventRemoved || !events[0].Completed {
		t.Errorf("events[0] = %+v, want short REMOVED completed", events[0])
	}
	if events[1].SkillID != "long" || events[1].Type != EventUpdated || events[1].Remaining != 1500*time.Millisecond {
		t.Errorf("events[1] = %+v, want long UPDATED 1.5s", events[1])
	}
	if ids := activeIDs(service); len(ids) != 1 || ids[0] != "long" {
		t.Errorf("active ids = %v, want [long]", ids)
	}
}

func TestSubscribersReceiveEventsInRegistrationOrder(t *testing.T) {
	service, clock := newTestService()

	var order []string
	service.Subscribe(func(e Event) { order = append(order, "first:"+string(e.Type)) })
	service.Subscribe(func(e Event) { order = append(order, "second:"+string(e.Type)) })

	if _, err := service.Refresh("orb", time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}
	clock.Advance(time.Second)
	service.EmitUpdates()

	want := []string{"first:updated", "second:updated", "first:removed", "second:removed"}
	if len(order) != len(want) {
		t.Fatalf("delivery order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("delivery order = %v, want %v", order, want)
		}
	}
}

func TestPanickingSubscriberDoesNotBlockOthers(t *testing.T) {
	service, _ := newTestService()

	var delivered int
	service.Subscribe(func(Event) { panic("subscriber bug") })
	service.Subscribe(func(Event) { delivered++ })

	if _, err := service.Refresh("orb", time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}
	if delivered != 1 {
		t.Errorf("second subscriber received %d events, want 1", delivered)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	service, _ := newTestService()

	var count int
	sub := service.Subscribe(func(Event) { count++ })

	if _, err := service.Refresh("orb", time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}
	service.Unsubscribe(sub)
	if _, err := service.Refresh("orb", time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	if count != 1 {
		t.Errorf("subscriber received %d events after unsubscribe, want 1", count)
	}
}

// Walk the documented scenario: refresh at t=0, observe at t=3, refresh
// again, complete at t=8.
func TestRefreshTickRefreshCompleteScenario(t *testing.T) {
	service, clock := newTestService()

	var received []Event
	service.Subscribe(func(e Event) { received = append(received, e) })

	if _, err := service.Refresh("orb", 5*time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	clock.Advance(3 * time.Second)
	service.EmitUpdates()

	if _, err := service.Refresh("orb", 5*time.Second); err != nil {
		t.Fatalf("Refresh error = %v", err)
	}

	clock.Advance(5 * time.Second)
	service.EmitUpdates()

	want := []struct {
		typ       EventType
		remaining time.Duration
		completed bool
	}{
		{EventUpdated, 5 * time.Second, false},
		{EventUpdated, 2 * time.Second, false},
		{EventUpdated, 5 * time.Second, false},
		{EventRemoved, 0, true},
	}
	if len(received) != len(want) {
		t.Fatalf("received %d events, want %d: %+v", len(received), len(want), received)
	}
	for i, w := range want {
		got := received[i]
		if got.Type != w.typ || got.Remaining != w.remaining || got.Completed != w.completed {
			t.Errorf("event %d = %+v, want {%v %v completed=%v}", i, got, w.typ, w.remaining, w.completed)
		}
	}
}

func TestListActiveSortedBySkillID(t *testing.T) {
	service, _ := newTestService()
	for _, id := range []string{"c", "a", "b"} {
		if _, err := service.Refresh(id, time.Minute); err != nil {
			t.Fatalf("Refresh(%q) error = %v", id, err)
		}
	}

	ids := activeIDs(service)
	want := []string{"a", "b", "c"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ListActive ids = %v, want %v", ids, want)
		}
	}
}

func activeIDs(s *Service) []string {
	actives := s.ListActive()
	ids := make([]string, len(actives))
	for i, a := range actives {
		ids[i] = a.SkillID
	}
	return ids
}
