package core

import (
	"errors"
	"testing"

	"github.com/signalsfoundry/eventkernel/simerr"
)

func TestSchedulerFIFOWithinBucket(t *testing.T) {
	s := NewScheduler(Seconds(0))

	if err := s.ScheduleUpdate(Seconds(1), "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.ScheduleUpdate(Seconds(1), "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.ScheduleUpdate(Seconds(1), "c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, ok := s.PopNext()
	if !ok {
		t.Fatalf("expected a bucket")
	}
	want := []string{"a", "b", "c"}
	for i, e := range entries {
		if e.ModelID != want[i] {
			t.Fatalf("expected FIFO order %v, got entry %d = %q", want, i, e.ModelID)
		}
	}
}

func TestSchedulerPopAdvancesCurrentTime(t *testing.T) {
	s := NewScheduler(Seconds(0))
	s.ScheduleUpdate(Seconds(5), "a")

	if _, ok := s.PopNext(); !ok {
		t.Fatalf("expected a bucket")
	}
	if !s.CurrentTime().Equal(Seconds(5)) {
		t.Fatalf("expected current time to advance to 5, got %s", s.CurrentTime())
	}
}

func TestSchedulerRejectsTimeRegression(t *testing.T) {
	s := NewScheduler(Seconds(5))

	err := s.ScheduleUpdate(Seconds(4), "a")
	if err == nil {
		t.Fatalf("expected TimeRegressionError")
	}
	var regErr *simerr.TimeRegressionError
	if !errors.As(err, &regErr) {
		t.Fatalf("expected *simerr.TimeRegressionError, got %T", err)
	}
	if s.PendingCount() != 0 {
		t.Fatalf("expected queue unchanged after rejected schedule, got %d entries", s.PendingCount())
	}
}

func TestSchedulerPeekDoesNotRemove(t *testing.T) {
	s := NewScheduler(Seconds(0))
	s.ScheduleUpdate(Seconds(3), "a")

	peeked, ok := s.PeekNextTime()
	if !ok || !peeked.Equal(Seconds(3)) {
		t.Fatalf("expected peek to report time 3, got %s (ok=%v)", peeked, ok)
	}
	if s.PendingCount() != 1 {
		t.Fatalf("expected peek to leave the queue untouched")
	}
}

func TestSchedulerCancelUpdatesBounded(t *testing.T) {
	s := NewScheduler(Seconds(0))
	for _, n := range []float64{1, 2, 3, 4} {
		if err := s.ScheduleUpdate(Seconds(n), "m"); err != nil {
			t.Fatalf("unexpected error scheduling: %v", err)
		}
	}

	bounds := NewTimeBounds(Seconds(1), Seconds(2))
	s.CancelUpdates("m", &bounds)

	var dispatched []float64
	for {
		entries, ok := s.PopNext()
		if !ok {
			break
		}
		for range entries {
			dispatched = append(dispatched, s.CurrentTime().Duration().Seconds())
		}
	}

	want := []float64{3, 4}
	if len(dispatched) != len(want) {
		t.Fatalf("expected dispatch times %v, got %v", want, dispatched)
	}
	for i, d := range dispatched {
		if d != want[i] {
			t.Fatalf("expected dispatch times %v, got %v", want, dispatched)
		}
	}
}

func TestSchedulerCancelUpdatesLeavesEventsUntouched(t *testing.T) {
	s := NewScheduler(Seconds(0))
	s.ScheduleUpdate(Seconds(1), "m")
	route := Route{From: ExternalSource(), To: ConnectorPath{Model: "m", Connector: "in"}}
	s.ScheduleEvent(Seconds(1), EraseEvent(NewEvent(1)), route)

	s.CancelUpdates("m", nil)

	entries, ok := s.PopNext()
	if !ok || len(entries) != 1 {
		t.Fatalf("expected the event entry to survive cancellation, got %v", entries)
	}
	if entries[0].Kind != ScheduledEvent {
		t.Fatalf("expected remaining entry to be a ScheduledEvent")
	}
}

func TestSchedulerCancelUpdatesUnboundedRemovesAllFuture(t *testing.T) {
	s := NewScheduler(Seconds(0))
	for _, n := range []float64{1, 2, 3} {
		s.ScheduleUpdate(Seconds(n), "m")
	}
	s.CancelUpdates("m", nil)

	if s.PendingCount() != 0 {
		t.Fatalf("expected all future updates cancelled, got %d pending", s.PendingCount())
	}
}
