package core

import (
	"sort"

	"github.com/signalsfoundry/eventkernel/simerr"
)

// ScheduledKind distinguishes a self-update from a routed event inside the
// scheduler's queue.
type ScheduledKind int

const (
	// ScheduledInternal is a call back into a model's own HandleUpdate,
	// carrying no payload.
	ScheduledInternal ScheduledKind = iota
	// ScheduledEvent is a typed event in transit along a Route.
	ScheduledEvent
)

// Scheduled is one entry in the scheduler's time-keyed queue.
type Scheduled struct {
	Kind    ScheduledKind
	ModelID string // set for ScheduledInternal
	Event   ErasedEvent
	Route   Route // set for ScheduledEvent
}

// InternalEntry builds a ScheduledInternal entry targeting modelID.
func InternalEntry(modelID string) Scheduled {
	return Scheduled{Kind: ScheduledInternal, ModelID: modelID}
}

// EventEntry builds a ScheduledEvent entry carrying erased along route.
func EventEntry(erased ErasedEvent, route Route) Scheduled {
	return Scheduled{Kind: ScheduledEvent, Event: erased, Route: route}
}

// Scheduler is a time-keyed ordered multimap of pending Scheduled entries.
// Entries pop in strictly non-decreasing time order; within one time
// bucket, entries pop in insertion (FIFO) order.
type Scheduler struct {
	current Time
	buckets map[Time][]Scheduled
	times   []Time // kept sorted ascending
}

// NewScheduler builds a scheduler whose clock starts at initial.
func NewScheduler(initial Time) *Scheduler {
	return &Scheduler{current: initial, buckets: make(map[Time][]Scheduled)}
}

// CurrentTime returns the scheduler's clock. It only ever increases, and
// only as a side effect of PopNext.
func (s *Scheduler) CurrentTime() Time { return s.current }

// Schedule appends entry to the bucket at t. It rejects t < current time
// with a TimeRegressionError and leaves the queue unchanged.
func (s *Scheduler) Schedule(t Time, entry Scheduled) error {
	if t.Before(s.current) {
		return &simerr.TimeRegressionError{Current: s.current, Insertion: t}
	}
	if _, exists := s.buckets[t]; !exists {
		s.insertTimeKey(t)
	}
	s.buckets[t] = append(s.buckets[t], entry)
	return nil
}

// ScheduleUpdate is sugar for Schedule(t, InternalEntry(modelID)).
func (s *Scheduler) ScheduleUpdate(t Time, modelID string) error {
	return s.Schedule(t, InternalEntry(modelID))
}

// ScheduleEvent is sugar for Schedule(t, EventEntry(erased, route)).
func (s *Scheduler) ScheduleEvent(t Time, erased ErasedEvent, route Route) error {
	return s.Schedule(t, EventEntry(erased, route))
}

// PeekNextTime returns the earliest non-empty bucket's time without
// removing anything.
func (s *Scheduler) PeekNextTime() (Time, bool) {
	if len(s.times) == 0 {
		return Time{}, false
	}
	return s.times[0], true
}

// PopNext removes and returns the earliest bucket's entries, advancing the
// scheduler's current time to that bucket's key.
func (s *Scheduler) PopNext() ([]Scheduled, bool) {
	if len(s.times) == 0 {
		return nil, false
	}
	t := s.times[0]
	s.times = s.times[1:]
	entries := s.buckets[t]
	delete(s.buckets, t)
	s.current = t
	return entries, true
}

// CancelUpdates removes every ScheduledInternal entry for modelID,
// respecting bounds when non-nil (nil means unbounded — remove every
// future self-update). Event entries are never touched. Traversal walks
// buckets in ascending time order and stops as soon as it passes the upper
// bound.
func (s *Scheduler) CancelUpdates(modelID string, bounds *TimeBounds) {
	keep := make([]Time, 0, len(s.times))
	cutoff := len(s.times)
	for i, t := range s.times {
		if bounds != nil && bounds.PastEnd(t) {
			// Ascending order means every later time is also past the
			// upper bound; stop walking rather than check each one.
			cutoff = i
			break
		}
		if bounds != nil && !bounds.Includes(t) {
			keep = append(keep, t)
			continue
		}

		entries := s.buckets[t]
		filtered := entries[:0]
		for _, e := range entries {
			if e.Kind == ScheduledInternal && e.ModelID == modelID {
				continue
			}
			filtered = append(filtered, e)
		}
		if len(filtered) == 0 {
			delete(s.buckets, t)
		} else {
			s.buckets[t] = filtered
			keep = append(keep, t)
		}
	}
	keep = append(keep, s.times[cutoff:]...)
	s.times = keep
}

// PendingCount returns the total number of entries currently queued across
// every bucket. Used by tests pinning the "silent drop" behavior of an
// unwired push_event, and exposed to the telemetry package as a pending-
// entry gauge.
func (s *Scheduler) PendingCount() int {
	n := 0
	for _, entries := range s.buckets {
		n += len(entries)
	}
	return n
}

func (s *Scheduler) insertTimeKey(t Time) {
	i := sort.Search(len(s.times), func(i int) bool { return !s.times[i].Before(t) })
	s.times = append(s.times, Time{})
	copy(s.times[i+1:], s.times[i:])
	s.times[i] = t
}
