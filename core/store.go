package core

import "github.com/signalsfoundry/eventkernel/simerr"

// modelSlot owns a registered model plus the taken flag giving
// exclusive-borrow semantics.
type modelSlot struct {
	model Model
	taken bool
}

// ModelStore is a keyed registry handing out at-most-one mutable borrow of
// any given model at a time.
//
// The kernel's concurrency model is single-threaded and cooperative (see
// the concurrency section this kernel's spec describes) — no goroutine
// ever calls into a Simulation concurrently with another — so ModelStore
// carries no mutex. The taken flag is a logical re-entrancy guard, not a
// concurrency primitive: it exists so a handler that calls back into the
// kernel can never alias its own model, not so two threads can safely
// share a store.
type ModelStore struct {
	slots map[string]*modelSlot
	order []string
}

// NewModelStore builds an empty store.
func NewModelStore() *ModelStore {
	return &ModelStore{slots: make(map[string]*modelSlot)}
}

// Push registers a model under id, replacing whatever was previously
// registered there.
func (s *ModelStore) Push(id string, m Model) {
	if _, exists := s.slots[id]; !exists {
		s.order = append(s.order, id)
	}
	s.slots[id] = &modelSlot{model: m}
}

// Get returns the model registered under id regardless of whether it is
// currently borrowed. Used by validation and introspection, never by
// dispatch (which must go through Borrow).
func (s *ModelStore) Get(id string) (Model, bool) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, false
	}
	return slot.model, true
}

// Order returns registered model ids in registration order — the "stable
// order" used when running init across every model.
func (s *ModelStore) Order() []string {
	return s.order
}

// Borrow marks id's slot taken and returns the underlying model. It fails
// with ModelMissingError if id is unregistered or its slot is already
// taken — from the caller's perspective, both mean the model is
// unavailable right now.
func (s *ModelStore) Borrow(id string) (Model, error) {
	slot, ok := s.slots[id]
	if !ok || slot.taken {
		return nil, &simerr.ModelMissingError{ID: id}
	}
	slot.taken = true
	return slot.model, nil
}

// Release clears the taken flag on id's slot. Calling Release on an id that
// isn't taken returns ErrSlotOccupied — a programming error in the caller,
// since only Borrow should ever set the flag.
func (s *ModelStore) Release(id string) error {
	slot, ok := s.slots[id]
	if !ok {
		return &simerr.ModelMissingError{ID: id}
	}
	if !slot.taken {
		return simerr.ErrSlotOccupied
	}
	slot.taken = false
	return nil
}

// ForEachAvailable calls fn for every registered model in registration
// order, skipping any slot that is currently taken.
func (s *ModelStore) ForEachAvailable(fn func(id string, m Model) error) error {
	for _, id := range s.order {
		slot := s.slots[id]
		if slot.taken {
			continue
		}
		if err := fn(id, slot.model); err != nil {
			return err
		}
	}
	return nil
}
