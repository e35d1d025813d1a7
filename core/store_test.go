package core

import (
	"errors"
	"reflect"
	"testing"

	"github.com/signalsfoundry/eventkernel/simerr"
)

type stubModel struct{ id string }

func (m *stubModel) OwnTypeID() reflect.Type                            { return reflect.TypeOf(m) }
func (m *stubModel) InputConnectors() []string                         { return nil }
func (m *stubModel) OutputConnectors() []OutputConnectorInfo           { return nil }
func (m *stubModel) InputHandler(int) (ErasedInputHandler, bool)       { return nil, false }
func (m *stubModel) Init(ModelCtx) error                               { return nil }
func (m *stubModel) HandleUpdate(ModelCtx) error                       { return nil }

func TestModelStoreBorrowRelease(t *testing.T) {
	s := NewModelStore()
	s.Push("a", &stubModel{id: "a"})

	m, err := s.Borrow("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.(*stubModel).id != "a" {
		t.Fatalf("expected to borrow model a")
	}
	if err := s.Release("a"); err != nil {
		t.Fatalf("unexpected error releasing: %v", err)
	}
}

func TestModelStoreReentrantBorrowFails(t *testing.T) {
	s := NewModelStore()
	s.Push("a", &stubModel{})

	if _, err := s.Borrow("a"); err != nil {
		t.Fatalf("unexpected error on first borrow: %v", err)
	}
	_, err := s.Borrow("a")
	var missing *simerr.ModelMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected ModelMissingError on re-entrant borrow, got %v", err)
	}
}

func TestModelStoreReleaseUnborrowedSlotFails(t *testing.T) {
	s := NewModelStore()
	s.Push("a", &stubModel{})

	err := s.Release("a")
	if !errors.Is(err, simerr.ErrSlotOccupied) {
		t.Fatalf("expected ErrSlotOccupied, got %v", err)
	}
}

func TestModelStoreOrderIsRegistrationOrder(t *testing.T) {
	s := NewModelStore()
	s.Push("c", &stubModel{})
	s.Push("a", &stubModel{})
	s.Push("b", &stubModel{})

	want := []string{"c", "a", "b"}
	got := s.Order()
	if len(got) != len(want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestModelStoreForEachAvailableSkipsTaken(t *testing.T) {
	s := NewModelStore()
	s.Push("a", &stubModel{})
	s.Push("b", &stubModel{})
	s.Borrow("a")

	var seen []string
	s.ForEachAvailable(func(id string, _ Model) error {
		seen = append(seen, id)
		return nil
	})

	if len(seen) != 1 || seen[0] != "b" {
		t.Fatalf("expected only unborrowed model b, got %v", seen)
	}
}
