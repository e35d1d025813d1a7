package core

import "testing"

func TestEventRoundTrip(t *testing.T) {
	ev := NewEvent(42)
	erased := EraseEvent(ev)

	restored, consumed, err := RestoreEvent[int](erased)
	if err != nil {
		t.Fatalf("unexpected error restoring matching type: %v", err)
	}
	if restored.Payload() != 42 {
		t.Fatalf("expected payload 42, got %v", restored.Payload())
	}
	if consumed != (ErasedEvent{}) {
		t.Fatalf("expected consumed envelope to be zero value")
	}
}

func TestEventRestoreTypeMismatchReturnsEnvelopeUnchanged(t *testing.T) {
	erased := EraseEvent(NewEvent(42))

	_, returned, err := RestoreEvent[bool](erased)
	if err == nil {
		t.Fatalf("expected InvalidEventTypeError on type mismatch")
	}
	if returned.TypeName() != erased.TypeName() {
		t.Fatalf("expected the original envelope back unchanged, got type %q", returned.TypeName())
	}
}

func TestEventTypeNameIsHumanReadable(t *testing.T) {
	erased := EraseEvent(NewEvent(3.14))
	if erased.TypeName() != "float64" {
		t.Fatalf("expected type name float64, got %q", erased.TypeName())
	}
}

type customPayload struct{ N int }

func TestEventRoundTripStructPayload(t *testing.T) {
	erased := EraseEvent(NewEvent(customPayload{N: 7}))
	restored, _, err := RestoreEvent[customPayload](erased)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Payload().N != 7 {
		t.Fatalf("expected N=7, got %d", restored.Payload().N)
	}
}
