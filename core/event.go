package core

import (
	"reflect"

	"github.com/signalsfoundry/eventkernel/simerr"
)

// Message is the marker type used where the spec this kernel is built from
// calls for "any payload type". Go's type system needs no explicit trait
// bound here — any type, including struct{}, satisfies it — so Message is
// simply an alias used for documentation at call sites.
type Message = any

// Event is a typed payload in transit between connectors. It is produced by
// a handler or by an external caller and consumed exactly once by the
// input handler it is routed to.
type Event[M any] struct {
	payload M
}

// NewEvent wraps a payload in an Event.
func NewEvent[M any](payload M) Event[M] { return Event[M]{payload: payload} }

// Payload returns the wrapped value.
func (e Event[M]) Payload() M { return e.payload }

// ErasedEvent is the type-erased form of an Event used inside the scheduler
// and routing layer, which both traffic in a single concrete type
// regardless of how many distinct payload types a system declares.
//
// The source this kernel is grounded on treats a dropped, unrestored
// ErasedEvent as a leaked payload, since its envelope holds a raw pointer
// freed only by the restore path. Go's garbage collector reclaims the
// payload regardless of whether restoration happens, so that half of the
// original contract is moot here — but the other half, that restoration is
// a single guarded, fallible cast checked against a runtime type tag,
// is preserved exactly: RestoreEvent is the only way to get a payload back
// out, and a type mismatch never panics.
type ErasedEvent struct {
	typ      reflect.Type
	typeName string
	payload  any
}

// EraseEvent produces the type-erased form of a typed Event.
func EraseEvent[M any](e Event[M]) ErasedEvent {
	t := typeOf[M]()
	return ErasedEvent{typ: t, typeName: t.String(), payload: e.payload}
}

// TypeName is the human-readable name of the envelope's erased type, used
// in diagnostics.
func (e ErasedEvent) TypeName() string { return e.typeName }

// RestoreEvent attempts to recover a typed Event[M] from an erased
// envelope. On a type match, it returns the typed event and a consumed
// (zero-value) envelope. On a mismatch, it returns the original envelope
// unchanged alongside an InvalidEventTypeError — never a panic.
func RestoreEvent[M any](e ErasedEvent) (Event[M], ErasedEvent, error) {
	want := typeOf[M]()
	if e.typ != want {
		return Event[M]{}, e, &simerr.InvalidEventTypeError{
			Found:    e.typeName,
			Expected: want.String(),
		}
	}
	payload, _ := e.payload.(M)
	return Event[M]{payload: payload}, ErasedEvent{}, nil
}

func typeOf[M any]() reflect.Type {
	return reflect.TypeOf((*M)(nil)).Elem()
}
