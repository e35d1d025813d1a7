// Package simerr collects the typed error values raised by the simulation
// kernel (system validation, scheduling, routing, and the model store). Each
// kind carries the identifying fields a caller needs to diagnose a failure
// without stepping into the kernel itself: model ids, connector names, and
// type names.
//
// Callers match a kind with errors.As, which also pulls out its fields.
// The model store additionally exposes two sentinels, ErrModelMissing (which
// ModelMissingError unwraps to) and ErrSlotOccupied, for errors.Is; the
// other kinds have no sentinel.
package simerr

import (
	"errors"
	"fmt"
)

// Sentinels for ModelStoreError. The store only ever distinguishes these two
// conditions; there is no separate "truly absent" vs "currently borrowed"
// distinction exposed to callers, since both make a model momentarily
// unavailable to a borrower.
var (
	// ErrModelMissing is returned when a borrow targets an id that either
	// was never registered or is already taken by another borrow.
	ErrModelMissing = errors.New("model store: model missing or already borrowed")
	// ErrSlotOccupied is returned by Release when called on a slot that
	// was never taken. It signals a programming error in the caller, not
	// a condition users of a Simulation should ever observe.
	ErrSlotOccupied = errors.New("model store: release called on a slot that was not taken")
)

// ModelMissingError reports a borrow attempt against an id that is absent
// from the store or whose slot is already taken.
type ModelMissingError struct {
	ID string
}

func (e *ModelMissingError) Error() string {
	return fmt.Sprintf("model %q: %s", e.ID, ErrModelMissing)
}

func (e *ModelMissingError) Unwrap() error { return ErrModelMissing }

// MissingModelError reports a route or lookup naming a model id that was
// never registered in the system.
type MissingModelError struct {
	ID string
}

func (e *MissingModelError) Error() string {
	return fmt.Sprintf("missing model %q", e.ID)
}

// MissingConnectorError reports a route naming a connector that its model
// does not declare.
type MissingConnectorError struct {
	Model     string
	Connector string
}

func (e *MissingConnectorError) Error() string {
	return fmt.Sprintf("model %q has no connector %q", e.Model, e.Connector)
}

// ConnectionTypeMismatchError reports a route whose output and input
// payload types disagree.
type ConnectionTypeMismatchError struct {
	OutputModel     string
	OutputConnector string
	InputModel      string
	InputConnector  string
}

func (e *ConnectionTypeMismatchError) Error() string {
	return fmt.Sprintf("connection type mismatch: %s::%s -> %s::%s",
		e.OutputModel, e.OutputConnector, e.InputModel, e.InputConnector)
}

// InvalidConnectorModelError reports an input handler whose declared
// model-type does not match the model it is registered on.
type InvalidConnectorModelError struct {
	Connector string
}

func (e *InvalidConnectorModelError) Error() string {
	return fmt.Sprintf("connector %q: handler declares a different model type than its owner", e.Connector)
}

// RepeatedOutputError reports an output connector used as the origin of
// more than one route. See DESIGN.md for why this is effectively
// unreachable given the replace-on-duplicate policy of push_route, and why
// the check is kept anyway.
type RepeatedOutputError struct {
	Connector string
}

func (e *RepeatedOutputError) Error() string {
	return fmt.Sprintf("output connector %q already routes to an input", e.Connector)
}

// TimeRegressionError reports a scheduling call whose time precedes the
// scheduler's current clock.
type TimeRegressionError struct {
	Current   fmt.Stringer
	Insertion fmt.Stringer
}

func (e *TimeRegressionError) Error() string {
	return fmt.Sprintf("time regression: current=%s insertion=%s", e.Current, e.Insertion)
}

// InvalidEventTypeError reports a restore attempt whose requested type does
// not match the envelope's erased type.
type InvalidEventTypeError struct {
	Found    string
	Expected string
}

func (e *InvalidEventTypeError) Error() string {
	return fmt.Sprintf("invalid event type: found %s, expected %s", e.Found, e.Expected)
}

// InvalidModelTypeError reports a handler invoked against a borrowed model
// whose concrete type does not match the handler's declared model type.
type InvalidModelTypeError struct {
	Expected string
}

func (e *InvalidModelTypeError) Error() string {
	return fmt.Sprintf("invalid model type: expected %s", e.Expected)
}

// UnknownModelConnectorError reports a route whose destination connector is
// not present (or has no handler) on the destination model.
type UnknownModelConnectorError struct {
	Model     string
	Connector string
}

func (e *UnknownModelConnectorError) Error() string {
	return fmt.Sprintf("model %q has no input handler for connector %q", e.Model, e.Connector)
}

// MissingEventTargetError reports a producer that failed to supply a target
// and whose adjacency is ambiguous. The kernel's adopted policy is a silent
// drop rather than this error (see spec design notes), so this type exists
// for completeness and for callers who choose to reject silently-dropped
// output explicitly rather than rely on the kernel's default behavior.
type MissingEventTargetError struct {
	Model string
}

func (e *MissingEventTargetError) Error() string {
	return fmt.Sprintf("model %q: push_event given no resolvable target", e.Model)
}

// ModelNotFoundError is the umbrella form of MissingModelError for lookups
// outside the validation pass. The kernel's own code does not return it: an
// external event addressed to an unregistered model is accepted by
// ScheduleExternalEvent and fails at dispatch with ModelMissingError.
type ModelNotFoundError struct {
	ID string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("model %q not found", e.ID)
}
