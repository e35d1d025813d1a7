package core

import (
	"fmt"
	"reflect"

	"github.com/signalsfoundry/eventkernel/simerr"
)

// Model is a stateful component with named input and output connectors. It
// is registered once in a SystemModel and mutated only through an
// exclusive borrow.
type Model interface {
	// InputConnectors lists declared input connector names, stable for
	// the model's lifetime and unique within the model.
	InputConnectors() []string
	// OutputConnectors lists declared output connectors with their
	// payload types, stable and unique within the model.
	OutputConnectors() []OutputConnectorInfo
	// InputHandler returns the erased handler for the input connector at
	// index (as ordered by InputConnectors), or false if that connector
	// has no handler.
	InputHandler(index int) (ErasedInputHandler, bool)
	// Init runs exactly once per model, before the first event is
	// dispatched.
	Init(ctx ModelCtx) error
	// HandleUpdate runs whenever the scheduler pops an Internal entry
	// targeting this model.
	HandleUpdate(ctx ModelCtx) error
	// OwnTypeID uniquely tags the model's concrete type, checked against
	// every input handler's declared model type at validation time.
	OwnTypeID() reflect.Type
}

// ErasedInputHandler wraps one concrete input handler, advertising the
// model and event payload types it expects and offering the single
// erased entrypoint the routing layer calls.
type ErasedInputHandler interface {
	ModelType() reflect.Type
	EventType() reflect.Type
	// Apply restores the erased event against this handler's declared
	// type, asserts the borrowed model in ctx against this handler's
	// declared model type, and — if both checks pass — invokes the
	// underlying typed handler.
	Apply(erased ErasedEvent, ctx ConnectorCtx) error
}

// InputHandlerFunc is the typed shape of one input handler: it receives
// the borrowed model, the typed event, and the per-invocation context.
//
// Mdl is instantiated with a pointer-to-model type (e.g. *Queue[int]), not
// the model's value type, since handlers always mutate through a pointer
// receiver. Go does not support type parameters on methods, so this and
// WrapInputHandler are free functions rather than methods on Model.
type InputHandlerFunc[Mdl Model, In any] func(self Mdl, ev Event[In], ctx ModelCtx) error

// WrapInputHandler erases a typed handler function into an
// ErasedInputHandler suitable for Model.InputHandler.
func WrapInputHandler[Mdl Model, In any](fn InputHandlerFunc[Mdl, In]) ErasedInputHandler {
	return erasedHandler[Mdl, In]{fn: fn}
}

type erasedHandler[Mdl Model, In any] struct {
	fn InputHandlerFunc[Mdl, In]
}

func (h erasedHandler[Mdl, In]) ModelType() reflect.Type {
	var zero Mdl
	return reflect.TypeOf(zero)
}

func (h erasedHandler[Mdl, In]) EventType() reflect.Type { return typeOf[In]() }

func (h erasedHandler[Mdl, In]) Apply(erased ErasedEvent, ctx ConnectorCtx) error {
	ev, _, err := RestoreEvent[In](erased)
	if err != nil {
		return err
	}
	self, ok := ctx.model.(Mdl)
	if !ok {
		return &simerr.InvalidModelTypeError{Expected: fmt.Sprintf("%T", *new(Mdl))}
	}
	return h.fn(self, ev, ctx.ModelCtx)
}

func findOutputConnector(m Model, name string) (OutputConnectorInfo, bool) {
	for _, o := range m.OutputConnectors() {
		if o.Name == name {
			return o, true
		}
	}
	return OutputConnectorInfo{}, false
}

func findInputIndex(m Model, name string) (int, bool) {
	for i, n := range m.InputConnectors() {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
