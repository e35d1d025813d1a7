package models

import (
	"reflect"

	"github.com/signalsfoundry/eventkernel/core"
)

// Generator samples a value of type T each time it receives a Signal on its
// "generate" input and emits the sample on its "out" output.
//
// The source's Generator wraps a rand::distributions::Distribution object
// sampled through an injected Rng. Go's standard library has no equivalent
// distribution trait, so this port takes the simpler route already visible
// elsewhere in the sample models: an injectable sampler closure. Callers who
// want a distribution merely close over a core.Rng (or math/rand/v2)
// themselves when building the closure.
type Generator[T any] struct {
	Sample func() T
}

// NewGenerator builds a Generator that samples values with fn.
func NewGenerator[T any](fn func() T) *Generator[T] { return &Generator[T]{Sample: fn} }

func (g *Generator[T]) OwnTypeID() reflect.Type { return reflect.TypeOf(g) }

func (g *Generator[T]) InputConnectors() []string { return []string{"generate"} }

func (g *Generator[T]) OutputConnectors() []core.OutputConnectorInfo {
	return []core.OutputConnectorInfo{core.NewOutputConnectorInfo[T]("out")}
}

func (g *Generator[T]) InputHandler(index int) (core.ErasedInputHandler, bool) {
	if index != 0 {
		return nil, false
	}
	return core.WrapInputHandler(core.InputHandlerFunc[*Generator[T], Signal](
		func(self *Generator[T], _ core.Event[Signal], ctx core.ModelCtx) error {
			return core.PushEventNow(ctx, "out", self.Sample())
		},
	)), true
}

func (g *Generator[T]) Init(core.ModelCtx) error { return nil }

func (g *Generator[T]) HandleUpdate(core.ModelCtx) error { return nil }
