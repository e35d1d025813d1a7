package models

import (
	"reflect"

	"github.com/signalsfoundry/eventkernel/core"
)

// Queue buffers values of type T arriving on its "in" input and releases
// them one at a time, oldest first, whenever its "pop" input receives a
// Signal. It has a single typed output, "out".
type Queue[T any] struct {
	items []T
}

// NewQueue builds an empty Queue.
func NewQueue[T any]() *Queue[T] { return &Queue[T]{} }

func (q *Queue[T]) OwnTypeID() reflect.Type { return reflect.TypeOf(q) }

func (q *Queue[T]) InputConnectors() []string { return []string{"in", "pop"} }

func (q *Queue[T]) OutputConnectors() []core.OutputConnectorInfo {
	return []core.OutputConnectorInfo{core.NewOutputConnectorInfo[T]("out")}
}

func (q *Queue[T]) InputHandler(index int) (core.ErasedInputHandler, bool) {
	switch index {
	case 0:
		return core.WrapInputHandler(core.InputHandlerFunc[*Queue[T], T](
			func(self *Queue[T], ev core.Event[T], _ core.ModelCtx) error {
				self.items = append(self.items, ev.Payload())
				return nil
			},
		)), true
	case 1:
		return core.WrapInputHandler(core.InputHandlerFunc[*Queue[T], Signal](
			func(self *Queue[T], _ core.Event[Signal], ctx core.ModelCtx) error {
				if len(self.items) == 0 {
					return nil
				}
				v := self.items[0]
				self.items = self.items[1:]
				return core.PushEventNow(ctx, "out", v)
			},
		)), true
	default:
		return nil, false
	}
}

func (q *Queue[T]) Init(core.ModelCtx) error { return nil }

func (q *Queue[T]) HandleUpdate(core.ModelCtx) error { return nil }
