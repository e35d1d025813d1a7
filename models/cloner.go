package models

import (
	"fmt"
	"reflect"

	"github.com/signalsfoundry/eventkernel/core"
)

// Cloner fans a single typed "input" connector out to N outputs, named
// output_0 through output_{N-1}, cloning the received value onto each.
type Cloner[T any] struct {
	outputs int
}

// NewCloner builds a Cloner with the given number of fan-out outputs.
func NewCloner[T any](outputs int) *Cloner[T] { return &Cloner[T]{outputs: outputs} }

func (c *Cloner[T]) OwnTypeID() reflect.Type { return reflect.TypeOf(c) }

func (c *Cloner[T]) InputConnectors() []string { return []string{"input"} }

func (c *Cloner[T]) OutputConnectors() []core.OutputConnectorInfo {
	infos := make([]core.OutputConnectorInfo, c.outputs)
	for i := range infos {
		infos[i] = core.NewOutputConnectorInfo[T](outputName(i))
	}
	return infos
}

func (c *Cloner[T]) InputHandler(index int) (core.ErasedInputHandler, bool) {
	if index != 0 {
		return nil, false
	}
	return core.WrapInputHandler(core.InputHandlerFunc[*Cloner[T], T](
		func(self *Cloner[T], ev core.Event[T], ctx core.ModelCtx) error {
			value := ev.Payload()
			for i := 0; i < self.outputs; i++ {
				if err := core.PushEventNow(ctx, outputName(i), value); err != nil {
					return err
				}
			}
			return nil
		},
	)), true
}

func (c *Cloner[T]) Init(core.ModelCtx) error { return nil }

func (c *Cloner[T]) HandleUpdate(core.ModelCtx) error { return nil }

func outputName(i int) string { return fmt.Sprintf("output_%d", i) }
