package models

import (
	"reflect"

	"github.com/signalsfoundry/eventkernel/core"
)

// Player is the "ping-pong" sample model: it has one signal input,
// "receive", and one signal output, "send". Receiving a signal schedules a
// self-update for the current tick; when that update runs, it sends a
// signal on "send" after a fixed delay. Wiring two Players' send/receive
// connectors crosswise makes them volley a signal back and forth.
type Player struct {
	Delay core.TimeDelta

	// OnFire, when set, is called with the current time each time a
	// received signal is about to be replayed onto "send" — the same
	// instant the signal was received, since HandleUpdate always runs at
	// the tick its own ScheduleUpdate(Now()) resolved to. Used by tests
	// to record receive-dispatch times without exposing a new connector.
	OnFire func(core.Time)
}

// NewPlayer builds a Player that replies after the given fixed delay.
func NewPlayer(delay core.TimeDelta) *Player { return &Player{Delay: delay} }

func (p *Player) OwnTypeID() reflect.Type { return reflect.TypeOf(p) }

func (p *Player) InputConnectors() []string { return []string{"receive"} }

func (p *Player) OutputConnectors() []core.OutputConnectorInfo {
	return []core.OutputConnectorInfo{core.NewOutputConnectorInfo[Signal]("send")}
}

func (p *Player) InputHandler(index int) (core.ErasedInputHandler, bool) {
	if index != 0 {
		return nil, false
	}
	return core.WrapInputHandler(core.InputHandlerFunc[*Player, Signal](
		func(self *Player, _ core.Event[Signal], ctx core.ModelCtx) error {
			return ctx.ScheduleUpdate(core.Now())
		},
	)), true
}

func (p *Player) Init(core.ModelCtx) error { return nil }

func (p *Player) HandleUpdate(ctx core.ModelCtx) error {
	if p.OnFire != nil {
		p.OnFire(ctx.Time())
	}
	return core.PushEvent(ctx, "send", Signal{}, core.In(p.Delay))
}
