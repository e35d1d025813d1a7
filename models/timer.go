package models

import (
	"reflect"

	"github.com/signalsfoundry/eventkernel/core"
)

// Timer fires a Signal on its "signal" output once its bounds' start is
// reached (plus an optional fixed delay), then again every Repeat interval
// until the bounds' end would be overshot.
type Timer struct {
	Limits core.TimeBounds
	Delay  *core.TimeDelta
	Repeat *core.TimeDelta
}

// NewTimer builds an unbounded, non-repeating Timer that fires once at
// the simulation's starting time.
func NewTimer() *Timer {
	return &Timer{Limits: core.UnboundedTimeBounds()}
}

func (t *Timer) OwnTypeID() reflect.Type { return reflect.TypeOf(t) }

func (t *Timer) InputConnectors() []string { return nil }

func (t *Timer) OutputConnectors() []core.OutputConnectorInfo {
	return []core.OutputConnectorInfo{core.NewOutputConnectorInfo[Signal]("signal")}
}

func (t *Timer) InputHandler(int) (core.ErasedInputHandler, bool) { return nil, false }

func (t *Timer) Init(ctx core.ModelCtx) error {
	initial := t.startTrigger().Resolve(ctx.Time())
	if t.Delay != nil {
		initial = initial.Add(*t.Delay)
	}
	if t.overshoots(initial) {
		return nil
	}
	return ctx.ScheduleUpdate(core.At(initial))
}

func (t *Timer) HandleUpdate(ctx core.ModelCtx) error {
	if err := core.PushEventNow(ctx, "signal", Signal{}); err != nil {
		return err
	}
	if t.Repeat == nil {
		return nil
	}
	next := ctx.Time().Add(*t.Repeat)
	if t.overshoots(next) {
		return nil
	}
	return ctx.ScheduleUpdate(core.In(*t.Repeat))
}

func (t *Timer) startTrigger() core.TimeTrigger {
	if start, ok := t.Limits.Start(); ok {
		return core.At(start)
	}
	return core.Now()
}

func (t *Timer) overshoots(candidate core.Time) bool {
	return t.Limits.PastEnd(candidate)
}
