package models_test

import (
	"testing"

	"github.com/signalsfoundry/eventkernel/core"
	"github.com/signalsfoundry/eventkernel/models"
)

func TestTimerFiresOnceWhenUnbounded(t *testing.T) {
	timer := models.NewTimer()
	sink := &recorder[models.Signal]{}

	sys := core.NewSystemModel()
	sys.PushModel("timer", timer)
	sys.PushModel("sink", sink)
	sys.PushRoute(
		core.ConnectorPath{Model: "timer", Connector: "signal"},
		core.ConnectorPath{Model: "sink", Connector: "in"},
	)

	sim, err := core.New(sys, core.Seconds(0), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sim.RunUntil(core.Seconds(10)); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}

	if len(sink.received) != 1 {
		t.Fatalf("expected exactly one fire, got %d", len(sink.received))
	}
}

func TestTimerRepeatsUntilBoundOvershot(t *testing.T) {
	limits := core.NewTimeBounds(core.Seconds(0), core.Seconds(2))
	repeat := core.SecondsDelta(1)
	timer := &models.Timer{Limits: limits, Repeat: &repeat}
	sink := &recorder[models.Signal]{}

	sys := core.NewSystemModel()
	sys.PushModel("timer", timer)
	sys.PushModel("sink", sink)
	sys.PushRoute(
		core.ConnectorPath{Model: "timer", Connector: "signal"},
		core.ConnectorPath{Model: "sink", Connector: "in"},
	)

	sim, err := core.New(sys, core.Seconds(0), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sim.Run(); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}

	// Fires at 0, 1, 2 — three times — then a fourth at 3 would overshoot
	// the closed upper bound of 2 and is never scheduled.
	if len(sink.received) != 3 {
		t.Fatalf("expected 3 fires within [0,2] repeating every 1, got %d", len(sink.received))
	}
}

func TestTimerWithDelayFiresAfterStart(t *testing.T) {
	delay := core.SecondsDelta(2)
	timer := &models.Timer{Limits: core.UnboundedTimeBounds(), Delay: &delay}

	var fired []core.Time
	sink := &recorder[models.Signal]{OnReceive: func(_ models.Signal, t core.Time) { fired = append(fired, t) }}

	sys := core.NewSystemModel()
	sys.PushModel("timer", timer)
	sys.PushModel("sink", sink)
	sys.PushRoute(
		core.ConnectorPath{Model: "timer", Connector: "signal"},
		core.ConnectorPath{Model: "sink", Connector: "in"},
	)

	sim, err := core.New(sys, core.Seconds(0), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sim.RunUntil(core.Seconds(10)); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}

	if len(fired) != 1 || !fired[0].Equal(core.Seconds(2)) {
		t.Fatalf("expected a single fire at t=2, got %v", fired)
	}
}
