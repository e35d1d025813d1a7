package models_test

import (
	"testing"

	"github.com/signalsfoundry/eventkernel/core"
	"github.com/signalsfoundry/eventkernel/models"
)

func TestClonerFansOutToEveryOutput(t *testing.T) {
	cloner := models.NewCloner[int](3)
	sinkA := &recorder[int]{}
	sinkB := &recorder[int]{}
	sinkC := &recorder[int]{}

	sys := core.NewSystemModel()
	sys.PushModel("cloner", cloner)
	sys.PushModel("a", sinkA)
	sys.PushModel("b", sinkB)
	sys.PushModel("c", sinkC)
	sys.PushRoute(core.ConnectorPath{Model: "cloner", Connector: "output_0"}, core.ConnectorPath{Model: "a", Connector: "in"})
	sys.PushRoute(core.ConnectorPath{Model: "cloner", Connector: "output_1"}, core.ConnectorPath{Model: "b", Connector: "in"})
	sys.PushRoute(core.ConnectorPath{Model: "cloner", Connector: "output_2"}, core.ConnectorPath{Model: "c", Connector: "in"})

	sim, err := core.New(sys, core.Seconds(0), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	core.ScheduleExternalEvent(sim, core.Seconds(0), 99, core.ConnectorPath{Model: "cloner", Connector: "input"})
	if err := sim.Run(); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}

	for label, sink := range map[string]*recorder[int]{"a": sinkA, "b": sinkB, "c": sinkC} {
		if len(sink.received) != 1 || sink.received[0] != 99 {
			t.Fatalf("expected output %s to receive [99], got %v", label, sink.received)
		}
	}
}
