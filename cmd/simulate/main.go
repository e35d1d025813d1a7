package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/signalsfoundry/eventkernel/core"
	"github.com/signalsfoundry/eventkernel/internal/logging"
	"github.com/signalsfoundry/eventkernel/models"
)

func main() {
	scenario := flag.String("scenario", "pingpong", "demo scenario to run: pingpong, queue, or beacon")
	until := flag.Duration("until", 10*time.Second, "simulated duration to run")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")

	flag.Parse()

	log := logging.New(logging.Config{Level: *logLevel, Format: "text"})
	ctx := context.Background()

	var err error
	switch *scenario {
	case "pingpong":
		err = runPingPong(ctx, log, *until)
	case "queue":
		err = runQueue(ctx, log, *until)
	case "beacon":
		err = runBeacon(ctx, log, *until)
	default:
		err = fmt.Errorf("unknown scenario %q (want pingpong, queue, or beacon)", *scenario)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runPingPong wires two Players into a loop: p1 sends to p2's "receive",
// p2 sends back to p1's. Each relay carries a fixed delay.
func runPingPong(ctx context.Context, log logging.Logger, until time.Duration) error {
	p1 := models.NewPlayer(core.SecondsDelta(0.5))
	p2 := models.NewPlayer(core.SecondsDelta(0.5))

	sys := core.NewSystemModel()
	sys.PushModel("p1", p1)
	sys.PushModel("p2", p2)
	sys.PushRoute(core.ConnectorPath{Model: "p1", Connector: "send"}, core.ConnectorPath{Model: "p2", Connector: "receive"})
	sys.PushRoute(core.ConnectorPath{Model: "p2", Connector: "send"}, core.ConnectorPath{Model: "p1", Connector: "receive"})

	start := core.Seconds(0)
	sim, err := core.New(sys, start, nil)
	if err != nil {
		return err
	}

	if err := core.ScheduleExternalEvent(sim, start, models.Signal{}, core.ConnectorPath{Model: "p1", Connector: "receive"}); err != nil {
		return err
	}

	if err := sim.RunUntil(start.Add(core.DeltaFromDuration(until))); err != nil {
		return err
	}

	log.Info(ctx, "pingpong finished", logging.String("final_time", sim.CurrentTime().String()))
	return nil
}

// runQueue wires a Generator-backed producer into a Queue and pops it with
// a repeating Timer.
func runQueue(ctx context.Context, log logging.Logger, until time.Duration) error {
	n := 0
	gen := models.NewGenerator(func() int {
		n++
		return n
	})
	q := models.NewQueue[int]()
	timer := models.NewTimer()
	repeat := core.SecondsDelta(1)
	timer.Repeat = &repeat

	sys := core.NewSystemModel()
	sys.PushModel("gen", gen)
	sys.PushModel("queue", q)
	sys.PushModel("pop_timer", timer)
	sys.PushRoute(core.ConnectorPath{Model: "gen", Connector: "out"}, core.ConnectorPath{Model: "queue", Connector: "in"})
	sys.PushRoute(core.ConnectorPath{Model: "pop_timer", Connector: "signal"}, core.ConnectorPath{Model: "queue", Connector: "pop"})

	start := core.Seconds(0)
	sim, err := core.New(sys, start, nil)
	if err != nil {
		return err
	}

	for i := 0; i < 5; i++ {
		t := start.Add(core.SecondsDelta(float64(i)))
		if err := core.ScheduleExternalEvent(sim, t, models.Signal{}, core.ConnectorPath{Model: "gen", Connector: "generate"}); err != nil {
			return err
		}
	}

	if err := sim.RunUntil(start.Add(core.DeltaFromDuration(until))); err != nil {
		return err
	}

	log.Info(ctx, "queue finished", logging.String("final_time", sim.CurrentTime().String()))
	return nil
}

// runBeacon wires a single OrbitalBeacon (the ISS's TLE) into the kernel
// and runs it forward, letting its "position" output fire on a fixed
// cadence with no consumer wired (a silent no-op per the kernel's unwired-
// output policy).
func runBeacon(ctx context.Context, log logging.Logger, until time.Duration) error {
	const (
		issLine1 = "1 25544U 98067A   24079.36477796  .00016717  00000-0  30731-3 0  9991"
		issLine2 = "2 25544  51.6416 247.4627 0005628 271.8421 204.3977 15.50725200442121"
	)

	beacon := models.NewOrbitalBeacon(issLine1, issLine2, time.Now().UTC(), core.SecondsDelta(60))

	sys := core.NewSystemModel()
	sys.PushModel("iss", beacon)

	start := core.Seconds(0)
	sim, err := core.New(sys, start, nil)
	if err != nil {
		return err
	}
	if err := sim.RunUntil(start.Add(core.DeltaFromDuration(until))); err != nil {
		return err
	}

	log.Info(ctx, "beacon finished", logging.String("final_time", sim.CurrentTime().String()))
	return nil
}
