package telemetry

import (
	"time"

	"github.com/signalsfoundry/eventkernel/core"
)

// InstrumentedStep runs one Simulation.Step, recording its wall-clock
// duration and outcome against c, then updates the pending-entry gauge
// from the post-step queue depth. c may be nil, in which case this is
// exactly sim.Step().
func InstrumentedStep(sim *core.Simulation, c *Collector) error {
	start := time.Now()
	err := sim.Step()
	c.RecordDispatch("step", err == nil, time.Since(start).Seconds())
	c.SetPendingEntries(sim.PendingCount())
	return err
}

// InstrumentedRunUntil repeatedly calls InstrumentedStep until the
// simulation's next pending time would meet or exceed tMax, mirroring
// Simulation.RunUntil but with per-step telemetry.
func InstrumentedRunUntil(sim *core.Simulation, tMax core.Time, c *Collector) error {
	for {
		next, ok := sim.PeekNextTime()
		if !ok || !next.Before(tMax) {
			return nil
		}
		if err := InstrumentedStep(sim, c); err != nil {
			return err
		}
	}
}
