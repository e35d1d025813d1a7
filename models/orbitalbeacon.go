package models

import (
	"reflect"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/eventkernel/core"
)

// Position is an Earth-centered, Earth-fixed coordinate in metres.
type Position struct {
	X, Y, Z float64
}

// OrbitalBeacon has no inputs and a single "position" output that it
// populates on a fixed cadence by propagating a TLE with SGP4 and
// converting the resulting ECI position to ECEF. Simulation Time offsets
// are interpreted relative to Epoch, since SGP4 needs a calendar date.
type OrbitalBeacon struct {
	Epoch  time.Time
	Period core.TimeDelta

	sat satellite.Satellite
}

// NewOrbitalBeacon builds a beacon from two-line element lines, propagating
// from epoch and re-emitting its position every period.
func NewOrbitalBeacon(line1, line2 string, epoch time.Time, period core.TimeDelta) *OrbitalBeacon {
	return &OrbitalBeacon{
		Epoch:  epoch,
		Period: period,
		sat:    satellite.TLEToSat(line1, line2, satellite.GravityWGS72),
	}
}

func (b *OrbitalBeacon) OwnTypeID() reflect.Type { return reflect.TypeOf(b) }

func (b *OrbitalBeacon) InputConnectors() []string { return nil }

func (b *OrbitalBeacon) OutputConnectors() []core.OutputConnectorInfo {
	return []core.OutputConnectorInfo{core.NewOutputConnectorInfo[Position]("position")}
}

func (b *OrbitalBeacon) InputHandler(int) (core.ErasedInputHandler, bool) { return nil, false }

func (b *OrbitalBeacon) Init(ctx core.ModelCtx) error {
	return ctx.ScheduleUpdate(core.Now())
}

func (b *OrbitalBeacon) HandleUpdate(ctx core.ModelCtx) error {
	pos := b.propagate(ctx.Time())
	if err := core.PushEventNow(ctx, "position", pos); err != nil {
		return err
	}
	return ctx.ScheduleUpdate(core.In(b.Period))
}

func (b *OrbitalBeacon) propagate(t core.Time) Position {
	wall := b.Epoch.Add(t.Duration())
	year, month, day := wall.Date()
	hour, min, sec := wall.Clock()

	posECI, _ := satellite.Propagate(b.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	const kmToM = 1000.0
	return Position{X: posECEF.X * kmToM, Y: posECEF.Y * kmToM, Z: posECEF.Z * kmToM}
}
