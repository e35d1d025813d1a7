package core

import "github.com/signalsfoundry/eventkernel/simerr"

// ModelCtx is handed to every Init, HandleUpdate, and input handler
// invocation. It is the only way a running handler influences the kernel:
// reading time, sampling the RNG, pushing events, and scheduling or
// cancelling its own updates.
type ModelCtx struct {
	time    Time
	modelID string
	adj     AdjacentModels
	rng     Rng
	sched   *Scheduler
}

// Time returns the kernel's current time at the moment this context was
// built.
func (c ModelCtx) Time() Time { return c.time }

// ModelID returns the id of the model this context is bound to.
func (c ModelCtx) ModelID() string { return c.modelID }

// Rand samples a float64 from the bound RNG, or the package default if
// none was supplied to the Simulation.
func (c ModelCtx) Rand() float64 { return c.rngOrDefault().Float64() }

// RandRange samples an int64 in [0, n) from the bound RNG.
func (c ModelCtx) RandRange(n int64) int64 { return c.rngOrDefault().Int63n(n) }

func (c ModelCtx) rngOrDefault() Rng {
	if c.rng != nil {
		return c.rng
	}
	return defaultRng{}
}

// ScheduleUpdate schedules an Internal entry on this model at the time
// trigger resolves to.
func (c ModelCtx) ScheduleUpdate(trigger TimeTrigger) error {
	return c.sched.ScheduleUpdate(trigger.Resolve(c.time), c.modelID)
}

// CancelUpdates removes every pending self-update for this model,
// regardless of when it was scheduled.
func (c ModelCtx) CancelUpdates() {
	c.sched.CancelUpdates(c.modelID, nil)
}

// CancelUpdatesBounded removes pending self-updates falling within bounds.
func (c ModelCtx) CancelUpdatesBounded(bounds TimeBounds) {
	c.sched.CancelUpdates(c.modelID, &bounds)
}

func (c ModelCtx) adjacentOutputRoute(output string) (Route, bool) {
	for _, r := range c.adj.Outputs {
		if mp, ok := r.From.ModelPath(); ok && mp.Connector == output {
			return r, true
		}
	}
	return Route{}, false
}

// PushEvent enqueues payload on this model's output connector, routed via
// the adjacency cache to whatever single input it is wired to. If the
// output has no adjacent route, this is a silent no-op — the adopted
// policy for an unwired output (see design notes) — rather than an error.
//
// Go methods cannot introduce new type parameters, so PushEvent is a free
// function taking the ModelCtx as its first argument, mirroring how the
// source's generic ctx.push_event::<T>() call reads.
func PushEvent[T any](ctx ModelCtx, output string, payload T, trigger TimeTrigger) error {
	route, ok := ctx.adjacentOutputRoute(output)
	if !ok {
		return nil
	}
	t := trigger.Resolve(ctx.time)
	erased := EraseEvent(NewEvent(payload))
	return ctx.sched.ScheduleEvent(t, erased, route)
}

// PushEventNow is PushEvent with the default "dispatched this tick" trigger.
func PushEventNow[T any](ctx ModelCtx, output string, payload T) error {
	return PushEvent(ctx, output, payload, Now())
}

// InternalEvent enqueues payload on one of this model's own input
// connectors without going over a wire: its origin is Internal rather than
// Model or External.
func InternalEvent[T any](ctx ModelCtx, target string, payload T, trigger TimeTrigger) error {
	t := trigger.Resolve(ctx.time)
	route := Route{From: InternalSource(ctx.modelID), To: ConnectorPath{Model: ctx.modelID, Connector: target}}
	erased := EraseEvent(NewEvent(payload))
	return ctx.sched.ScheduleEvent(t, erased, route)
}

// InternalEventNow is InternalEvent with the default "dispatched this
// tick" trigger.
func InternalEventNow[T any](ctx ModelCtx, target string, payload T) error {
	return InternalEvent(ctx, target, payload, Now())
}

// ConnectorCtx is a ModelCtx paired with the exclusive borrow of the model
// an input handler is currently running against. It exists only for the
// duration of one handler invocation.
type ConnectorCtx struct {
	ModelCtx
	model Model
}

// BorrowedModel returns the model instance this handler invocation is
// running against.
func (c ConnectorCtx) BorrowedModel() Model { return c.model }

// DispatchObserver is notified around every dispatched Scheduled entry.
// BeforeDispatch is called with "internal" or "event" before the entry
// runs and returns a function to call with the dispatch's outcome once it
// finishes — the shape a tracing layer needs to open and close a span per
// dispatch without core itself depending on any tracing library. A
// Simulation with no observer set skips this entirely.
type DispatchObserver interface {
	BeforeDispatch(kind string) func(err error)
}

// Simulation drives a validated SystemModel forward in time: dispatching
// scheduled entries one bucket at a time, exposing external scheduling,
// and stepping or running to completion.
type Simulation struct {
	system *SystemModel
	sched  *Scheduler
	rng    Rng
	obs    DispatchObserver
}

// SetDispatchObserver installs (or clears, with nil) the observer notified
// around each dispatched entry.
func (sim *Simulation) SetDispatchObserver(obs DispatchObserver) { sim.obs = obs }

// New validates system, installs a scheduler at initialTime, and calls
// Init on every registered model in stable (registration) order, each
// under its own borrow. rng may be nil.
func New(system *SystemModel, initialTime Time, rng Rng) (*Simulation, error) {
	if err := system.Validate(); err != nil {
		return nil, err
	}

	sim := &Simulation{system: system, sched: NewScheduler(initialTime), rng: rng}

	for _, id := range system.Models().Order() {
		m, err := system.Models().Borrow(id)
		if err != nil {
			return nil, err
		}
		ctx := sim.modelCtx(id, m)
		initErr := m.Init(ctx)
		relErr := system.Models().Release(id)
		if initErr != nil {
			return nil, initErr
		}
		if relErr != nil {
			return nil, relErr
		}
	}

	return sim, nil
}

func (sim *Simulation) modelCtx(id string, _ Model) ModelCtx {
	return ModelCtx{
		time:    sim.sched.CurrentTime(),
		modelID: id,
		adj:     sim.system.Adjacency(id),
		rng:     sim.rng,
		sched:   sim.sched,
	}
}

// CurrentTime returns the kernel's current time.
func (sim *Simulation) CurrentTime() Time { return sim.sched.CurrentTime() }

// PendingCount returns the total number of entries queued across every
// bucket, for tests and metrics.
func (sim *Simulation) PendingCount() int { return sim.sched.PendingCount() }

// PeekNextTime returns the earliest pending time without dispatching
// anything, for callers (telemetry, tooling) that need RunUntil's
// exclusive-stop comparison without reimplementing Step.
func (sim *Simulation) PeekNextTime() (Time, bool) { return sim.sched.PeekNextTime() }

// ScheduleExternalEvent enqueues a future event produced outside the
// kernel, addressed directly at a connector path. It must not be in the
// past.
func ScheduleExternalEvent[T any](sim *Simulation, t Time, payload T, target ConnectorPath) error {
	erased := EraseEvent(NewEvent(payload))
	route := Route{From: ExternalSource(), To: target}
	return sim.sched.ScheduleEvent(t, erased, route)
}

// Step pops the next bucket and dispatches every entry in it in order,
// returning early on the first error. A Step on an empty queue is a no-op.
func (sim *Simulation) Step() error {
	entries, ok := sim.sched.PopNext()
	if !ok {
		return nil
	}
	for _, e := range entries {
		if err := sim.dispatch(e); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil steps repeatedly while the next pending time is strictly before
// tMax — inclusive semantics: it stops as soon as the next pending time
// would meet or exceed tMax, so the event exactly at tMax is never
// dispatched by this call.
func (sim *Simulation) RunUntil(tMax Time) error {
	for {
		next, ok := sim.sched.PeekNextTime()
		if !ok || !next.Before(tMax) {
			return nil
		}
		if err := sim.Step(); err != nil {
			return err
		}
	}
}

// Run steps until the queue is drained.
func (sim *Simulation) Run() error {
	return sim.RunUntil(MaxTime)
}

func (sim *Simulation) dispatch(e Scheduled) error {
	var end func(error)
	if sim.obs != nil {
		kind := "internal"
		if e.Kind == ScheduledEvent {
			kind = "event"
		}
		end = sim.obs.BeforeDispatch(kind)
	}

	var err error
	switch e.Kind {
	case ScheduledInternal:
		err = sim.dispatchInternal(e.ModelID)
	case ScheduledEvent:
		err = sim.dispatchEvent(e.Event, e.Route)
	}

	if end != nil {
		end(err)
	}
	return err
}

func (sim *Simulation) dispatchInternal(modelID string) error {
	m, err := sim.system.Models().Borrow(modelID)
	if err != nil {
		return err
	}
	defer sim.system.Models().Release(modelID)

	ctx := sim.modelCtx(modelID, m)
	return m.HandleUpdate(ctx)
}

func (sim *Simulation) dispatchEvent(erased ErasedEvent, route Route) error {
	targetID := route.To.Model
	m, err := sim.system.Models().Borrow(targetID)
	if err != nil {
		return err
	}
	defer sim.system.Models().Release(targetID)

	idx, ok := findInputIndex(m, route.To.Connector)
	if !ok {
		return &simerr.UnknownModelConnectorError{Model: targetID, Connector: route.To.Connector}
	}
	handler, ok := m.InputHandler(idx)
	if !ok {
		return &simerr.UnknownModelConnectorError{Model: targetID, Connector: route.To.Connector}
	}

	ctx := ConnectorCtx{ModelCtx: sim.modelCtx(targetID, m), model: m}
	return handler.Apply(erased, ctx)
}
