package core

import "math/rand/v2"

// Rng is the handle a ModelCtx samples from. It is injectable so tests can
// pin a deterministic sequence; when a Simulation is built without one,
// ModelCtx falls back to the package-level math/rand/v2 source rather than
// panicking, since handlers call Rand/RandRange unconditionally.
type Rng interface {
	Float64() float64
	Int63n(n int64) int64
}

type defaultRng struct{}

func (defaultRng) Float64() float64      { return rand.Float64() }
func (defaultRng) Int63n(n int64) int64 { return rand.Int64N(n) }
