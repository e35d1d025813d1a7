// Package models collects small, illustrative Model implementations used
// by the end-to-end scenarios and by the demo binary: a FIFO queue, a
// self-rearming timer, a signal-driven sampling generator, a fan-out cloner, a
// ping-pong player, and an orbital beacon driven by SGP4 propagation. None
// of them carry kernel design content — they exist to exercise the
// kernel's contract with concrete, runnable models.
package models

// Signal is the zero-payload marker type used for connectors that carry no
// information beyond "something happened" — e.g. a queue's pop trigger or
// a timer's output.
type Signal struct{}
