package sim

import "haul-and-hoard/server/internal/world"

// Engine defines the surface the loop drives once per tick.
type Engine interface {
	// Apply processes queued commands before the tick's passes run.
	// Rejected commands are reported, not fatal.
	Apply([]Command)
	// Step advances the simulation by one tick. An error means the world
	// state is corrupted and the loop must stop.
	Step() error
	// CurrentTick reports the tick of the most recent Step.
	CurrentTick() uint64
	// Snapshot captures the externally observable state of the current tick.
	Snapshot() world.Snapshot
}
