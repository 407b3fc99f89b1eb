package sim

import (
	"haul-and-hoard/server/internal/telemetry"
	"haul-and-hoard/server/internal/world"
)

// WorldEngine adapts a world instance to the Engine interface, translating
// commands into world mutations.
type WorldEngine struct {
	world   *world.World
	logger  telemetry.Logger
	metrics telemetry.Metrics
}

// NewWorldEngine wraps the given world. Logger and metrics may be nil.
func NewWorldEngine(w *world.World, logger telemetry.Logger, metrics telemetry.Metrics) *WorldEngine {
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	return &WorldEngine{world: w, logger: logger, metrics: metrics}
}

// World exposes the wrapped world for wiring and tests.
func (e *WorldEngine) World() *world.World {
	if e == nil {
		return nil
	}
	return e.world
}

// Apply processes queued commands in arrival order. A rejected command is
// logged and skipped; it never stops the tick.
func (e *WorldEngine) Apply(cmds []Command) {
	for _, cmd := range cmds {
		switch cmd.Type {
		case CommandPlaceStructure:
			if cmd.Place == nil {
				continue
			}
			_, err := e.world.PlaceStructure(
				world.StructureType(cmd.Place.StructureType),
				world.TilePos{X: cmd.Place.X, Y: cmd.Place.Y},
				world.FacingDirection(cmd.Place.Facing),
			)
			if err != nil {
				e.logger.Printf("place command rejected: %v", err)
				e.count("sim.commands_rejected", 1)
				continue
			}
			e.count("sim.structures_placed", 1)
		case CommandRemoveStructure:
			if cmd.Remove == nil {
				continue
			}
			if err := e.world.RemoveStructure(world.StructureID(cmd.Remove.StructureID)); err != nil {
				e.logger.Printf("remove command rejected: %v", err)
				e.count("sim.commands_rejected", 1)
				continue
			}
			e.count("sim.structures_removed", 1)
		default:
			e.logger.Printf("unknown command type %q", cmd.Type)
			e.count("sim.commands_rejected", 1)
		}
	}
}

// Step advances the world by one tick.
func (e *WorldEngine) Step() error {
	if err := e.world.Step(); err != nil {
		return err
	}
	e.count("sim.ticks", 1)
	return nil
}

// CurrentTick reports the tick of the most recent Step.
func (e *WorldEngine) CurrentTick() uint64 {
	return e.world.CurrentTick()
}

// Snapshot captures the externally observable state of the current tick.
func (e *WorldEngine) Snapshot() world.Snapshot {
	return e.world.Snapshot()
}

func (e *WorldEngine) count(key string, delta uint64) {
	if e.metrics == nil {
		return
	}
	e.metrics.Add(key, delta)
}
