package sim

import (
	"testing"

	"haul-and-hoard/server/internal/world"
)

func newTestEngine(t *testing.T) *WorldEngine {
	t.Helper()
	w, err := world.New(world.Config{Width: 6, Height: 6, Seed: "test"}, world.Deps{})
	if err != nil {
		t.Fatalf("build world: %v", err)
	}
	return NewWorldEngine(w, nil, nil)
}

func TestEngineAppliesPlaceCommand(t *testing.T) {
	engine := newTestEngine(t)

	engine.Apply([]Command{{
		Type:  CommandPlaceStructure,
		Place: &PlaceStructureCommand{StructureType: "granary_chute", X: 2, Y: 2, Facing: "down"},
	}})

	if _, ok := engine.World().StructureAt(world.TilePos{X: 2, Y: 2}); !ok {
		t.Fatal("structure not placed")
	}
}

func TestEngineAppliesRemoveCommand(t *testing.T) {
	engine := newTestEngine(t)
	s, err := engine.World().PlaceStructure("gravel_path", world.TilePos{X: 1, Y: 1}, "down")
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	engine.Apply([]Command{{
		Type:   CommandRemoveStructure,
		Remove: &RemoveStructureCommand{StructureID: string(s.ID)},
	}})

	if _, ok := engine.World().Structure(s.ID); ok {
		t.Fatal("structure not removed")
	}
}

func TestEngineRejectionsDoNotStopTheBatch(t *testing.T) {
	engine := newTestEngine(t)

	engine.Apply([]Command{
		{Type: CommandPlaceStructure, Place: &PlaceStructureCommand{StructureType: "windmill", X: 0, Y: 0}},
		{Type: "unknown"},
		{Type: CommandPlaceStructure},
		{Type: CommandRemoveStructure},
		{Type: CommandPlaceStructure, Place: &PlaceStructureCommand{StructureType: "gravel_path", X: 3, Y: 3}},
	})

	if _, ok := engine.World().StructureAt(world.TilePos{X: 3, Y: 3}); !ok {
		t.Fatal("valid command after rejections was skipped")
	}
}

func TestEngineStepAndSnapshot(t *testing.T) {
	engine := newTestEngine(t)

	if err := engine.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if engine.CurrentTick() != 1 {
		t.Fatalf("CurrentTick() = %d, want 1", engine.CurrentTick())
	}
	if snapshot := engine.Snapshot(); snapshot.Tick != 1 {
		t.Fatalf("snapshot tick = %d, want 1", snapshot.Tick)
	}
}
