package world

import (
	"testing"

	"haul-and-hoard/server/internal/items"
	"haul-and-hoard/server/logging"
	logisticslog "haul-and-hoard/server/logging/logistics"
)

func seedLitter(t *testing.T, w *World, pos TilePos, counts ...items.ItemCount) {
	t.Helper()
	tile, ok := w.TerrainAt(pos)
	if !ok {
		t.Fatalf("no terrain at %s", pos)
	}
	for _, count := range counts {
		if err := tile.Litter.AddAllOrNothing(count); err != nil {
			t.Fatalf("seed litter at %s: %v", pos, err)
		}
	}
}

func TestAbsorbTakesFromOwnCell(t *testing.T) {
	w, recorder := newTestWorld(t, Config{Width: 4, Height: 4, Seed: "test"})
	bin := mustPlace(t, w, StructureCollectionBin, TilePos{X: 1, Y: 1}, FacingDown)
	seedLitter(t, w, TilePos{X: 1, Y: 1}, items.ItemCount{ID: items.ItemBerry, Quantity: 4})

	if err := w.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	output, _ := bin.Role().Absorber()
	if got := output.Total(); got != 4 {
		t.Fatalf("absorbed %d units, want 4", got)
	}
	tile, _ := w.TerrainAt(TilePos{X: 1, Y: 1})
	if tile.Litter.Total() != 0 {
		t.Fatalf("litter retained %d units", tile.Litter.Total())
	}

	absorbed := recorder.ofType("logistics.items_absorbed")
	if len(absorbed) != 1 {
		t.Fatalf("absorb events = %d, want 1", len(absorbed))
	}
	payload, ok := absorbed[0].Payload.(logisticslog.ItemsAbsorbedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", absorbed[0].Payload)
	}
	if payload.Floating {
		t.Fatal("ground absorption reported as floating")
	}
}

func TestAbsorbFloodedCellShortStructure(t *testing.T) {
	// An absorber with footprint 2 stands in water of depth 3. Its ground
	// pass runs unconditionally and takes the berries its only slot accepts;
	// the floating retry is skipped because the footprint does not rise above
	// the water surface, and the filtered-out timber stays in the pool.
	binDef, err := NewStructureDefinition(StructureDefinitionParams{
		ID:        "berry_bin",
		Name:      "Berry Bin",
		Kind:      StructureKindAbsorber,
		MaxHeight: 2,
		Slots:     []SlotConfig{{Filter: items.KindOf(items.ItemBerry), Capacity: 10}},
	})
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	manifest, err := NewStructureManifest([]StructureDefinition{binDef})
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}

	recorder := &eventRecorder{}
	w, err := New(Config{Width: 4, Height: 4, Seed: "test", WaterDepth: 3}, Deps{
		Publisher:  recorder,
		Structures: manifest,
	})
	if err != nil {
		t.Fatalf("build world: %v", err)
	}

	bin := mustPlace(t, w, "berry_bin", TilePos{X: 1, Y: 1}, FacingDown)
	seedLitter(t, w, TilePos{X: 1, Y: 1},
		items.ItemCount{ID: items.ItemBerry, Quantity: 4},
		items.ItemCount{ID: items.ItemTimber, Quantity: 2},
	)

	if err := w.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	output, _ := bin.Role().Absorber()
	if got := output.Total(); got != 4 {
		t.Fatalf("absorbed %d units, want 4", got)
	}
	tile, _ := w.TerrainAt(TilePos{X: 1, Y: 1})
	if got := tile.Litter.Quantity(items.ItemTimber); got != 2 {
		t.Fatalf("timber in litter = %d, want 2", got)
	}
	for _, event := range recorder.ofType("logistics.items_absorbed") {
		payload := event.Payload.(logisticslog.ItemsAbsorbedPayload)
		if payload.Floating {
			t.Fatal("floating pass ran despite footprint below water surface")
		}
	}
}

func TestAbsorbSkipsWhenFull(t *testing.T) {
	w, recorder := newTestWorld(t, Config{Width: 4, Height: 4, Seed: "test"})
	bin := mustPlace(t, w, StructureCollectionBin, TilePos{X: 1, Y: 1}, FacingDown)

	output, _ := bin.Role().Absorber()
	// Both haulable slots cap at 5, the smallest stack size among the tag's
	// members.
	if err := output.AddAllOrNothing(items.ItemCount{ID: items.ItemTimber, Quantity: 10}, w.ItemManifest()); err != nil {
		t.Fatalf("fill bin: %v", err)
	}
	seedLitter(t, w, TilePos{X: 1, Y: 1}, items.ItemCount{ID: items.ItemBerry, Quantity: 2})

	if err := w.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	tile, _ := w.TerrainAt(TilePos{X: 1, Y: 1})
	if got := tile.Litter.Quantity(items.ItemBerry); got != 2 {
		t.Fatalf("full absorber drained litter: %d berries left, want 2", got)
	}
	if got := recorder.ofType("logistics.items_absorbed"); len(got) != 0 {
		t.Fatalf("absorb events = %d, want 0", len(got))
	}
}

func TestAbsorbHonorsSlotFilters(t *testing.T) {
	w, _ := newTestWorld(t, Config{Width: 4, Height: 4, Seed: "test"})
	dock := mustPlace(t, w, StructureExportDock, TilePos{X: 1, Y: 1}, FacingDown)
	seedLitter(t, w, TilePos{X: 1, Y: 1},
		items.ItemCount{ID: items.ItemTimber, Quantity: 3},
		items.ItemCount{ID: items.ItemBerry, Quantity: 2},
	)

	if err := w.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	output, _ := dock.Role().Absorber()
	if got := output.Total(); got != 3 {
		t.Fatalf("dock absorbed %d units, want 3", got)
	}
	tile, _ := w.TerrainAt(TilePos{X: 1, Y: 1})
	if got := tile.Litter.Quantity(items.ItemBerry); got != 2 {
		t.Fatalf("berries in litter = %d, want 2", got)
	}
}

func TestAbsorbAllOrNothingPerCount(t *testing.T) {
	// The pool holds one count too large to fit and one that fits. The large
	// count stays put untouched; a partial absorption never happens.
	w, _ := newTestWorld(t, Config{Width: 4, Height: 4, Seed: "test"})
	bin := mustPlace(t, w, StructureCollectionBin, TilePos{X: 1, Y: 1}, FacingDown)
	seedLitter(t, w, TilePos{X: 1, Y: 1},
		items.ItemCount{ID: items.ItemCompost, Quantity: 12},
		items.ItemCount{ID: items.ItemBerry, Quantity: 3},
	)

	if err := w.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	output, _ := bin.Role().Absorber()
	if got := output.Total(); got != 3 {
		t.Fatalf("bin absorbed %d units, want 3", got)
	}
	tile, _ := w.TerrainAt(TilePos{X: 1, Y: 1})
	if got := tile.Litter.Quantity(items.ItemCompost); got != 12 {
		t.Fatalf("compost in litter = %d, want 12", got)
	}
}

func TestAbsorbEmitsDebugEvents(t *testing.T) {
	w, recorder := newTestWorld(t, Config{Width: 4, Height: 4, Seed: "test"})
	mustPlace(t, w, StructureCollectionBin, TilePos{X: 1, Y: 1}, FacingDown)
	seedLitter(t, w, TilePos{X: 1, Y: 1}, items.ItemCount{ID: items.ItemBerry, Quantity: 1})

	if err := w.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	for _, event := range recorder.ofType("logistics.items_absorbed") {
		if event.Severity != logging.SeverityDebug {
			t.Fatalf("absorb event severity = %d, want debug", event.Severity)
		}
	}
}
