package world

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"haul-and-hoard/server/internal/items"
	"haul-and-hoard/server/logging"
	logisticslog "haul-and-hoard/server/logging/logistics"
)

// Deps bundles runtime dependencies required to construct a World instance.
type Deps struct {
	Publisher  logging.Publisher
	Items      *items.Manifest
	Structures *StructureManifest
}

// World owns the terrain grid, the placed structures, and the per-tick
// logistics passes that move items between them.
type World struct {
	config Config

	publisher     logging.Publisher
	items         *items.Manifest
	structureDefs *StructureManifest
	rng           *rand.Rand

	terrain    map[TilePos]*TerrainTile
	structures map[StructureID]*Structure
	byPos      map[TilePos]StructureID

	nextStructureID uint64
	tick            uint64
}

// New constructs a world with normalized configuration, seeded terrain, and
// no structures placed.
func New(cfg Config, deps Deps) (*World, error) {
	normalized := cfg.normalized()

	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	itemManifest := deps.Items
	if itemManifest == nil {
		itemManifest = items.DefaultManifest()
	}
	structureDefs := deps.Structures
	if structureDefs == nil {
		structureDefs = DefaultStructureManifest()
	}

	w := &World{
		config:        normalized,
		publisher:     publisher,
		items:         itemManifest,
		structureDefs: structureDefs,
		rng:           rand.New(rand.NewSource(seedFor(normalized.Seed, "terrain"))),
		terrain:       make(map[TilePos]*TerrainTile, normalized.Width*normalized.Height),
		structures:    make(map[StructureID]*Structure),
		byPos:         make(map[TilePos]StructureID),
	}
	w.generateTerrain()
	return w, nil
}

// seedFor derives a deterministic RNG seed from the world seed and a label.
func seedFor(seed, label string) int64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	h.Write([]byte{0})
	h.Write([]byte(label))
	return int64(h.Sum64())
}

// generateTerrain creates one terrain tile per grid cell. Iteration is in
// row-major order so a given seed always yields the same marsh layout.
func (w *World) generateTerrain() {
	for y := 0; y < w.config.Height; y++ {
		for x := 0; x < w.config.Width; x++ {
			pos := TilePos{X: x, Y: y}
			depth := w.config.WaterDepth
			if w.config.MarshChance > 0 && w.rng.Float64() < w.config.MarshChance {
				depth = w.config.MarshDepth
			}
			w.terrain[pos] = NewTerrainTile(pos, depth)
		}
	}
}

// Config returns the normalized configuration captured at construction time.
func (w *World) Config() Config {
	return w.config
}

// CurrentTick reports the tick of the most recent Step.
func (w *World) CurrentTick() uint64 {
	return w.tick
}

// ItemManifest exposes the read-only item catalog.
func (w *World) ItemManifest() *items.Manifest {
	return w.items
}

// StructureManifest exposes the read-only structure catalog.
func (w *World) StructureManifest() *StructureManifest {
	return w.structureDefs
}

// TerrainAt looks up the terrain entity occupying a cell.
func (w *World) TerrainAt(pos TilePos) (*TerrainTile, bool) {
	tile, ok := w.terrain[pos]
	return tile, ok
}

// Structure looks up a placed structure by identifier.
func (w *World) Structure(id StructureID) (*Structure, bool) {
	s, ok := w.structures[id]
	return s, ok
}

// StructureAt looks up the structure occupying a cell, if any.
func (w *World) StructureAt(pos TilePos) (*Structure, bool) {
	id, ok := w.byPos[pos]
	if !ok {
		return nil, false
	}
	return w.structures[id], true
}

func (w *World) inBounds(pos TilePos) bool {
	return pos.X >= 0 && pos.X < w.config.Width && pos.Y >= 0 && pos.Y < w.config.Height
}

// PlaceStructure instantiates a structure variety at the given cell. The
// inventories are sized from the item manifest's stack sizes.
func (w *World) PlaceStructure(stype StructureType, pos TilePos, facing FacingDirection) (*Structure, error) {
	def, ok := w.structureDefs.Definition(stype)
	if !ok {
		return nil, fmt.Errorf("place %q: %w", stype, ErrUnknownStructureType)
	}
	if facing == "" {
		facing = FacingDown
	}
	if !facing.Valid() {
		return nil, fmt.Errorf("place %q facing %q: %w", stype, facing, ErrInvalidFacing)
	}
	if !w.inBounds(pos) {
		return nil, fmt.Errorf("place %q at %s: %w", stype, pos, ErrOutOfBounds)
	}
	if _, occupied := w.byPos[pos]; occupied {
		return nil, fmt.Errorf("place %q at %s: %w", stype, pos, ErrCellOccupied)
	}

	role := NoRole()
	switch def.Kind {
	case StructureKindReleaser:
		slots, err := buildSlots(def, w.items)
		if err != nil {
			return nil, err
		}
		role = ReleaserRole(InputInventory{Inventory: NewInventory(slots)})
	case StructureKindAbsorber:
		slots, err := buildSlots(def, w.items)
		if err != nil {
			return nil, err
		}
		role = AbsorberRole(OutputInventory{Inventory: NewInventory(slots)})
	}

	w.nextStructureID++
	s := &Structure{
		ID:        StructureID(fmt.Sprintf("structure-%d", w.nextStructureID)),
		Type:      stype,
		Pos:       pos,
		Facing:    facing,
		Footprint: def.Footprint,
		role:      role,
	}
	w.structures[s.ID] = s
	w.byPos[pos] = s.ID

	logisticslog.StructurePlaced(
		context.Background(),
		w.publisher,
		w.tick,
		structureRef(s.ID),
		logisticslog.StructurePlacedPayload{Type: string(stype), X: pos.X, Y: pos.Y, Facing: string(facing)},
		nil,
	)
	return s, nil
}

// RemoveStructure tears a structure down, spilling any held items onto its
// own cell's litter pool so nothing is destroyed.
func (w *World) RemoveStructure(id StructureID) error {
	s, ok := w.structures[id]
	if !ok {
		return fmt.Errorf("remove %q: %w", id, ErrUnknownStructure)
	}

	var inv *Inventory
	if input, ok := s.role.Releaser(); ok {
		inv = &input.Inventory
	} else if output, ok := s.role.Absorber(); ok {
		inv = &output.Inventory
	}

	var spilled []items.ItemCount
	if inv != nil {
		tile, ok := w.terrain[s.Pos]
		if !ok {
			return fmt.Errorf("remove %q at %s: %w", id, s.Pos, ErrMissingTerrain)
		}
		for _, count := range inv.Counts() {
			if err := tile.Litter.AddAllOrNothing(count); err != nil {
				return fmt.Errorf("remove %q: spill %d %q: %v", id, count.Quantity, count.ID, err)
			}
			if err := inv.TryRemove(count); err != nil {
				return fmt.Errorf("remove %q: drain %d %q: %v", id, count.Quantity, count.ID, err)
			}
			spilled = append(spilled, count)
		}
	}

	delete(w.structures, id)
	delete(w.byPos, s.Pos)

	logisticslog.StructureRemoved(
		context.Background(),
		w.publisher,
		w.tick,
		structureRef(id),
		logisticslog.StructureRemovedPayload{Type: string(s.Type), Spilled: toSpilledCounts(spilled)},
		nil,
	)
	return nil
}

// Step advances the simulation by one tick: release, then absorb, then
// signal emission. Any invariant breach aborts the tick with an error.
func (w *World) Step() error {
	w.tick++
	if err := w.releaseItems(); err != nil {
		return fmt.Errorf("tick %d: %w", w.tick, err)
	}
	if err := w.absorbItems(); err != nil {
		return fmt.Errorf("tick %d: %w", w.tick, err)
	}
	w.emitLogisticsSignals()
	return nil
}

// structuresInOrder returns the placed structures sorted by identifier, so
// every per-tick pass visits them in a deterministic order.
func (w *World) structuresInOrder() []*Structure {
	ordered := make([]*Structure, 0, len(w.structures))
	for _, s := range w.structures {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return ordered
}

func structureRef(id StructureID) logging.EntityRef {
	return logging.EntityRef{ID: string(id), Kind: logging.EntityKindStructure}
}

func toSpilledCounts(counts []items.ItemCount) []logisticslog.ItemQuantity {
	if len(counts) == 0 {
		return nil
	}
	out := make([]logisticslog.ItemQuantity, 0, len(counts))
	for _, count := range counts {
		out = append(out, logisticslog.ItemQuantity{Item: string(count.ID), Quantity: count.Quantity})
	}
	return out
}
