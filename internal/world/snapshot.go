package world

import (
	"sort"

	"haul-and-hoard/server/internal/items"
)

// SignalSnapshot is the wire form of one advertised signal. Exactly one of
// ItemID and ItemTag is set, mirroring the signal's item classification.
type SignalSnapshot struct {
	Kind     string  `json:"kind"`
	ItemID   string  `json:"item_id,omitempty"`
	ItemTag  string  `json:"item_tag,omitempty"`
	Strength float64 `json:"strength"`
}

// StructureSnapshot is the broadcast view of one placed structure.
type StructureSnapshot struct {
	ID      string           `json:"id"`
	Type    string           `json:"type"`
	Pos     TilePos          `json:"pos"`
	Facing  string           `json:"facing"`
	Signals []SignalSnapshot `json:"signals,omitempty"`
}

// LitterSnapshot is the broadcast view of one cell's litter pool. Cells with
// empty pools are omitted from snapshots.
type LitterSnapshot struct {
	Pos      TilePos           `json:"pos"`
	Contents []items.ItemCount `json:"contents"`
}

// Snapshot is a consistent copy of the externally observable world state for
// one tick.
type Snapshot struct {
	Tick       uint64              `json:"tick"`
	Structures []StructureSnapshot `json:"structures"`
	Litter     []LitterSnapshot    `json:"litter"`
}

// Snapshot captures the current tick's structures, advertisements, and
// litter pools in deterministic order.
func (w *World) Snapshot() Snapshot {
	snapshot := Snapshot{Tick: w.tick}

	for _, s := range w.structuresInOrder() {
		entry := StructureSnapshot{
			ID:     string(s.ID),
			Type:   string(s.Type),
			Pos:    s.Pos,
			Facing: string(s.Facing),
		}
		for _, sig := range s.Signals() {
			wire := SignalSnapshot{
				Kind:     string(sig.Type.Kind),
				Strength: float64(sig.Strength),
			}
			if id, ok := sig.Type.Item.Single(); ok {
				wire.ItemID = string(id)
			} else if tag, ok := sig.Type.Item.Tag(); ok {
				wire.ItemTag = string(tag)
			}
			entry.Signals = append(entry.Signals, wire)
		}
		snapshot.Structures = append(snapshot.Structures, entry)
	}

	positions := make([]TilePos, 0, len(w.terrain))
	for pos, tile := range w.terrain {
		if tile.Litter.Total() == 0 {
			continue
		}
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Y != positions[j].Y {
			return positions[i].Y < positions[j].Y
		}
		return positions[i].X < positions[j].X
	})
	for _, pos := range positions {
		snapshot.Litter = append(snapshot.Litter, LitterSnapshot{
			Pos:      pos,
			Contents: w.terrain[pos].Litter.Counts(),
		})
	}

	return snapshot
}
