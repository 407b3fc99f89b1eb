package world

import (
	"context"
	"errors"
	"fmt"

	logisticslog "haul-and-hoard/server/logging/logistics"
)

// absorbItems moves litter from each absorber's own cell into its output
// inventory. The first pass models ground-level pickup and always runs. A
// second pass reruns over whatever the first left behind, but only when the
// structure's footprint rises above the cell's water surface: that is the
// reach needed to skim floating items. Ground access therefore always comes
// before floating access, and the floating pass only ever sees the ground
// pass's leftovers.
func (w *World) absorbItems() error {
	for _, s := range w.structuresInOrder() {
		output, ok := s.role.Absorber()
		if !ok {
			continue
		}

		output.ClearEmptySlots()
		if output.IsFull() {
			continue
		}

		tile, ok := w.terrain[s.Pos]
		if !ok {
			return fmt.Errorf("absorb at %s for %s: %w", s.Pos, s.ID, ErrMissingTerrain)
		}

		if err := w.absorbPass(s, output, tile, false); err != nil {
			return err
		}

		if s.Footprint.MaxHeight > tile.SurfaceWaterDepth {
			if err := w.absorbPass(s, output, tile, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// absorbPass snapshots the litter pool and attempts to move every count into
// the output inventory, all-or-nothing per count.
func (w *World) absorbPass(s *Structure, output *OutputInventory, tile *TerrainTile, floating bool) error {
	for _, count := range tile.Litter.Counts() {
		if err := output.AddAllOrNothing(count, w.items); err != nil {
			if errors.Is(err, ErrDoesNotFit) {
				continue
			}
			return fmt.Errorf("absorb at %s: %v", s.Pos, err)
		}
		if err := tile.Litter.TryRemove(count); err != nil {
			// The count was just read from the pool, so a failed removal
			// means the model is corrupted.
			return fmt.Errorf("absorb at %s: remove %d %q: %w", s.Pos, count.Quantity, count.ID, err)
		}
		logisticslog.ItemsAbsorbed(
			context.Background(),
			w.publisher,
			w.tick,
			structureRef(s.ID),
			logisticslog.ItemsAbsorbedPayload{
				Item:     string(count.ID),
				Quantity: count.Quantity,
				Floating: floating,
			},
			nil,
		)
	}
	return nil
}
