package world

import (
	"context"
	"errors"
	"fmt"

	"haul-and-hoard/server/internal/items"
	logisticslog "haul-and-hoard/server/logging/logistics"
)

// releaseItems moves items from every releaser's input inventory onto the
// litter pool of the cell the structure faces. Each held count transfers
// all-or-nothing; a count that does not fit stays put and is retried next
// tick.
func (w *World) releaseItems() error {
	for _, s := range w.structuresInOrder() {
		input, ok := s.role.Releaser()
		if !ok {
			continue
		}

		target := Neighbor(s.Pos, s.Facing)
		tile, ok := w.terrain[target]
		if !ok {
			return fmt.Errorf("release from %s toward %s: %w", s.ID, target, ErrMissingTerrain)
		}

		for _, count := range input.Counts() {
			if err := tile.Litter.AddAllOrNothing(count); err != nil {
				if errors.Is(err, ErrDoesNotFit) {
					w.logTransferDeferred(s, count, "litter_full")
					continue
				}
				return fmt.Errorf("release from %s: %v", s.ID, err)
			}
			if err := input.Consume(count); err != nil {
				// The count was just read from the inventory, so a failed
				// consume means the model is corrupted.
				return fmt.Errorf("release from %s: consume %d %q: %w", s.ID, count.Quantity, count.ID, err)
			}
			logisticslog.ItemsReleased(
				context.Background(),
				w.publisher,
				w.tick,
				structureRef(s.ID),
				logisticslog.ItemsReleasedPayload{
					Item:     string(count.ID),
					Quantity: count.Quantity,
					X:        target.X,
					Y:        target.Y,
				},
				nil,
			)
		}
	}
	return nil
}

// logTransferDeferred records a routine all-or-nothing failure. Deferral is
// not an error; the transfer is simply retried on a later tick.
func (w *World) logTransferDeferred(s *Structure, count items.ItemCount, reason string) {
	logisticslog.TransferDeferred(
		context.Background(),
		w.publisher,
		w.tick,
		structureRef(s.ID),
		logisticslog.TransferDeferredPayload{
			Item:     string(count.ID),
			Quantity: count.Quantity,
			Reason:   reason,
		},
		nil,
	)
}
