package world

import (
	"context"

	"haul-and-hoard/server/internal/items"
	"haul-and-hoard/server/internal/signals"
	"haul-and-hoard/server/logging"
	logisticslog "haul-and-hoard/server/logging/logistics"
)

// logisticsSignalStrength is the fixed magnitude for every logistics signal.
// Strength does not scale with how empty or full a slot is.
const logisticsSignalStrength signals.SignalStrength = 10

// pullSignals derives the demand advertisement for a releaser's input
// inventory: one Pull per slot with room, classified by the slot's
// acceptance filter.
//
// A Pull is emitted rather than a Contains so that goods keep flowing toward
// the structure continuously, not only when it runs fully empty.
func pullSignals(inv *InputInventory) []signals.Signal {
	var out []signals.Signal
	for _, slot := range inv.Slots() {
		if slot.IsFull() {
			continue
		}
		out = append(out, signals.Signal{
			Type:     signals.Pull(slot.Filter),
			Strength: logisticsSignalStrength,
		})
	}
	return out
}

// pushSignals derives the supply advertisement for an absorber's output
// inventory: one Push per occupied slot with room, naming the exact variety
// sitting in that slot.
//
// A Push is emitted rather than a Contains so that the flow of goods out of
// the structure becomes unblocked.
func pushSignals(inv *OutputInventory) []signals.Signal {
	var out []signals.Signal
	for _, slot := range inv.Slots() {
		if slot.IsFull() || slot.IsEmpty() {
			continue
		}
		out = append(out, signals.Signal{
			Type:     signals.Push(items.KindOf(slot.ID)),
			Strength: logisticsSignalStrength,
		})
	}
	return out
}

// emitLogisticsSignals recomputes every structure's advertisement from its
// current inventory occupancy. Emitters are derived state: each is replaced
// wholesale, so re-running with unchanged inventories yields identical
// signal sets and nothing leaks across ticks.
func (w *World) emitLogisticsSignals() {
	structures := w.structuresInOrder()
	total := 0
	for _, s := range structures {
		if input, ok := s.role.Releaser(); ok {
			s.emitter.Replace(pullSignals(input))
		} else if output, ok := s.role.Absorber(); ok {
			s.emitter.Replace(pushSignals(output))
		} else {
			s.emitter.Replace(nil)
		}
		total += s.emitter.Len()
	}
	logisticslog.SignalsRecomputed(
		context.Background(),
		w.publisher,
		w.tick,
		logging.EntityRef{Kind: logging.EntityKindWorld},
		logisticslog.SignalsRecomputedPayload{Structures: len(structures), Signals: total},
		nil,
	)
}
