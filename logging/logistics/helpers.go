// Package logistics defines the structured events published by the item
// logistics passes.
package logistics

import (
	"context"

	"haul-and-hoard/server/logging"
)

const (
	// EventItemsReleased is emitted when a releaser drops items onto litter.
	EventItemsReleased logging.EventType = "logistics.items_released"
	// EventItemsAbsorbed is emitted when an absorber picks items up.
	EventItemsAbsorbed logging.EventType = "logistics.items_absorbed"
	// EventTransferDeferred is emitted when an all-or-nothing transfer fails
	// and will be retried on a later tick.
	EventTransferDeferred logging.EventType = "logistics.transfer_deferred"
	// EventSignalsRecomputed is emitted once per tick after the emission pass
	// rebuilds every structure's advertisement.
	EventSignalsRecomputed logging.EventType = "logistics.signals_recomputed"
	// EventStructurePlaced is emitted when a structure is placed on the grid.
	EventStructurePlaced logging.EventType = "logistics.structure_placed"
	// EventStructureRemoved is emitted when a structure is torn down.
	EventStructureRemoved logging.EventType = "logistics.structure_removed"
)

// ItemQuantity names one item variety and a quantity inside a payload.
type ItemQuantity struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// ItemsReleasedPayload describes one released item count.
type ItemsReleasedPayload struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// ItemsAbsorbedPayload describes one absorbed item count.
type ItemsAbsorbedPayload struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Floating bool   `json:"floating,omitempty"`
}

// TransferDeferredPayload describes a transfer held over to a later tick.
type TransferDeferredPayload struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// SignalsRecomputedPayload summarizes one tick's emission pass.
type SignalsRecomputedPayload struct {
	Structures int `json:"structures"`
	Signals    int `json:"signals"`
}

// StructurePlacedPayload describes a new structure placement.
type StructurePlacedPayload struct {
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Facing string `json:"facing"`
}

// StructureRemovedPayload describes a structure teardown.
type StructureRemovedPayload struct {
	Type    string         `json:"type"`
	Spilled []ItemQuantity `json:"spilled,omitempty"`
}

// ItemsReleased publishes a release event.
func ItemsReleased(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemsReleasedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:     EventItemsReleased,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLogistics,
		Payload:  payload,
		Extra:    extra,
	})
}

// ItemsAbsorbed publishes an absorb event.
func ItemsAbsorbed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ItemsAbsorbedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:     EventItemsAbsorbed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLogistics,
		Payload:  payload,
		Extra:    extra,
	})
}

// TransferDeferred publishes a deferral event.
func TransferDeferred(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload TransferDeferredPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:     EventTransferDeferred,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLogistics,
		Payload:  payload,
		Extra:    extra,
	})
}

// SignalsRecomputed publishes the per-tick emission summary.
func SignalsRecomputed(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SignalsRecomputedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:     EventSignalsRecomputed,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryLogistics,
		Payload:  payload,
		Extra:    extra,
	})
}

// StructurePlaced publishes a placement event.
func StructurePlaced(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload StructurePlacedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:     EventStructurePlaced,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLogistics,
		Payload:  payload,
		Extra:    extra,
	})
}

// StructureRemoved publishes a teardown event.
func StructureRemoved(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload StructureRemovedPayload, extra map[string]any) {
	publish(ctx, pub, logging.Event{
		Type:     EventStructureRemoved,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLogistics,
		Payload:  payload,
		Extra:    extra,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
