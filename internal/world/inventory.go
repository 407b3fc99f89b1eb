package world

import (
	"fmt"
	"sort"

	"haul-and-hoard/server/internal/items"
)

// Slot is one compartment of an inventory. It holds at most one item variety
// at a time, capped at Capacity, and only ever a variety satisfying Filter.
type Slot struct {
	Filter   items.ItemKind
	ID       items.ItemID
	Quantity int
	Capacity int
}

// NewSlot builds an empty slot with the given acceptance filter and capacity.
func NewSlot(filter items.ItemKind, capacity int) Slot {
	return Slot{Filter: filter, Capacity: capacity}
}

// IsEmpty reports whether the slot holds nothing.
func (s Slot) IsEmpty() bool {
	return s.Quantity == 0
}

// IsFull reports whether the slot is at capacity.
func (s Slot) IsFull() bool {
	return s.Quantity >= s.Capacity
}

// Room reports how many more units the slot can take.
func (s Slot) Room() int {
	if s.Quantity >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Quantity
}

// accepts reports whether the slot can take more of the given variety: the
// filter must match and the slot must be empty or already hold that variety.
func (s Slot) accepts(id items.ItemID, manifest *items.Manifest) bool {
	if !s.Filter.Matches(id, manifest) {
		return false
	}
	return s.Quantity == 0 || s.ID == id
}

// Inventory is an ordered sequence of slots with transactional add and
// remove operations. byItem is an iteration cache mapping a variety to the
// slot indexes last seen holding it; removals leave it stale until
// ClearEmptySlots prunes it. Every occupied slot is always present in the
// cache under its held variety.
type Inventory struct {
	slots  []Slot
	byItem map[items.ItemID][]int
}

// NewInventory builds an inventory over the given slots.
func NewInventory(slots []Slot) Inventory {
	inv := Inventory{
		slots:  append([]Slot(nil), slots...),
		byItem: make(map[items.ItemID][]int),
	}
	for i, slot := range inv.slots {
		if slot.Quantity > 0 && slot.ID != "" {
			inv.byItem[slot.ID] = append(inv.byItem[slot.ID], i)
		}
	}
	return inv
}

// AddAllOrNothing places the full count into filter-compatible slots, or
// fails leaving the inventory untouched.
func (inv *Inventory) AddAllOrNothing(count items.ItemCount, manifest *items.Manifest) error {
	if count.Quantity < 0 {
		return fmt.Errorf("add %q: negative quantity %d", count.ID, count.Quantity)
	}
	if count.Quantity == 0 {
		return nil
	}
	if count.ID == "" {
		return fmt.Errorf("add: missing item id")
	}

	candidates := make([]int, 0, len(inv.slots))
	room := 0
	for i, slot := range inv.slots {
		if !slot.accepts(count.ID, manifest) {
			continue
		}
		candidates = append(candidates, i)
		room += slot.Room()
	}
	if room < count.Quantity {
		return fmt.Errorf("add %d %q: %w", count.Quantity, count.ID, ErrDoesNotFit)
	}

	remaining := count.Quantity
	for _, i := range candidates {
		if remaining == 0 {
			break
		}
		slot := &inv.slots[i]
		take := slot.Room()
		if take > remaining {
			take = remaining
		}
		if take == 0 {
			continue
		}
		if slot.Quantity == 0 {
			slot.ID = count.ID
			inv.cacheSlot(count.ID, i)
		}
		slot.Quantity += take
		remaining -= take
	}
	return nil
}

// TryRemove takes exactly the given count out of the inventory, or fails
// leaving it untouched.
func (inv *Inventory) TryRemove(count items.ItemCount) error {
	if count.Quantity < 0 {
		return fmt.Errorf("remove %q: negative quantity %d", count.ID, count.Quantity)
	}
	if count.Quantity == 0 {
		return nil
	}

	held := 0
	holders := make([]int, 0, len(inv.byItem[count.ID]))
	for _, i := range inv.byItem[count.ID] {
		slot := inv.slots[i]
		if slot.ID != count.ID || slot.Quantity == 0 {
			continue // stale cache entry
		}
		holders = append(holders, i)
		held += slot.Quantity
	}
	if held < count.Quantity {
		return fmt.Errorf("remove %d %q, only %d held: %w", count.Quantity, count.ID, held, ErrInsufficientItems)
	}

	sort.Ints(holders)
	remaining := count.Quantity
	for _, i := range holders {
		if remaining == 0 {
			break
		}
		slot := &inv.slots[i]
		take := slot.Quantity
		if take > remaining {
			take = remaining
		}
		slot.Quantity -= take
		remaining -= take
		if slot.Quantity == 0 {
			slot.ID = ""
		}
	}
	return nil
}

// ClearEmptySlots prunes cache entries that no longer point at a slot
// holding their variety. Slots and capacity are untouched.
func (inv *Inventory) ClearEmptySlots() {
	for id, indexes := range inv.byItem {
		live := indexes[:0]
		for _, i := range indexes {
			if inv.slots[i].ID == id && inv.slots[i].Quantity > 0 {
				live = append(live, i)
			}
		}
		if len(live) == 0 {
			delete(inv.byItem, id)
			continue
		}
		inv.byItem[id] = live
	}
}

// IsFull reports whether every slot is at capacity.
func (inv *Inventory) IsFull() bool {
	for _, slot := range inv.slots {
		if !slot.IsFull() {
			return false
		}
	}
	return true
}

// Counts aggregates the held quantities per variety, in slot order.
func (inv *Inventory) Counts() []items.ItemCount {
	order := make([]items.ItemID, 0, len(inv.slots))
	totals := make(map[items.ItemID]int, len(inv.slots))
	for _, slot := range inv.slots {
		if slot.Quantity == 0 || slot.ID == "" {
			continue
		}
		if _, seen := totals[slot.ID]; !seen {
			order = append(order, slot.ID)
		}
		totals[slot.ID] += slot.Quantity
	}
	counts := make([]items.ItemCount, 0, len(order))
	for _, id := range order {
		counts = append(counts, items.ItemCount{ID: id, Quantity: totals[id]})
	}
	return counts
}

// Total reports the summed quantity across all slots.
func (inv *Inventory) Total() int {
	total := 0
	for _, slot := range inv.slots {
		total += slot.Quantity
	}
	return total
}

// Slots returns a copy of the slot sequence.
func (inv *Inventory) Slots() []Slot {
	return append([]Slot(nil), inv.slots...)
}

// Clone returns a deep copy suitable for snapshots and rollback.
func (inv *Inventory) Clone() Inventory {
	cloned := Inventory{
		slots:  append([]Slot(nil), inv.slots...),
		byItem: make(map[items.ItemID][]int, len(inv.byItem)),
	}
	for id, indexes := range inv.byItem {
		cloned.byItem[id] = append([]int(nil), indexes...)
	}
	return cloned
}

func (inv *Inventory) cacheSlot(id items.ItemID, index int) {
	for _, i := range inv.byItem[id] {
		if i == index {
			return
		}
	}
	inv.byItem[id] = append(inv.byItem[id], index)
}

// InputInventory receives items pushed in by upstream producers and is the
// source for the release pass.
type InputInventory struct {
	Inventory
}

// Consume removes exactly the given count, modeling a single-item exact
// recipe input. Failure means the caller's bookkeeping has diverged from the
// inventory contents.
func (inv *InputInventory) Consume(count items.ItemCount) error {
	return inv.TryRemove(count)
}

// OutputInventory is the destination for the absorb pass and the pool that
// downstream consumers draw from.
type OutputInventory struct {
	Inventory
}
