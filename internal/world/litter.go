package world

import (
	"fmt"
	"sort"

	"haul-and-hoard/server/internal/items"
)

// Litter is the unowned item pool of one grid cell. Contents are unbounded:
// conceptually a mapping from variety to quantity with no capacity ceiling.
// Ground versus floating access is a policy of the absorb pass, not a
// property of the pool.
type Litter struct {
	contents map[items.ItemID]int
}

// NewLitter builds an empty pool.
func NewLitter() *Litter {
	return &Litter{contents: make(map[items.ItemID]int)}
}

// AddAllOrNothing places the full count into the pool, or fails leaving it
// untouched. The pool has no ceiling, so only malformed counts are refused.
func (l *Litter) AddAllOrNothing(count items.ItemCount) error {
	if count.Quantity < 0 {
		return fmt.Errorf("litter add %q: negative quantity %d", count.ID, count.Quantity)
	}
	if count.Quantity == 0 {
		return nil
	}
	if count.ID == "" {
		return fmt.Errorf("litter add: missing item id")
	}
	l.contents[count.ID] += count.Quantity
	return nil
}

// TryRemove takes exactly the given count out of the pool, or fails leaving
// it untouched.
func (l *Litter) TryRemove(count items.ItemCount) error {
	if count.Quantity < 0 {
		return fmt.Errorf("litter remove %q: negative quantity %d", count.ID, count.Quantity)
	}
	if count.Quantity == 0 {
		return nil
	}
	held := l.contents[count.ID]
	if held < count.Quantity {
		return fmt.Errorf("litter remove %d %q, only %d present: %w", count.Quantity, count.ID, held, ErrInsufficientItems)
	}
	if held == count.Quantity {
		delete(l.contents, count.ID)
	} else {
		l.contents[count.ID] = held - count.Quantity
	}
	return nil
}

// Quantity reports how much of a variety the pool holds.
func (l *Litter) Quantity(id items.ItemID) int {
	if l == nil {
		return 0
	}
	return l.contents[id]
}

// Total reports the summed quantity across all varieties.
func (l *Litter) Total() int {
	if l == nil {
		return 0
	}
	total := 0
	for _, qty := range l.contents {
		total += qty
	}
	return total
}

// Counts returns a snapshot of the pool sorted by variety, so iteration over
// the pool is deterministic.
func (l *Litter) Counts() []items.ItemCount {
	if l == nil || len(l.contents) == 0 {
		return nil
	}
	counts := make([]items.ItemCount, 0, len(l.contents))
	for id, qty := range l.contents {
		counts = append(counts, items.ItemCount{ID: id, Quantity: qty})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].ID < counts[j].ID })
	return counts
}
