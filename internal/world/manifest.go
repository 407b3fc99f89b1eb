package world

import (
	"fmt"
	"sort"

	"haul-and-hoard/server/internal/items"
)

// StructureKind determines which logistics role a structure variety gets.
type StructureKind string

const (
	// StructureKindReleaser marks a variety that spits items out.
	StructureKindReleaser StructureKind = "releaser"
	// StructureKindAbsorber marks a variety that takes items in.
	StructureKindAbsorber StructureKind = "absorber"
	// StructureKindPath marks a walkable variety with no logistics role.
	StructureKindPath StructureKind = "path"
)

// SlotConfig declares one inventory compartment for a structure variety.
type SlotConfig struct {
	Filter items.ItemKind
	// Capacity overrides the stack-size-derived capacity when positive.
	Capacity int
}

// StructureDefinition is the read-only record for one structure variety.
type StructureDefinition struct {
	ID          StructureType
	Name        string
	Description string
	Kind        StructureKind
	Footprint   Footprint
	WalkThrough bool
	// MaxWorkers is consumed by job assignment outside this core.
	MaxWorkers int
	Slots      []SlotConfig
}

// StructureDefinitionParams captures the raw inputs used to author a
// definition.
type StructureDefinitionParams struct {
	ID          StructureType
	Name        string
	Description string
	Kind        StructureKind
	MaxHeight   Height
	WalkThrough bool
	MaxWorkers  int
	Slots       []SlotConfig
}

// NewStructureDefinition validates the params and produces a definition.
func NewStructureDefinition(params StructureDefinitionParams) (StructureDefinition, error) {
	if params.ID == "" {
		return StructureDefinition{}, fmt.Errorf("structure definition missing id")
	}
	if params.Name == "" {
		return StructureDefinition{}, fmt.Errorf("structure definition %q missing name", params.ID)
	}
	switch params.Kind {
	case StructureKindReleaser, StructureKindAbsorber:
		if len(params.Slots) == 0 {
			return StructureDefinition{}, fmt.Errorf("structure definition %q requires at least one slot", params.ID)
		}
	case StructureKindPath:
		if len(params.Slots) > 0 {
			return StructureDefinition{}, fmt.Errorf("structure definition %q cannot carry slots", params.ID)
		}
	default:
		return StructureDefinition{}, fmt.Errorf("structure definition %q has unknown kind %q", params.ID, params.Kind)
	}
	for i, slot := range params.Slots {
		if slot.Filter.IsZero() {
			return StructureDefinition{}, fmt.Errorf("structure definition %q slot %d missing filter", params.ID, i)
		}
		if slot.Capacity < 0 {
			return StructureDefinition{}, fmt.Errorf("structure definition %q slot %d has negative capacity", params.ID, i)
		}
	}
	height := params.MaxHeight
	if height < 1 {
		height = 1
	}
	return StructureDefinition{
		ID:          params.ID,
		Name:        params.Name,
		Description: params.Description,
		Kind:        params.Kind,
		Footprint:   Footprint{MaxHeight: height},
		WalkThrough: params.WalkThrough,
		MaxWorkers:  params.MaxWorkers,
		Slots:       append([]SlotConfig(nil), params.Slots...),
	}, nil
}

// StructureManifest stores the read-only definitions for every structure
// variety.
type StructureManifest struct {
	defs map[StructureType]StructureDefinition
}

// NewStructureManifest indexes the provided definitions, rejecting
// duplicates.
func NewStructureManifest(defs []StructureDefinition) (*StructureManifest, error) {
	manifest := &StructureManifest{defs: make(map[StructureType]StructureDefinition, len(defs))}
	for _, def := range defs {
		if _, dup := manifest.defs[def.ID]; dup {
			return nil, fmt.Errorf("duplicate structure definition %q", def.ID)
		}
		manifest.defs[def.ID] = def
	}
	return manifest, nil
}

// Definition fetches the definition for a given variety.
func (m *StructureManifest) Definition(id StructureType) (StructureDefinition, bool) {
	if m == nil {
		return StructureDefinition{}, false
	}
	def, ok := m.defs[id]
	return def, ok
}

// Definitions returns every definition sorted by identifier.
func (m *StructureManifest) Definitions() []StructureDefinition {
	if m == nil {
		return nil
	}
	defs := make([]StructureDefinition, 0, len(m.defs))
	for _, def := range m.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// buildSlots instantiates the slot sequence for a definition. Capacities come
// from the item manifest's stack sizes unless the slot config overrides them:
// an exact filter uses its item's stack size, a tag filter the smallest stack
// size among the tag's members.
func buildSlots(def StructureDefinition, manifest *items.Manifest) ([]Slot, error) {
	slots := make([]Slot, 0, len(def.Slots))
	for i, cfg := range def.Slots {
		capacity := cfg.Capacity
		if capacity == 0 {
			if id, ok := cfg.Filter.Single(); ok {
				capacity = manifest.StackSize(id)
				if capacity == 0 {
					return nil, fmt.Errorf("structure %q slot %d filters on unknown item %q", def.ID, i, id)
				}
			} else if tag, ok := cfg.Filter.Tag(); ok {
				for _, id := range manifest.MatchingItems(tag) {
					if size := manifest.StackSize(id); capacity == 0 || size < capacity {
						capacity = size
					}
				}
				if capacity == 0 {
					return nil, fmt.Errorf("structure %q slot %d filters on empty tag %q", def.ID, i, tag)
				}
			}
		}
		slots = append(slots, NewSlot(cfg.Filter, capacity))
	}
	return slots, nil
}
