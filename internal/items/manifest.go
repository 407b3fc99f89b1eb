package items

import (
	"fmt"
	"sort"
)

// ItemDefinition is the read-only record for one item variety.
type ItemDefinition struct {
	ID          ItemID
	Name        string
	Description string
	StackSize   int
	Tags        []ItemTag
}

// HasTag reports whether the definition carries the given tag.
func (d ItemDefinition) HasTag(tag ItemTag) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ItemDefinitionParams captures the raw inputs used to author a definition.
type ItemDefinitionParams struct {
	ID          ItemID
	Name        string
	Description string
	StackSize   int
	Tags        []ItemTag
}

// NewItemDefinition validates the params and produces a definition.
func NewItemDefinition(params ItemDefinitionParams) (ItemDefinition, error) {
	if params.ID == "" {
		return ItemDefinition{}, fmt.Errorf("item definition missing id")
	}
	if params.Name == "" {
		return ItemDefinition{}, fmt.Errorf("item definition %q missing name", params.ID)
	}
	if params.StackSize <= 0 {
		return ItemDefinition{}, fmt.Errorf("item definition %q requires a positive stack size", params.ID)
	}
	seen := make(map[ItemTag]struct{}, len(params.Tags))
	tags := make([]ItemTag, 0, len(params.Tags))
	for _, tag := range params.Tags {
		if tag == "" {
			return ItemDefinition{}, fmt.Errorf("item definition %q carries an empty tag", params.ID)
		}
		if _, dup := seen[tag]; dup {
			return ItemDefinition{}, fmt.Errorf("item definition %q repeats tag %q", params.ID, tag)
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return ItemDefinition{
		ID:          params.ID,
		Name:        params.Name,
		Description: params.Description,
		StackSize:   params.StackSize,
		Tags:        tags,
	}, nil
}

// Manifest stores the read-only definitions for every item variety and the
// tag membership index derived from them.
type Manifest struct {
	defs  map[ItemID]ItemDefinition
	byTag map[ItemTag][]ItemID
}

// NewManifest indexes the provided definitions, rejecting duplicates.
func NewManifest(defs []ItemDefinition) (*Manifest, error) {
	manifest := &Manifest{
		defs:  make(map[ItemID]ItemDefinition, len(defs)),
		byTag: make(map[ItemTag][]ItemID),
	}
	for _, def := range defs {
		if _, dup := manifest.defs[def.ID]; dup {
			return nil, fmt.Errorf("duplicate item definition %q", def.ID)
		}
		manifest.defs[def.ID] = def
		for _, tag := range def.Tags {
			manifest.byTag[tag] = append(manifest.byTag[tag], def.ID)
		}
	}
	for tag := range manifest.byTag {
		members := manifest.byTag[tag]
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	}
	return manifest, nil
}

// Definition fetches the definition for a given variety.
func (m *Manifest) Definition(id ItemID) (ItemDefinition, bool) {
	if m == nil {
		return ItemDefinition{}, false
	}
	def, ok := m.defs[id]
	return def, ok
}

// StackSize returns the per-slot stacking limit for a variety, or zero when
// the variety is unknown.
func (m *Manifest) StackSize(id ItemID) int {
	def, ok := m.Definition(id)
	if !ok {
		return 0
	}
	return def.StackSize
}

// HasTag reports whether the variety carries the given tag.
func (m *Manifest) HasTag(id ItemID, tag ItemTag) bool {
	def, ok := m.Definition(id)
	if !ok {
		return false
	}
	return def.HasTag(tag)
}

// MatchingItems resolves a tag to its member varieties, sorted by identifier.
func (m *Manifest) MatchingItems(tag ItemTag) []ItemID {
	if m == nil {
		return nil
	}
	members := m.byTag[tag]
	if len(members) == 0 {
		return nil
	}
	return append([]ItemID(nil), members...)
}

// Definitions returns every definition sorted by identifier.
func (m *Manifest) Definitions() []ItemDefinition {
	if m == nil {
		return nil
	}
	defs := make([]ItemDefinition, 0, len(m.defs))
	for _, def := range m.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}
