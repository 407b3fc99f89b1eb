package world

import "haul-and-hoard/server/internal/signals"

// StructureID identifies one placed structure instance.
type StructureID string

// StructureType identifies a variety of structure in the manifest.
type StructureType string

// Footprint describes the vertical extent of a structure. MaxHeight gates
// whether the structure can reach floating litter above the water surface.
type Footprint struct {
	MaxHeight Height
}

// Role is the closed variant of a structure's logistics role. A structure is
// exactly one of: a releaser owning an input inventory, an absorber owning
// an output inventory, or neither.
type Role struct {
	input  *InputInventory
	output *OutputInventory
}

// NoRole is the role of structures outside the logistics core.
func NoRole() Role {
	return Role{}
}

// ReleaserRole builds the role of a structure that spits items out into the
// world.
func ReleaserRole(inv InputInventory) Role {
	return Role{input: &inv}
}

// AbsorberRole builds the role of a structure that takes items in from the
// world.
func AbsorberRole(inv OutputInventory) Role {
	return Role{output: &inv}
}

// Releaser returns the input inventory when the structure is a releaser.
func (r Role) Releaser() (*InputInventory, bool) {
	return r.input, r.input != nil
}

// Absorber returns the output inventory when the structure is an absorber.
func (r Role) Absorber() (*OutputInventory, bool) {
	return r.output, r.output != nil
}

// IsNone reports whether the structure has no logistics role.
func (r Role) IsNone() bool {
	return r.input == nil && r.output == nil
}

// Structure is one placed building on the colony grid.
type Structure struct {
	ID        StructureID
	Type      StructureType
	Pos       TilePos
	Facing    FacingDirection
	Footprint Footprint

	role    Role
	emitter signals.Emitter
}

// Role exposes the structure's logistics role.
func (s *Structure) Role() Role {
	if s == nil {
		return Role{}
	}
	return s.role
}

// Signals returns a copy of the structure's current advertisement.
func (s *Structure) Signals() []signals.Signal {
	if s == nil {
		return nil
	}
	return s.emitter.Signals()
}
