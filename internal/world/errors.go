package world

import "errors"

// Routine transfer failures. These mean "try again next tick" and always
// leave both sides of the transfer untouched.
var (
	// ErrDoesNotFit reports that an all-or-nothing add could not place the
	// full quantity.
	ErrDoesNotFit = errors.New("item count does not fit")
	// ErrInsufficientItems reports that an exact-count removal asked for more
	// than is present.
	ErrInsufficientItems = errors.New("insufficient items")
)

// Invariant breaches. Surfacing one of these aborts the tick: continuing
// would operate on a corrupted world.
var (
	// ErrMissingTerrain reports that an occupied grid cell has no terrain
	// entity. Terrain is created for every cell at world construction, so
	// this is only reachable through genuine corruption.
	ErrMissingTerrain = errors.New("no terrain at position")
)

// Placement and lookup failures surfaced to the command layer.
var (
	ErrUnknownStructureType = errors.New("unknown structure type")
	ErrUnknownStructure     = errors.New("unknown structure")
	ErrCellOccupied         = errors.New("cell already occupied")
	ErrOutOfBounds          = errors.New("position outside the world")
	ErrInvalidFacing        = errors.New("invalid facing direction")
)
