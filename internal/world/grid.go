package world

import "fmt"

// TilePos addresses one cell of the colony grid.
type TilePos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p TilePos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// FacingDirection identifies the orientation of a structure.
type FacingDirection string

const (
	FacingUp    FacingDirection = "up"
	FacingDown  FacingDirection = "down"
	FacingLeft  FacingDirection = "left"
	FacingRight FacingDirection = "right"
)

// Valid reports whether the direction is one of the four grid directions.
func (f FacingDirection) Valid() bool {
	switch f {
	case FacingUp, FacingDown, FacingLeft, FacingRight:
		return true
	default:
		return false
	}
}

// Neighbor returns the cell one step from pos along the facing direction.
// Y grows downward, matching screen coordinates.
func Neighbor(pos TilePos, facing FacingDirection) TilePos {
	switch facing {
	case FacingUp:
		return TilePos{X: pos.X, Y: pos.Y - 1}
	case FacingDown:
		return TilePos{X: pos.X, Y: pos.Y + 1}
	case FacingLeft:
		return TilePos{X: pos.X - 1, Y: pos.Y}
	case FacingRight:
		return TilePos{X: pos.X + 1, Y: pos.Y}
	default:
		return pos
	}
}

// Height measures vertical extent in grid units. It is used both for
// structure footprints and for the water surface depth of a cell.
type Height int
