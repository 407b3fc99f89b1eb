package sim

// CommandType enumerates the supported simulation commands.
type CommandType string

const (
	CommandPlaceStructure  CommandType = "PlaceStructure"
	CommandRemoveStructure CommandType = "RemoveStructure"
)

// Command represents an intent captured for processing on the next tick.
// The zoning layer translates player input into these.
type Command struct {
	Type   CommandType
	Place  *PlaceStructureCommand
	Remove *RemoveStructureCommand
}

// PlaceStructureCommand requests a structure placement.
type PlaceStructureCommand struct {
	StructureType string
	X             int
	Y             int
	Facing        string
}

// RemoveStructureCommand requests a structure teardown.
type RemoveStructureCommand struct {
	StructureID string
}
