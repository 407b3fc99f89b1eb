package world

// TerrainTile is the terrain entity occupying one grid cell. Every occupied
// cell owns exactly one litter pool for the lifetime of the tile.
type TerrainTile struct {
	Pos TilePos
	// SurfaceWaterDepth is how high standing water reaches on this cell.
	// Zero means dry ground.
	SurfaceWaterDepth Height
	Litter            *Litter
}

// NewTerrainTile builds a tile with an empty litter pool.
func NewTerrainTile(pos TilePos, depth Height) *TerrainTile {
	if depth < 0 {
		depth = 0
	}
	return &TerrainTile{
		Pos:               pos,
		SurfaceWaterDepth: depth,
		Litter:            NewLitter(),
	}
}
