package world

import "strings"

// DefaultSeed is used when no world seed is configured.
const DefaultSeed = "meadow"

const (
	defaultWorldWidth  = 24
	defaultWorldHeight = 24
)

// Config captures the knobs used when generating a world.
type Config struct {
	Width  int
	Height int
	Seed   string
	// WaterDepth is the base water table applied to every cell.
	WaterDepth Height
	// MarshChance is the per-cell probability of a flooded marsh pocket.
	MarshChance float64
	// MarshDepth is the water depth inside marsh pockets.
	MarshDepth Height
}

// normalized returns a config with defaults applied.
func (cfg Config) normalized() Config {
	normalized := cfg
	if normalized.Width <= 0 {
		normalized.Width = defaultWorldWidth
	}
	if normalized.Height <= 0 {
		normalized.Height = defaultWorldHeight
	}
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = DefaultSeed
	}
	if normalized.WaterDepth < 0 {
		normalized.WaterDepth = 0
	}
	if normalized.MarshChance < 0 {
		normalized.MarshChance = 0
	}
	if normalized.MarshChance > 1 {
		normalized.MarshChance = 1
	}
	if normalized.MarshDepth <= normalized.WaterDepth {
		normalized.MarshDepth = normalized.WaterDepth + 2
	}
	return normalized
}
