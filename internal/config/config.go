// Package config loads the server's YAML configuration file and applies
// defaults so every downstream component receives fully populated settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"haul-and-hoard/server/internal/world"
	"haul-and-hoard/server/logging"
)

// Config is the on-disk shape of the server configuration.
type Config struct {
	ListenAddr      string        `yaml:"listen_addr"`
	TickRate        int           `yaml:"tick_rate_hz"`
	CatchupMaxTicks int           `yaml:"catchup_max_ticks"`
	Logging         LoggingConfig `yaml:"logging"`
	World           WorldConfig   `yaml:"world"`
	Structures      []Placement   `yaml:"structures"`
}

// LoggingConfig selects sinks for the event router.
type LoggingConfig struct {
	Sinks           []string `yaml:"sinks"`
	MinimumSeverity string   `yaml:"minimum_severity"`
	JSONPath        string   `yaml:"json_path"`
	ArchiveDir      string   `yaml:"archive_dir"`
}

// WorldConfig shapes the generated terrain.
type WorldConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Seed        string  `yaml:"seed"`
	WaterDepth  int     `yaml:"water_depth"`
	MarshChance float64 `yaml:"marsh_chance"`
	MarshDepth  int     `yaml:"marsh_depth"`
}

// Placement seeds a structure at startup.
type Placement struct {
	Type   string `yaml:"type"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Facing string `yaml:"facing"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		ListenAddr:      ":8080",
		TickRate:        10,
		CatchupMaxTicks: 5,
		Logging: LoggingConfig{
			Sinks:           []string{"console"},
			MinimumSeverity: "info",
		},
		World: WorldConfig{
			Width:  24,
			Height: 24,
			Seed:   world.DefaultSeed,
		},
	}
}

// Load reads a YAML config file, layering it over the defaults. An empty
// path yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg.Normalized(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.Normalized(), nil
}

// Normalized clamps out-of-range values back to usable defaults.
func (c Config) Normalized() Config {
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = ":8080"
	}
	if c.TickRate <= 0 {
		c.TickRate = 10
	}
	if c.CatchupMaxTicks <= 0 {
		c.CatchupMaxTicks = 5
	}
	if len(c.Logging.Sinks) == 0 {
		c.Logging.Sinks = []string{"console"}
	}
	if strings.TrimSpace(c.Logging.MinimumSeverity) == "" {
		c.Logging.MinimumSeverity = "info"
	}
	return c
}

// WorldConfigValue converts the YAML world section into generator settings.
func (c Config) WorldConfigValue() world.Config {
	return world.Config{
		Width:       c.World.Width,
		Height:      c.World.Height,
		Seed:        c.World.Seed,
		WaterDepth:  world.Height(c.World.WaterDepth),
		MarshChance: c.World.MarshChance,
		MarshDepth:  world.Height(c.World.MarshDepth),
	}
}

// LoggingConfigValue converts the YAML logging section into router settings.
func (c Config) LoggingConfigValue() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.EnabledSinks = append([]string(nil), c.Logging.Sinks...)
	cfg.MinimumSeverity = parseSeverity(c.Logging.MinimumSeverity)
	cfg.JSON.FilePath = c.Logging.JSONPath
	cfg.Archive.Dir = c.Logging.ArchiveDir
	return cfg
}

func parseSeverity(name string) logging.Severity {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return logging.SeverityDebug
	case "warn", "warning":
		return logging.SeverityWarn
	case "error":
		return logging.SeverityError
	default:
		return logging.SeverityInfo
	}
}
