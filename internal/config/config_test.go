package config

import (
	"os"
	"path/filepath"
	"testing"

	"haul-and-hoard/server/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.TickRate != 10 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if len(cfg.Logging.Sinks) != 1 || cfg.Logging.Sinks[0] != "console" {
		t.Fatalf("default sinks = %v", cfg.Logging.Sinks)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := writeConfig(t, `
listen_addr: ":9000"
tick_rate_hz: 20
catchup_max_ticks: 3
logging:
  sinks: [console, json]
  minimum_severity: debug
  json_path: /tmp/events.ndjson
world:
  width: 32
  height: 16
  seed: fenlands
  water_depth: 1
  marsh_chance: 0.2
  marsh_depth: 4
structures:
  - type: granary_chute
    x: 4
    y: 4
    facing: down
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9000" || cfg.TickRate != 20 || cfg.CatchupMaxTicks != 3 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.Logging.Sinks) != 2 || cfg.Logging.JSONPath != "/tmp/events.ndjson" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if cfg.World.Width != 32 || cfg.World.Seed != "fenlands" {
		t.Fatalf("world = %+v", cfg.World)
	}
	if len(cfg.Structures) != 1 || cfg.Structures[0].Type != "granary_chute" {
		t.Fatalf("structures = %+v", cfg.Structures)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "listen_adr: \":9000\"\n")
	if _, err := Load(path); err == nil {
		t.Fatal("misspelled key accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestNormalizedClampsValues(t *testing.T) {
	cfg := Config{TickRate: -5, CatchupMaxTicks: 0, ListenAddr: "  "}.Normalized()
	if cfg.TickRate != 10 || cfg.CatchupMaxTicks != 5 || cfg.ListenAddr != ":8080" {
		t.Fatalf("normalized = %+v", cfg)
	}
	if len(cfg.Logging.Sinks) != 1 || cfg.Logging.Sinks[0] != "console" {
		t.Fatalf("normalized sinks = %v", cfg.Logging.Sinks)
	}
}

func TestLoggingConfigValueSeverity(t *testing.T) {
	cases := []struct {
		name string
		want logging.Severity
	}{
		{name: "debug", want: logging.SeverityDebug},
		{name: "info", want: logging.SeverityInfo},
		{name: "warn", want: logging.SeverityWarn},
		{name: "warning", want: logging.SeverityWarn},
		{name: "error", want: logging.SeverityError},
		{name: "bogus", want: logging.SeverityInfo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Logging.MinimumSeverity = tc.name
			if got := cfg.LoggingConfigValue().MinimumSeverity; got != tc.want {
				t.Fatalf("severity = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestWorldConfigValue(t *testing.T) {
	cfg := Default()
	cfg.World.Width = 12
	cfg.World.WaterDepth = 2

	wc := cfg.WorldConfigValue()
	if wc.Width != 12 || int(wc.WaterDepth) != 2 {
		t.Fatalf("world config = %+v", wc)
	}
}
