package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	before := c
	c.Validate()
	if c.World != before.World || c.Hazard != before.Hazard {
		t.Fatalf("defaults changed by Validate")
	}
	if c.Save.Key != "deep_miner_game_state" || c.Save.Autosave != 30 {
		t.Fatalf("unexpected save defaults: %+v", c.Save)
	}
}

func TestLoadMergesOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	doc := `
seed: 1234
world:
  depth: 300
ledger:
  start_cash: 500
save:
  codec: msgpack
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultConfig()
	if c.Seed != 1234 || c.World.Depth != 300 || c.Ledger.StartCash != 500 || c.Save.Codec != "msgpack" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.World.Width != def.World.Width || c.Ledger.MaxHealth != def.Ledger.MaxHealth {
		t.Fatalf("defaults lost: width=%d max_health=%d", c.World.Width, c.Ledger.MaxHealth)
	}
	if len(c.Ledger.Licenses) != len(def.Ledger.Licenses) {
		t.Fatalf("licenses lost: %v", c.Ledger.Licenses)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("world: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if c.World != DefaultConfig().World {
		t.Fatalf("bad file should yield defaults")
	}
}

func TestFromMap(t *testing.T) {
	c, err := FromMap(map[string]string{
		"world.depth":              "120",
		"world.gold_percent":       "1.5",
		"prices.cargo.base":        "250",
		"world.diagonal_discovery": "true",
		"save.backend":             "sqlite",
		"seed":                     "77",
	})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if c.World.Depth != 120 || c.World.GoldPercent != 1.5 || c.Prices.Cargo.Base != 250 {
		t.Fatalf("values not applied: %+v", c)
	}
	if !c.World.DiagonalDiscovery || c.Save.Backend != "sqlite" || c.Seed != 77 {
		t.Fatalf("values not applied: %+v", c)
	}
	if c.Prices.Cargo.Mult != DefaultConfig().Prices.Cargo.Mult {
		t.Fatalf("sibling field overwritten")
	}
}

func TestFromMapReportsBadEntries(t *testing.T) {
	c, err := FromMap(map[string]string{
		"world.depth":     "deep",
		"world.bogus":     "1",
		"world..width":    "3",
		"ledger.capacity": "80",
	})
	if err == nil {
		t.Fatalf("expected errors")
	}
	if c.World.Depth != DefaultConfig().World.Depth {
		t.Fatalf("bad value applied: %d", c.World.Depth)
	}
	if c.Ledger.Capacity != 80 {
		t.Fatalf("good key skipped: %d", c.Ledger.Capacity)
	}
}

func TestApplyClamps(t *testing.T) {
	c := DefaultConfig()
	if err := c.Apply(map[string]string{"world.elevator_column": "500"}); err != nil {
		t.Fatal(err)
	}
	if c.World.ElevatorColumn != c.World.Width-2 {
		t.Fatalf("elevator column not clamped: %d", c.World.ElevatorColumn)
	}
}

func TestParsePairs(t *testing.T) {
	m, err := ParsePairs([]string{"a=1", " b = two "})
	if err != nil {
		t.Fatal(err)
	}
	if m["a"] != "1" || m["b"] != "two" {
		t.Fatalf("pairs = %v", m)
	}
	if _, err := ParsePairs([]string{"novalue"}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ParsePairs([]string{"=1"}); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
