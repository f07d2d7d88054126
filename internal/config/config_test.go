package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearCoinScanEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COINSCAN_SNAPSHOT_URL", "COINSCAN_DEVICE", "COINSCAN_HOLD_DEVICE",
		"COINSCAN_RESOLUTION", "COINSCAN_SCAN_TIMEOUT", "COINSCAN_RULES",
		"COINSCAN_CENTRE_ONLY", "COINSCAN_LANG", "COINSCAN_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestNew_Defaults(t *testing.T) {
	clearCoinScanEnv(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Device != 0 || cfg.HoldDevice || cfg.SnapshotURL != "" {
		t.Errorf("capture defaults wrong: %+v", cfg)
	}
	if cfg.Resolution != "" {
		t.Errorf("Resolution = %q, want empty (defer to settings)", cfg.Resolution)
	}
	if cfg.ScanTimeout != 5*time.Second {
		t.Errorf("ScanTimeout = %v, want 5s", cfg.ScanTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestNew_Overrides(t *testing.T) {
	clearCoinScanEnv(t)
	t.Setenv("COINSCAN_SNAPSHOT_URL", "http://cam.local/photo.jpg")
	t.Setenv("COINSCAN_DEVICE", "2")
	t.Setenv("COINSCAN_SCAN_TIMEOUT", "1500ms")
	t.Setenv("COINSCAN_CENTRE_ONLY", "true")
	t.Setenv("COINSCAN_LANG", "de")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.SnapshotURL != "http://cam.local/photo.jpg" {
		t.Errorf("SnapshotURL = %q", cfg.SnapshotURL)
	}
	if cfg.Device != 2 {
		t.Errorf("Device = %d, want 2", cfg.Device)
	}
	if cfg.ScanTimeout != 1500*time.Millisecond {
		t.Errorf("ScanTimeout = %v", cfg.ScanTimeout)
	}
	if !cfg.CentreOnly {
		t.Error("CentreOnly not picked up")
	}
	if cfg.Language != "de" {
		t.Errorf("Language = %q, want de", cfg.Language)
	}
}

func TestLoadRules_BuiltIn(t *testing.T) {
	cfg := &Config{}

	table, err := cfg.LoadRules()
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(table) == 0 {
		t.Fatal("built-in table is empty")
	}
	if table[0].Label != "50 Cent" {
		t.Errorf("first rule = %q, want 50 Cent", table[0].Label)
	}
}

func TestLoadRules_YAML(t *testing.T) {
	doc := `
- label: "1 Euro"
  value_cents: 100
  radius_min: 43
  radius_max: 47
  hue_min: 10
  hue_max: 60
- label: "1 Cent"
  value_cents: 1
  radius_min: 29
  radius_max: 33
  hue_min: 5
  hue_max: 35
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{RulesPath: path}
	table, err := cfg.LoadRules()
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("table has %d rules, want 2", len(table))
	}
	if table[0].Label != "1 Euro" || table[0].ValueCents != 100 {
		t.Errorf("first rule = %+v", table[0])
	}
	if rule, ok := table.Match(45, 28, 0.5); !ok || rule.Label != "1 Euro" {
		t.Errorf("Match(45, 28) = %+v, %v", rule, ok)
	}
}

func TestLoadRules_InvalidTable(t *testing.T) {
	doc := `
- label: ""
  value_cents: 100
  radius_min: 43
  radius_max: 47
  hue_min: 10
  hue_max: 60
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{RulesPath: path}
	if _, err := cfg.LoadRules(); err == nil {
		t.Error("expected validation error for blank label")
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	cfg := &Config{RulesPath: filepath.Join(t.TempDir(), "nope.yaml")}
	if _, err := cfg.LoadRules(); err == nil {
		t.Error("expected error for missing rules file")
	}
}
