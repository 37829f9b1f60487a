package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "flightops")
	t.Setenv("DB_NAME", "flightops")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("listen = %q, want :8080", cfg.Server.Listen)
	}
	if cfg.Database.Port != "5432" {
		t.Errorf("port = %q, want 5432", cfg.Database.Port)
	}
	if cfg.Dispatch.FuelDensity != 6.7 {
		t.Errorf("fuel density = %v, want 6.7", cfg.Dispatch.FuelDensity)
	}
	if !cfg.Features.FleetSafetyChecks {
		t.Error("fleet safety checks should default on")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9090"
database:
  host: dbhost
  user: ops
  name: opsdb
dispatch:
  fuel_density: 6.0
features:
  fleet_safety_checks: false
rollup_schedule: "30 1 * * *"
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Listen != ":9090" {
		t.Errorf("listen = %q, want :9090", cfg.Server.Listen)
	}
	if cfg.Features.FleetSafetyChecks {
		t.Error("fleet safety checks should be switched off by the file")
	}
	if cfg.Dispatch.FuelDensity != 6.0 {
		t.Errorf("fuel density = %v, want 6.0", cfg.Dispatch.FuelDensity)
	}
	if cfg.RollupSchedule != "30 1 * * *" {
		t.Errorf("rollup schedule = %q", cfg.RollupSchedule)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  host: filehost
  user: fileuser
  name: filedb
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_HOST", "envhost")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Host != "envhost" {
		t.Errorf("host = %q, want env override envhost", cfg.Database.Host)
	}
	if cfg.Database.User != "fileuser" {
		t.Errorf("user = %q, want fileuser", cfg.Database.User)
	}
}

func TestLoadMissingDatabase(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error with no database settings")
	}
}
