package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Currency != "USD" || cfg.General.ForecastDays != 30 {
		t.Errorf("defaults = %+v", cfg.General)
	}
	if Exists() {
		t.Error("Exists = true before any save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.Currency = "EUR"
	cfg.General.ForecastDays = 14
	cfg.Appearance.Theme = "terminal"
	cfg.Daemon.Addr = "127.0.0.1:9000"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.Currency != "EUR" || got.General.ForecastDays != 14 {
		t.Errorf("General = %+v", got.General)
	}
	if got.Appearance.Theme != "terminal" {
		t.Errorf("Theme = %s", got.Appearance.Theme)
	}
	if got.Daemon.Addr != "127.0.0.1:9000" {
		t.Errorf("Daemon.Addr = %s", got.Daemon.Addr)
	}
}

func TestDataDirPrecedence(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("SITEBUDGET_DATA_DIR", "/tmp/envdir")
	cfg.General.DataDir = "/tmp/cfgdir"
	if got := DataDir(cfg); got != "/tmp/envdir" {
		t.Errorf("DataDir = %s, want env override", got)
	}

	t.Setenv("SITEBUDGET_DATA_DIR", "")
	if got := DataDir(cfg); got != "/tmp/cfgdir" {
		t.Errorf("DataDir = %s, want config override", got)
	}

	cfg.General.DataDir = ""
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	if got := DataDir(cfg); got != filepath.Join("/tmp/xdg", "sitebudget") {
		t.Errorf("DataDir = %s, want xdg fallback", got)
	}
}
