package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	if cfg.Grid.Width < 5 || cfg.Grid.Height < 5 {
		t.Errorf("default grid %dx%d below minimum", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Physics.DT <= 0 {
		t.Errorf("default dt = %v, want > 0", cfg.Physics.DT)
	}
	if cfg.Emitter.Cols <= 0 || cfg.Emitter.Rows <= 0 {
		t.Errorf("default emitter %dx%d", cfg.Emitter.Cols, cfg.Emitter.Rows)
	}

	// Derived values follow the loaded config
	if cfg.Derived.DT32 != float32(cfg.Physics.DT) {
		t.Errorf("DT32 = %v, want %v", cfg.Derived.DT32, float32(cfg.Physics.DT))
	}
	if cfg.Derived.WorldW32 != float32(cfg.Grid.Width) {
		t.Errorf("WorldW32 = %v, want %v", cfg.Derived.WorldW32, float32(cfg.Grid.Width))
	}
	if cfg.Viewer.StepsPerFrame < 1 {
		t.Errorf("StepsPerFrame = %d, want >= 1", cfg.Viewer.StepsPerFrame)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := []byte("grid:\n  width: 64\nphysics:\n  dt: 0.5\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}

	if cfg.Grid.Width != 64 {
		t.Errorf("grid width = %d, want 64 from override", cfg.Grid.Width)
	}
	if cfg.Physics.DT != 0.5 {
		t.Errorf("dt = %v, want 0.5 from override", cfg.Physics.DT)
	}
	// Fields absent from the override keep their defaults
	if cfg.Grid.Height != 32 {
		t.Errorf("grid height = %d, want default 32", cfg.Grid.Height)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if loaded.Grid != cfg.Grid || loaded.Physics != cfg.Physics {
		t.Errorf("roundtrip mismatch: %+v vs %+v", loaded, cfg)
	}
}
