package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/sketchpad"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != sketchpad.DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFile)
	data := "frame_interval = \"16ms\"\n[window]\ntitle = \"draw\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Window.Title != "draw" || cfg.FrameInterval != 16*time.Millisecond {
		t.Errorf("got title %q interval %v", cfg.Window.Title, cfg.FrameInterval)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte("[window]\nwidth = -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("expected error for negative width")
	}
}
