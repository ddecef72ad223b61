package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robolens/robolens/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Camera.Home != (math.Vec3{X: -10, Y: 0, Z: 1}) {
		t.Errorf("expected home (-10,0,1), got %v", cfg.Camera.Home)
	}
	if cfg.Camera.ComposeYaw {
		t.Error("expected compose_yaw to be false by default")
	}

	if cfg.Tracking.TargetFrame != "base_link" {
		t.Errorf("expected target frame 'base_link', got %s", cfg.Tracking.TargetFrame)
	}
	if cfg.Tracking.FixedFrame != "odom" {
		t.Errorf("expected fixed frame 'odom', got %s", cfg.Tracking.FixedFrame)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  vsync: false
camera:
  home:
    x: 2
    y: -3
    z: 5
  compose_yaw: true
tracking:
  target_frame: gripper
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("window size = %dx%d, want 1920x1080", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.VSync {
		t.Error("vsync should have been overridden to false")
	}
	if cfg.Camera.Home != (math.Vec3{X: 2, Y: -3, Z: 5}) {
		t.Errorf("home = %v, want (2,-3,5)", cfg.Camera.Home)
	}
	if !cfg.Camera.ComposeYaw {
		t.Error("compose_yaw should have been overridden to true")
	}
	if cfg.Tracking.TargetFrame != "gripper" {
		t.Errorf("target frame = %s, want gripper", cfg.Tracking.TargetFrame)
	}

	// Untouched sections keep their defaults.
	if cfg.Tracking.FixedFrame != "odom" {
		t.Errorf("fixed frame = %s, want default odom", cfg.Tracking.FixedFrame)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %s, want default info", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 800
	cfg.Camera.ComposeYaw = true
	cfg.Tracking.TargetFrame = "camera_link"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if loaded.Window.Width != 800 {
		t.Errorf("width = %d, want 800", loaded.Window.Width)
	}
	if !loaded.Camera.ComposeYaw {
		t.Error("compose_yaw lost in round trip")
	}
	if loaded.Tracking.TargetFrame != "camera_link" {
		t.Errorf("target frame = %s, want camera_link", loaded.Tracking.TargetFrame)
	}
}
