// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/robolens/robolens/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Tracking TrackingConfig `yaml:"tracking"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// CameraConfig holds view controller settings.
type CameraConfig struct {
	// Home is where the camera starts and returns to on reset.
	Home math.Vec3 `yaml:"home"`
	// ComposeYaw folds the stored yaw into the rendered orientation
	// instead of only tracking it.
	ComposeYaw bool `yaml:"compose_yaw"`
	// FOV is the vertical field of view in radians.
	FOV float32 `yaml:"fov"`
}

// TrackingConfig holds frame tracking settings.
type TrackingConfig struct {
	// TargetFrame is the frame the camera stays anchored to.
	TargetFrame string `yaml:"target_frame"`
	// FixedFrame is the frame all poses are expressed in.
	FixedFrame string `yaml:"fixed_frame"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			Home:       math.Vec3{X: -10, Y: 0, Z: 1},
			ComposeYaw: false,
			FOV:        0.785,
		},
		Tracking: TrackingConfig{
			TargetFrame: "base_link",
			FixedFrame:  "odom",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
