// Package config provides YAML-based configuration loading for the physics
// runtime: backend sizing, gravity, telemetry and the demo driver settings.
package config

import (
	"github.com/vovakirdan/physkit/internal/core"
	"github.com/vovakirdan/physkit/internal/telemetry"
)

// Config is the top-level physkit configuration.
type Config struct {
	Engine    EngineConfig     `yaml:"engine"`
	Telemetry telemetry.Config `yaml:"telemetry"`
	Demo      DemoConfig       `yaml:"demo"`
	Log       LogConfig        `yaml:"log"`
}

// EngineConfig sizes the simulation backend.
type EngineConfig struct {
	// ThreadCount sizes the backend worker pool.
	ThreadCount int `yaml:"thread_count"`
	// Gravity is the world gravity acceleration vector, in X/Y/Z order.
	Gravity [3]float64 `yaml:"gravity"`
}

// GravityVec returns the gravity as a vector.
func (c EngineConfig) GravityVec() core.Vec3 {
	return core.V(c.Gravity[0], c.Gravity[1], c.Gravity[2])
}

// DemoConfig configures the demo driver.
type DemoConfig struct {
	// TickRate is the fixed simulation frequency in Hz.
	TickRate float64 `yaml:"tick_rate"`
	// MoveSpeed is the sideways displacement applied per step.
	MoveSpeed float64 `yaml:"move_speed"`
}

// LogConfig configures the log sink.
type LogConfig struct {
	// Format selects the sink: "charm" (default) or "plain".
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			ThreadCount: 2,
			Gravity:     [3]float64{0, -9.81, 0},
		},
		Telemetry: telemetry.DefaultConfig(),
		Demo: DemoConfig{
			TickRate:  60,
			MoveSpeed: 7,
		},
		Log: LogConfig{
			Format: "charm",
		},
	}
}
