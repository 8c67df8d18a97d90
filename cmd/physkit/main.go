// physkit is a small character-controller sandbox built on the physkit
// engine facade.
//
// Usage:
//
//	physkit demo             - Run the capsule drop scenario headless
//	physkit view             - Run the same scenario as a terminal side view
//	physkit runs             - List recorded runs
//
// Global flags:
//
//	--config <path> - Path to a custom config YAML
//	--db <path>     - Set database path (default: ~/.physkit/runs.db)
//	--fps <rate>    - Override the simulation tick rate
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/physkit/internal/config"
	"github.com/vovakirdan/physkit/internal/logx"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagFPS    float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "physkit",
	Short: "Physkit - capsule controller sandbox",
	Long: `Physkit drives a kinematic capsule controller through a static
triangle-mesh scene and records or visualizes the trajectory.

Available commands:
  demo     - Run the capsule drop scenario and print positions
  view     - Interactive terminal side view of the same scene
  runs     - List recorded runs

Examples:
  physkit demo --steps 300 --record
  physkit view
  physkit runs --limit 5`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.physkit/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().Float64Var(&flagFPS, "fps", 0, "Tick rate override (0 = from config)")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadConfig resolves the effective config, applying the --fps override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagFPS > 0 {
		cfg.Demo.TickRate = flagFPS
	}
	return cfg, nil
}

// newSink builds the log sink selected by the config.
func newSink(cfg config.LogConfig) logx.Sink {
	if cfg.Format == "plain" {
		return logx.NewPlainSink(os.Stderr)
	}
	return logx.NewCharmSink(os.Stderr)
}
