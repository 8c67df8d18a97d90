package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/physkit/internal/core"
	"github.com/vovakirdan/physkit/internal/engine"
	"github.com/vovakirdan/physkit/internal/storage"
)

var (
	flagSteps  int
	flagRecord bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the capsule drop scenario headless",
	Long: `Drop a capsule controller onto two stacked platforms and walk it
sideways at a fixed tick rate, printing the controller position each step.

Examples:
  physkit demo
  physkit demo --steps 120
  physkit demo --record --db ./runs.db`,
	Run: runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagSteps, "steps", 300, "Number of simulation steps to run")
	demoCmd.Flags().BoolVar(&flagRecord, "record", false, "Persist the trajectory to the runs database")
}

func runDemo(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	sink := newSink(cfg.Log)

	eng := engine.New(engine.WithSink(sink))
	if err := eng.Initialize(engine.InitConfig{
		ThreadCount: cfg.Engine.ThreadCount,
		Gravity:     cfg.Engine.GravityVec(),
		Telemetry:   cfg.Telemetry,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing engine: %v\n", err)
		os.Exit(1)
	}
	defer eng.Shutdown()

	ctrl, _, err := buildDropScene(eng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
		os.Exit(1)
	}

	var rec *storage.Recorder
	var runID int64
	if flagRecord {
		rec, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
			rec = nil
		} else {
			defer rec.Close()
			runID, err = rec.BeginRun("demo")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not begin run: %v\n", err)
				rec = nil
			}
		}
	}

	sched := engine.NewScheduler()
	start := time.Now()

	for step := 0; step < flagSteps; {
		stepped := sched.Tick(eng, cfg.Demo.TickRate, func(elapsed float64) {
			eng.MoveCharacter(ctrl, core.V(cfg.Demo.MoveSpeed, 0, 0), elapsed, true)
		})
		if !stepped {
			time.Sleep(time.Millisecond)
			continue
		}

		c, err := eng.Controller(ctrl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading controller: %v\n", err)
			os.Exit(1)
		}
		pos := c.Position()
		fmt.Printf("step %4d  pos (%8.2f, %8.2f, %8.2f)\n", step, pos.X, pos.Y, pos.Z)

		if rec != nil {
			sample := storage.Sample{
				Step:    step,
				TimeSec: time.Since(start).Seconds(),
				X:       pos.X,
				Y:       pos.Y,
				Z:       pos.Z,
			}
			if err := rec.AddSample(runID, sample); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not record sample: %v\n", err)
				rec = nil
			}
		}
		step++
	}

	if rec != nil {
		fmt.Printf("\nRecorded run %d (%d steps). See 'physkit runs'.\n", runID, flagSteps)
	}
}
