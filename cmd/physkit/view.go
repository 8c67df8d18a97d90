package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/physkit/internal/engine"
	"github.com/vovakirdan/physkit/internal/logx"
	"github.com/vovakirdan/physkit/internal/viz"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Interactive terminal side view of the drop scene",
	Long: `Run the capsule drop scenario with a live side-view rendering.

Controls:
  Left/h   - Walk left
  Right/l  - Walk right
  s/Space  - Stop
  Q/Ctrl+C - Quit

Examples:
  physkit view
  physkit view --fps 30`,
	Run: runView,
}

func runView(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns stdout; keep the engine quiet.
	eng := engine.New(engine.WithSink(logx.Nop()))
	if err := eng.Initialize(engine.InitConfig{
		ThreadCount: cfg.Engine.ThreadCount,
		Gravity:     cfg.Engine.GravityVec(),
		Telemetry:   cfg.Telemetry,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing engine: %v\n", err)
		os.Exit(1)
	}
	defer eng.Shutdown()

	ctrl, platforms, err := buildDropScene(eng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size early; WindowSizeMsg keeps it current after.
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	model := viz.New(eng, ctrl, cfg.Demo, platforms, width, height)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}
