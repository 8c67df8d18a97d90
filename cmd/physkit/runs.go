package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/physkit/internal/storage"
)

var flagLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `Display recorded runs with their final controller positions.

Examples:
  physkit runs
  physkit runs --limit 5
  physkit runs --db ./runs.db`,
	Run: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Maximum number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) {
	rec, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer rec.Close()

	runs, err := rec.Runs(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'physkit demo --record' to record the first one.")
		return
	}

	fmt.Println("Recorded runs:")
	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %-6s  %-16s  %s\n", "ID", "Scenario", "Steps", "Date", "Final position")
	fmt.Printf("  %-4s  %-10s  %-6s  %-16s  %s\n", "--", "--------", "-----", "----", "--------------")

	for _, run := range runs {
		final := "-"
		samples, err := rec.Samples(run.ID)
		if err == nil && len(samples) > 0 {
			last := samples[len(samples)-1]
			final = fmt.Sprintf("(%.1f, %.1f, %.1f)", last.X, last.Y, last.Z)
		}
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %-6d  %-16s  %s\n", run.ID, run.Scenario, run.Steps, dateStr, final)
	}
}
