// Package viz provides the Bubble Tea side-view visualization of a
// running simulation. It owns the terminal loop and input mapping; the
// engine itself stays headless.
package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation step.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// given frequency.
func tickCmd(frequencyHz float64) tea.Cmd {
	if frequencyHz <= 0 {
		frequencyHz = 60
	}
	interval := time.Duration(float64(time.Second) / frequencyHz)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
