package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/physkit/internal/backend"
	"github.com/vovakirdan/physkit/internal/config"
	"github.com/vovakirdan/physkit/internal/core"
	"github.com/vovakirdan/physkit/internal/engine"
)

// World units covered by one terminal cell. Rows cover more than
// columns because terminal cells are roughly twice as tall as wide.
const (
	unitsPerCol = 10.0
	unitsPerRow = 20.0
)

// Platform is a horizontal slab drawn in the side view.
type Platform struct {
	Y          float64
	MinX, MaxX float64
}

// KeyMap defines the key bindings for the viewer.
type KeyMap struct {
	Left  key.Binding
	Right key.Binding
	Stop  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Stop, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right, k.Stop}, {k.Quit}}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "walk left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "walk right"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s/space", "stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	capsuleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	platformStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	statusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
)

// Model drives an initialized engine from the terminal and renders the
// controller and platforms in a side view (X right, Y up).
type Model struct {
	eng       *engine.Engine
	ctrl      engine.ControllerHandle
	cfg       config.DemoConfig
	sched     *engine.Scheduler
	platforms []Platform

	keys   KeyMap
	help   help.Model
	width  int
	height int

	dir   float64 // -1, 0 or 1
	steps int
	flags backend.CollisionFlags
}

// New creates a viewer model for an already-initialized engine.
func New(eng *engine.Engine, ctrl engine.ControllerHandle, cfg config.DemoConfig, platforms []Platform, width, height int) Model {
	return Model{
		eng:       eng,
		ctrl:      ctrl,
		cfg:       cfg,
		sched:     engine.NewScheduler(),
		platforms: platforms,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.TickRate)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.dir = -1
		case key.Matches(msg, m.keys.Right):
			m.dir = 1
		case key.Matches(msg, m.keys.Stop):
			m.dir = 0
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.sched.Tick(m.eng, m.cfg.TickRate, func(elapsed float64) {
			disp := core.V(m.dir*m.cfg.MoveSpeed, 0, 0)
			m.flags = m.eng.MoveCharacter(m.ctrl, disp, elapsed, true)
		}) {
			m.steps++
		}
		return m, tickCmd(m.cfg.TickRate)
	}

	return m, nil
}

// View renders the scene.
func (m Model) View() string {
	ctrl, err := m.eng.Controller(m.ctrl)
	if err != nil {
		return "controller unavailable\n"
	}
	pos := ctrl.Position()

	cols, rows := m.width, m.height-2 // status bar + help line
	if cols < 20 || rows < 8 {
		return "terminal too small\n"
	}

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}

	// Camera centered on the controller.
	toCol := func(x float64) int {
		return cols/2 + int((x-pos.X)/unitsPerCol)
	}
	toRow := func(y float64) int {
		return rows/2 - int((y-pos.Y)/unitsPerRow)
	}

	for _, p := range m.platforms {
		r := toRow(p.Y)
		if r < 0 || r >= rows {
			continue
		}
		for c := toCol(p.MinX); c <= toCol(p.MaxX); c++ {
			if c >= 0 && c < cols {
				grid[r][c] = '='
			}
		}
	}

	// Capsule spans half the total height above and below the center.
	half := ctrl.Height()/2 + ctrl.Radius()
	capCol := toCol(pos.X)
	for r := toRow(pos.Y + half); r <= toRow(pos.Y-half); r++ {
		if r >= 0 && r < rows && capCol >= 0 && capCol < cols {
			grid[r][capCol] = '#'
		}
	}

	var b strings.Builder
	for _, row := range grid {
		line := string(row)
		line = strings.ReplaceAll(line, "=", platformStyle.Render("="))
		line = strings.ReplaceAll(line, "#", capsuleStyle.Render("#"))
		b.WriteString(line)
		b.WriteByte('\n')
	}

	state := "airborne"
	if m.flags.Has(backend.CollisionDown) {
		state = "grounded"
	}
	status := fmt.Sprintf("step %d  pos (%.1f, %.1f, %.1f)  %s", m.steps, pos.X, pos.Y, pos.Z, state)
	b.WriteString(statusStyle.Render(status))
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))

	return b.String()
}
