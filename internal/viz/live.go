package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"golang.org/x/exp/rand"

	"github.com/san-kum/particlelife/internal/control"
	"github.com/san-kum/particlelife/internal/engine"
	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/metrics"
	"github.com/san-kum/particlelife/internal/palette"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 52
	historyCapacity = 300
	frameRate       = 30
)

type TickMsg time.Time

// Model is the bubbletea model of the live view: a braille canvas of the
// particles plus a side panel with the control knobs and live metrics.
type Model struct {
	exp     *experiment.Experiment
	panel   *control.Panel
	palette *palette.Palette
	rng     *rand.Rand

	frame []engine.Particle
	tick  int

	energy        *metrics.KineticEnergy
	mixing        *metrics.TypeMixing
	energyHistory []float64
	stepTime      time.Duration

	canvas   *Canvas
	theme    Theme
	styles   styles
	status   string
	showHelp bool
}

func NewModel(exp *experiment.Experiment, pal *palette.Palette) Model {
	w := exp.World()
	m := Model{
		exp:           exp,
		panel:         control.NewPanel(exp.Runner().Params()),
		palette:       pal,
		rng:           rand.New(rand.NewSource(uint64(exp.Config().Simulation.Seed))),
		frame:         exp.Initial(),
		energy:        metrics.NewKineticEnergy(),
		mixing:        metrics.NewTypeMixing(w, metrics.MixingRadius),
		energyHistory: make([]float64, 0, historyCapacity),
		canvas:        NewCanvas(width, height),
		theme:         ThemeNight,
		styles:        newStyles(ThemeNight),
	}
	m.observe()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.panel.TogglePause()
		case "r":
			m.randomize()
		case "n":
			m.respawn()
		case "tab", "down", "j":
			m.panel.Next()
		case "shift+tab", "up", "k":
			m.panel.Prev()
		case "right", "l", "+", "=":
			m.panel.Adjust(1)
			m.panel.Apply(m.exp.Runner())
		case "left", "h", "-", "_":
			m.panel.Adjust(-1)
			m.panel.Apply(m.exp.Runner())
		case "]", ">":
			m.panel.Faster()
		case "[", "<":
			m.panel.Slower()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-panelWidth-4)
		h := max(10, msg.Height-2)
		m.canvas = NewCanvas(w, h)
	case TickMsg:
		if !m.panel.Paused() {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	start := time.Now()
	for range m.panel.Speed() {
		next, err := m.exp.Runner().Tick(m.frame)
		if err != nil {
			m.status = err.Error()
			if !m.panel.Paused() {
				m.panel.TogglePause()
			}
			return
		}
		m.frame = next
		m.tick++
	}
	m.stepTime = time.Since(start) / time.Duration(m.panel.Speed())
	m.observe()
}

func (m *Model) observe() {
	m.energy.Observe(m.frame, m.tick)
	m.mixing.Observe(m.frame, m.tick)
	m.energyHistory = append(m.energyHistory, m.energy.Value())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// randomize redraws the type model from the panel's parameters.
func (m *Model) randomize() {
	m.panel.Apply(m.exp.Runner())
	if err := m.panel.Randomize(m.exp.Model()); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "randomized"
}

// respawn scatters a fresh set of particles under the current rules.
func (m *Model) respawn() {
	m.frame = m.exp.Engine().CreateParticles(m.exp.Model(), len(m.frame), m.rng)
	m.tick = 0
	m.energyHistory = m.energyHistory[:0]
	m.observe()
	m.status = "respawned"
}

func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.Plot(m.frame, m.exp.World())
	canvasView := m.styles.canvas.Render(m.canvas.Render(m.palette))

	st := m.styles
	var s strings.Builder
	s.WriteString(st.header.Render("PARTICLE LIFE") + "\n")

	status := fmt.Sprintf("RUNNING x%d", m.panel.Speed())
	if m.panel.Paused() {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", m.tick))
	row("Particles", fmt.Sprintf("%d", len(m.frame)))
	row("Types", Swatch(m.palette.Hexes()))
	row("Energy", fmt.Sprintf("%.5f", m.energy.Value()))
	row("Mixing", Gauge(m.mixing.Value(), 12)+fmt.Sprintf(" %.2f", m.mixing.Value()))
	if m.stepTime > 0 {
		row("Step", m.stepTime.Round(time.Microsecond).String())
	}

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.panel.Knobs() {
		line := fmt.Sprintf("%-17s %s", k.Name, k.Format(m.panel.Value(i)))
		if i == m.panel.Selected() {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}

	if m.status != "" {
		s.WriteString("\n" + st.active.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("SP:Pause R:Randomize N:Respawn Q:Quit\n↑↓:Select ←→:Tune [ ]:Speed ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Randomize type rules     ║
║  N        - Respawn particles        ║
║  Tab/↓    - Next parameter           ║
║  ↑        - Previous parameter       ║
║  →/+      - Increase parameter       ║
║  ←/-      - Decrease parameter       ║
║  ] [      - Faster / slower          ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// Run starts the live view in the alternate screen and blocks until quit.
func Run(exp *experiment.Experiment, pal *palette.Palette) error {
	_, err := tea.NewProgram(NewModel(exp, pal), tea.WithAltScreen()).Run()
	return err
}
