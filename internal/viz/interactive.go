package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/palette"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// fields editable on the config screen
var fields = []string{"particles", "types", "seed", "wrap"}

// Builder turns a config into a ready experiment and its palette.
type Builder func(cfg *config.Config) (*experiment.Experiment, *palette.Palette, error)

// App is the interactive front end: pick a preset, adjust the run size,
// then hand over to the live Model.
type App struct {
	state   int
	cursor  int
	presets []string
	cfg     *config.Config
	field   int
	editing bool
	editBuf string
	err     string
	build   Builder
	live    Model
	size    *tea.WindowSizeMsg
}

func NewApp(build Builder) *App {
	return &App{presets: config.ListPresets(), build: build}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.size = &msg
	case tea.KeyMsg:
		switch a.state {
		case stateMenu:
			return a.menuKey(msg)
		case stateConfig:
			return a.configKey(msg)
		}
	}
	if a.state == stateSim {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.cfg = config.GetPreset(a.presets[a.cursor])
		a.state, a.field, a.err = stateConfig, 0, ""
	}
	return a, nil
}

func (a App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			if err := a.setField(fields[a.field], a.editBuf); err != nil {
				a.err = err.Error()
			}
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && (s[0] >= '0' && s[0] <= '9' || s[0] == '-') {
				a.editBuf += s
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.field > 0 {
			a.field--
		}
	case "down", "j":
		if a.field < len(fields)-1 {
			a.field++
		}
	case "enter", " ":
		if fields[a.field] == "wrap" {
			a.cfg.Simulation.Wrap = !a.cfg.Simulation.Wrap
		} else {
			a.editing, a.editBuf = true, a.fieldValue(fields[a.field])
		}
	case "s":
		return a.start()
	}
	return a, nil
}

func (a *App) setField(name, value string) error {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	switch name {
	case "particles":
		a.cfg.Simulation.Particles = int(n)
	case "types":
		a.cfg.Simulation.Types = int(n)
	case "seed":
		a.cfg.Simulation.Seed = n
	}
	return nil
}

func (a *App) fieldValue(name string) string {
	s := a.cfg.Simulation
	switch name {
	case "particles":
		return strconv.Itoa(s.Particles)
	case "types":
		return strconv.Itoa(s.Types)
	case "seed":
		return strconv.FormatInt(s.Seed, 10)
	case "wrap":
		if s.Wrap {
			return "torus"
		}
		return "walls"
	}
	return ""
}

func (a App) start() (App, tea.Cmd) {
	exp, pal, err := a.build(a.cfg)
	if err != nil {
		a.err = err.Error()
		return a, nil
	}
	a.live = NewModel(exp, pal)
	a.state = stateSim
	if a.size != nil {
		next, _ := a.live.Update(*a.size)
		a.live = next.(Model)
	}
	return a, a.live.Init()
}

func (a App) View() string {
	switch a.state {
	case stateConfig:
		return a.viewConfig()
	case stateSim:
		return a.live.View()
	}
	return a.viewMenu()
}

func (a App) viewMenu() string {
	var b strings.Builder
	b.WriteString(cyan.Render("PARTICLE LIFE") + "\n\n")
	for i, name := range a.presets {
		p := config.Presets[name]
		info := fmt.Sprintf("%d particles, %d types", p.Simulation.Particles, p.Simulation.Types)
		if i == a.cursor {
			b.WriteString(yellow.Render("> "+name) + "  " + dim.Render(info) + "\n")
		} else {
			b.WriteString("  " + white.Render(name) + "\n")
		}
	}
	b.WriteString("\n" + dim.Render("↑↓ select  enter choose  q quit"))
	return b.String()
}

func (a App) viewConfig() string {
	var b strings.Builder
	b.WriteString(cyan.Render(strings.ToUpper(a.presets[a.cursor])) + "\n\n")
	for i, name := range fields {
		value := a.fieldValue(name)
		if a.editing && i == a.field {
			value = a.editBuf + "_"
		}
		line := fmt.Sprintf("%-10s %s", name, value)
		if i == a.field {
			b.WriteString(yellow.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + white.Render(line) + "\n")
		}
	}
	if a.err != "" {
		b.WriteString("\n" + red.Render(a.err) + "\n")
	}
	b.WriteString("\n" + dim.Render("enter edit  s start  esc back"))
	return b.String()
}

// RunInteractive starts the preset picker in the alternate screen.
func RunInteractive(build Builder) error {
	_, err := tea.NewProgram(NewApp(build), tea.WithAltScreen()).Run()
	return err
}
