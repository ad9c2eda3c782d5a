package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the side panel. Particle colors always come from the
// palette.
type Theme struct {
	Name   string
	Header lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Active lipgloss.Color
	Graph  lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:   "night",
		Header: lipgloss.Color("86"),
		Label:  lipgloss.Color("245"),
		Value:  lipgloss.Color("252"),
		Active: lipgloss.Color("205"),
		Graph:  lipgloss.Color("49"),
		Muted:  lipgloss.Color("240"),
		Border: lipgloss.Color("240"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Header: lipgloss.Color("#00ff00"),
		Label:  lipgloss.Color("#00aa00"),
		Value:  lipgloss.Color("#88ff88"),
		Active: lipgloss.Color("#ffff00"),
		Graph:  lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Border: lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Header: lipgloss.Color("#ffffff"),
		Label:  lipgloss.Color("#888888"),
		Value:  lipgloss.Color("#cccccc"),
		Active: lipgloss.Color("#0088ff"),
		Graph:  lipgloss.Color("#cccccc"),
		Muted:  lipgloss.Color("#555555"),
		Border: lipgloss.Color("#333333"),
	}

	Themes = []Theme{ThemeNight, ThemeRetro, ThemeMinimal}
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme cycles through Themes in order.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
