package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas lipgloss.Style
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	active lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(1, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(46),
		header: lipgloss.NewStyle().Foreground(t.Header).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Label).Width(18),
		value:  lipgloss.NewStyle().Foreground(t.Value),
		active: lipgloss.NewStyle().Foreground(t.Active).Bold(true),
		graph:  lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}

// Gauge renders v in [0, 1] as a fixed-width bar.
func Gauge(v float64, width int) string {
	filled := int(v * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Swatch renders one colored block per type, the legend for the canvas.
func Swatch(hexes []string) string {
	var b strings.Builder
	for _, h := range hexes {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(h)).Render("■"))
	}
	return b.String()
}
