package shell

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pankajydv07/portfolio/internal/terminal"
)

var (
	titleBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#323233")).
			Foreground(lipgloss.Color("#94a3b8")).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748b"))

	keyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#334155")).
			Foreground(lipgloss.Color("#cbd5e1")).
			Padding(0, 1)

	toneStyles = map[terminal.Tone]lipgloss.Style{
		terminal.Accent: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0d9488", Dark: "#2dd4bf"}),
		terminal.Text:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#334155", Dark: "#cbd5e1"}),
		terminal.Muted:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"}),
		terminal.OK:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}),
		terminal.Error:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}),
	}
)

func renderLine(l terminal.Line) string {
	var s string
	for _, span := range l {
		st, ok := toneStyles[span.Tone]
		if !ok {
			st = toneStyles[terminal.Text]
		}
		s += st.Render(span.Text)
	}
	return s
}
