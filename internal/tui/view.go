package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle    = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555"))
)

// ModelView renders the prompt model's view as a string.
func ModelView(m model) string {
	if m.ActiveView != ViewEditing {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(wrapText(m.title, m.width)),
		boxStyle.Render(m.input.View()),
		helpStyle.Render("ctrl+d submit • esc cancel"),
	)
}
