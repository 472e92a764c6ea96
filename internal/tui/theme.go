package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by the terminal UI.
type Theme struct {
	Title   lipgloss.Style
	Focus   lipgloss.Style
	Break   lipgloss.Style
	Clock   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Panel   lipgloss.Style
}

// DefaultTheme is a tomato-red theme.
func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E74C3C")),
		Focus:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E74C3C")),
		Break:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2ECC71")),
		Clock:   lipgloss.NewStyle().Bold(true).Padding(0, 2),
		Warning: lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(lipgloss.Color("#E67E22")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7F8C8D")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C0392B")),
		Panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 3),
	}
}
