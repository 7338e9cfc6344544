package pad

import "github.com/charmbracelet/lipgloss"

// Styles for the drawing pad
type Styles struct {
	Title   lipgloss.Style
	Ink     lipgloss.Style
	Guide   lipgloss.Style
	Covered lipgloss.Style
	Message lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles uses the card's pink palette
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff69b4")),
		Ink: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e91e63")),
		Guide: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5c3a45")),
		Covered: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffd700")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffb6c1")),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff1493")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7a7a7a")),
	}
}
