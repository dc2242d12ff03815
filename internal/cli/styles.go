package cli

import "github.com/charmbracelet/lipgloss"

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Success renders a confirmation line.
func Success(s string) string {
	return successStyle.Render("✓ " + s)
}

// Highlight renders a URL or other key value.
func Highlight(s string) string {
	return urlStyle.Render(s)
}

// Dim renders secondary text such as paths.
func Dim(s string) string {
	return pathStyle.Render(s)
}
