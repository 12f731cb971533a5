package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the editor.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Help    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Label:   lipgloss.NewStyle().Width(18),
		Focused: lipgloss.NewStyle().Width(18).Bold(true).Foreground(lipgloss.Color("13")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1),
	}
}
