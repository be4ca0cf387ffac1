// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import "github.com/charmbracelet/lipgloss"

// Theme groups the lipgloss styles used across the terminal surface.
// Mirrors the reference palette: primary cyan, secondary dim, green/yellow/red
// for success/warn/error.
type Theme struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Success   lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Rule      lipgloss.Style
	Panel     lipgloss.Style
}

// DefaultTheme returns the standard palette.
func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Rule:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("14")).
			Padding(1, 2),
	}
}
