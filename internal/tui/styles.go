package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Base styles for sencheck TUI output
var (
	// Header style for titles and section headers
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// Success style for positive feedback
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// Error style for error messages
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Muted style for secondary text
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Subtle style for hints and descriptions
	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Italic(true)

	// StyleUserTurn prefixes sentences the learner submitted
	StyleUserTurn = lipgloss.NewStyle().
			Foreground(ColorText)

	// StyleCorrection prefixes generated corrections
	StyleCorrection = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleSpan marks a clickable error span
	StyleSpan = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E293B")).
			Background(ColorHighlight)

	// StyleSelected marks the picked suggestion candidate
	StyleSelected = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

func getTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Focused.Base = lipgloss.NewStyle().BorderForeground(ColorPrimary)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(ColorSubtle)

	return t
}
