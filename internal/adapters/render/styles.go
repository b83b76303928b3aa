// Package render formats summaries and observations for the terminal, as
// aligned tables, CSV or JSON.
package render

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	accent = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#8BC34A"}
	muted  = lipgloss.AdaptiveColor{Light: "#6a737d", Dark: "#5c6b82"}
	red    = lipgloss.Color("#e53935")
	yellow = lipgloss.Color("#FFC107")
)

// Styles controls table appearance.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Muted  lipgloss.Style
	Red    lipgloss.Style
	Yellow lipgloss.Style
}

// DefaultStyles returns the styles used by the CLI.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Red:    lipgloss.NewStyle().Foreground(red),
		Yellow: lipgloss.NewStyle().Foreground(yellow),
	}
}
