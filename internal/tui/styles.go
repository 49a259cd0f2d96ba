package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups every lipgloss style the browser renders with.
type Styles struct {
	Title       lipgloss.Style
	Pill        lipgloss.Style
	PillActive  lipgloss.Style
	PillOpen    lipgloss.Style
	Search      lipgloss.Style
	SearchFocus lipgloss.Style
	Banner      lipgloss.Style
	Header      lipgloss.Style
	Cell        lipgloss.Style
	Match       lipgloss.Style
	MatchNested lipgloss.Style
	Muted       lipgloss.Style
}

func DefaultStyles() Styles {
	accent := lipgloss.Color("63")
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		Pill:        lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		PillActive:  lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(accent).Bold(true),
		PillOpen:    lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("212")),
		Search:      lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
		SearchFocus: lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("212")),
		Banner:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1),
		Header:      lipgloss.NewStyle().Bold(true),
		Cell:        lipgloss.NewStyle().PaddingRight(2),
		Match:       lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
		MatchNested: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("208")).Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}
