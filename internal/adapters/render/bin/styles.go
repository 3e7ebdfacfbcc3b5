package bin

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	full       lipgloss.Style
	ok         lipgloss.Style
	note       lipgloss.Style
	barBracket lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		value:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		full:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		ok:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		note:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
