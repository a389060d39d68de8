// Package styles provides the colour palette and lipgloss styles of the TUI.
package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// Theme is the colour palette. Success, Warning and Error follow the
// navigation outcome they render.
type Theme struct {
	Primary   lipgloss.Color // titles, selection
	Secondary lipgloss.Color // a navigation in progress
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Border    lipgloss.Color
	Bar       lipgloss.Color // status bar background
}

// DefaultTheme returns the campus palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#2563EB"),
		Secondary: lipgloss.Color("#14B8A6"),
		Text:      lipgloss.Color("#CDD6F4"),
		Muted:     lipgloss.Color("#6C7086"),
		Success:   lipgloss.Color("#A6E3A1"),
		Warning:   lipgloss.Color("#F9E2AF"),
		Error:     lipgloss.Color("#F38BA8"),
		Border:    lipgloss.Color("#45475A"),
		Bar:       lipgloss.Color("#181825"),
	}
}

// Styles are the lipgloss styles shared by every view.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Attention marks outcomes that need someone to go to the robot:
	// a blocked corridor or a staircase.
	Attention lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	warning := fg(theme.Warning)
	return &Styles{
		theme: theme,

		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Muted),
		Help:     fg(theme.Muted),
		Selected: fg(theme.Text).Background(theme.Primary).Bold(true),

		Success:   fg(theme.Success),
		Warning:   warning,
		Error:     fg(theme.Error),
		Attention: warning.Bold(true),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette behind these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Table returns bubbles table styles in this palette, for the history list.
func (s *Styles) Table() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.theme.Border).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(s.theme.Text).
		Background(s.theme.Primary).
		Bold(false)
	return ts
}

// ForStatus returns the style used to render a navigation outcome.
func (s *Styles) ForStatus(status domain.NavigationStatus) lipgloss.Style {
	switch status {
	case domain.StatusCompleted:
		return s.Success
	case domain.StatusCancelled, domain.StatusAlreadyRunning:
		return s.Warning
	case domain.StatusManualInterventionRequired, domain.StatusBlocked:
		return s.Attention
	default:
		return s.Error
	}
}

// ForState returns the style used to render an executor state.
func (s *Styles) ForState(state domain.ExecutionState) lipgloss.Style {
	switch state {
	case domain.StateRunning:
		return s.Subtitle
	case domain.StateIdle:
		return s.Muted
	default:
		return s.ForStatus(domain.StatusFromState(state))
	}
}
