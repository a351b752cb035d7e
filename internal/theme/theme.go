package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the window shell.
type Styles struct {
	Header       *lipgloss.Style
	Footer       *lipgloss.Style
	Tab          *lipgloss.Style
	ActiveTab    *lipgloss.Style
	DirtyMark    *lipgloss.Style
	Pane         *lipgloss.Style
	ActivePane   *lipgloss.Style
	PaneTitle    *lipgloss.Style
	ChatPanel    *lipgloss.Style
	Terminal     *lipgloss.Style
	Toast        *lipgloss.Style
	Error        *lipgloss.Style
	Picker       *lipgloss.Style
	PickerItem   *lipgloss.Style
	PickerChoice *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	DirtyMark: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Pane: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("238")),
	),
	ActivePane: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("33")),
	),
	PaneTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
	),
	ChatPanel: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("135")),
	),
	Terminal: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Toast: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Picker: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")).Padding(0, 1),
	),
	PickerItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	PickerChoice: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
}

// Default returns the shared style set.
func Default() Styles {
	return defaultStyles
}

func ptr(s lipgloss.Style) *lipgloss.Style {
	return &s
}
