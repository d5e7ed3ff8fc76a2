package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	accentColor  = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#EF4444") // Red
	fgColor      = lipgloss.Color("#F9FAFB") // Light
	gridFgColor  = lipgloss.Color("#111827") // Near-black, for colored event chips

	// Layout styles
	AppStyle    = lipgloss.NewStyle().Padding(1, 2)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)

	// Week grid
	GutterStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	DayHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(fgColor)
	TodayStyle     = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	EmptyCellStyle = lipgloss.NewStyle().Foreground(mutedColor)
	CursorStyle    = lipgloss.NewStyle().Background(primaryColor).Foreground(fgColor)

	// Detail panel
	DetailPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primaryColor).Padding(1, 2)
	TitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	LabelStyle       = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Width(10)
	ValueStyle       = lipgloss.NewStyle().Foreground(fgColor)

	// Help bar and status line
	HelpStyle    = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	WarnStyle    = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
)

// ChipStyle renders an event slice in its palette color.
func ChipStyle(hex string, selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Foreground(gridFgColor)
	if selected {
		s = s.Bold(true).Underline(true)
	}
	return s
}
