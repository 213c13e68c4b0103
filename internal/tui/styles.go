package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	weekdayHeaderStyle = lipgloss.NewStyle().Faint(true)

	todayCellStyle    = lipgloss.NewStyle().Reverse(true).Bold(true)
	selectedCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("236")).
				Background(lipgloss.Color("205"))
	weekendCellStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	adjacentCellStyle = lipgloss.NewStyle().Faint(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	completedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	clockStyle     = lipgloss.NewStyle().Faint(true)
	dangerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	docStyle = lipgloss.NewStyle().Margin(1, 2)
)
