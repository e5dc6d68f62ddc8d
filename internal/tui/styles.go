package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fernwood/tally/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7AA2F7"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#666666"))

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("#7AA2F7")).
			Bold(true).
			Underline(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 2).
			MarginRight(1)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	cardValueStyle = lipgloss.NewStyle().
			Bold(true)

	incomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ECE6A"))

	expenseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7768E"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F7768E")).
				Bold(true)

	jarGreenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ECE6A"))
	jarYellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0AF68"))
	jarRedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7768E"))

	notificationStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#7DCFFF")).
				Padding(0, 1)

	trendBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7AA2F7"))
)

// jarStyle maps the tax jar's traffic-light status to a render style.
func jarStyle(status model.JarStatus) lipgloss.Style {
	switch status {
	case model.JarGreen:
		return jarGreenStyle
	case model.JarYellow:
		return jarYellowStyle
	default:
		return jarRedStyle
	}
}
