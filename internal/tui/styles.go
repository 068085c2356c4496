package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/domain/trip"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#007AFF"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3B30"))
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
	statValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34C759"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#007AFF"))
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#007AFF")).
			Padding(1, 2).
			Width(48)
	emptyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
)

// statusBadge renders a trip status in its label color
func statusBadge(s trip.Status) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.Color())).Render(s.Label())
}
