package cli

import (
	"futarinavi/internal/timeline"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("168")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("168"))

	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	amountStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))

	urgencyStyles = map[timeline.Urgency]lipgloss.Style{
		timeline.UrgencyOverdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		timeline.UrgencyUrgent:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		timeline.UrgencySoon:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		timeline.UrgencyUpcoming: lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		timeline.UrgencyFuture:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

// badge renders the urgency label of u in brackets.
func badge(u timeline.Urgency) string {
	return urgencyStyles[u].Render("[" + timeline.UrgencyLabel(u) + "]")
}
