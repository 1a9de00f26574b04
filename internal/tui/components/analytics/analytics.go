package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/format"
)

var (
	cardStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View renders the summary cards. a may be nil before the first load.
func View(a *models.Analytics, now time.Time, width int) string {
	if a == nil {
		return labelStyle.Render("Loading analytics…")
	}

	avg := "n/a"
	if a.AverageResolutionTime != nil {
		avg = format.Duration(*a.AverageResolutionTime)
	}

	cards := []string{
		card("Total", format.Count(a.TotalCount)),
		card("New", format.Count(a.ByStatus[models.StatusNew])),
		card("In review", format.Count(a.ByStatus[models.StatusInReview])),
		card("Resolved", format.Count(a.ByStatus[models.StatusResolved])),
		card("Critical", format.Count(a.ByPriority[models.PriorityCritical])),
		card("This week", format.Count(a.FeedbackThisWeek)),
		card("Avg resolution", avg),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	var cats []string
	for _, c := range models.Categories {
		cats = append(cats, fmt.Sprintf("%s %d", format.Label(string(c)), a.ByCategory[c]))
	}
	footer := labelStyle.Render(strings.Join(cats, " · ") + " · updated " + format.Relative(a.ComputedAt, now))

	return lipgloss.NewStyle().MaxWidth(width).Render(lipgloss.JoinVertical(lipgloss.Left, row, footer))
}

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}
