package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/triage/internal/constants"
	"github.com/julianstephens/triage/internal/controller"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/tui/components/analytics"
	"github.com/julianstephens/triage/internal/tui/components/search"
	"github.com/julianstephens/triage/internal/format"
)

var pendingKinds = []controller.OpKind{controller.OpStatus, controller.OpPriority, controller.OpCategory, controller.OpTags}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.ctrl.Store.Snapshot()

	var body string
	switch m.state {
	case StateFilterForm:
		if m.form != nil {
			body = m.form.View()
		}
	case StateSearch:
		body = lipgloss.Place(m.width, max(m.height-12, 5), lipgloss.Center, lipgloss.Top, m.viewSearch())
	default:
		body = m.viewBody()
	}

	sections := []string{
		m.viewHeader(snap.Loading, snap.Filters, snap.Sort),
		analytics.View(snap.Analytics, m.opts.Now(), m.width),
	}
	if snap.Error != "" {
		sections = append(sections, errorBarStyle.Render(fmt.Sprintf("%s  (r to retry)", snap.Error)))
	}
	if m.state == StateFilterText || snap.Filters.Search != "" {
		sections = append(sections, m.filterInput.View())
	}
	sections = append(sections, body, m.help.View(m))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewHeader(loading bool, f models.Filters, s models.Sort) string {
	title := headerStyle.Render(strings.ToUpper(constants.AppName))
	if loading {
		title += " " + m.spinner.View()
	}

	var parts []string
	for _, p := range []struct{ label, value string }{
		{"status", f.Status},
		{"priority", f.Priority},
		{"category", f.Category},
	} {
		if p.value != "" && p.value != models.All {
			parts = append(parts, fmt.Sprintf("%s=%s", p.label, format.Label(p.value)))
		}
	}
	if s.Field != "" {
		parts = append(parts, fmt.Sprintf("sort=%s %s", s.Field, s.Direction))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, filterSummaryStyle.Render(strings.Join(parts, "  ")))
}

func (m Model) viewBody() string {
	rec := m.detail.Record()
	if rec == nil {
		return m.list.View()
	}

	var pending []string
	for _, k := range pendingKinds {
		if m.ctrl.Detail.Pending(rec.ID, k) {
			pending = append(pending, k.String())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), m.detail.View(pending))
}

func (m Model) viewSearch() string {
	s := m.ctrl.Search
	spin := ""
	if s.Busy {
		spin = m.spinner.View()
	}
	return m.search.View(search.Results{
		Query:   s.Query,
		Records: s.Results,
		Cursor:  s.Cursor,
		Busy:    s.Busy,
		Err:     s.Err,
	}, spin)
}
