package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/triage/internal/constants"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/format"
)

var (
	popoverStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("228"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	previewLength = constants.PreviewLength / 2
)

// Results is what the popover needs from the search controller.
type Results struct {
	Query   string
	Records []models.Feedback
	Cursor  int
	Busy    bool
	Err     string
}

type Model struct {
	input textinput.Model
	width int
}

func New() Model {
	ti := textinput.New()
	ti.Prompt = "search> "
	ti.Placeholder = "title, content, customer, email or tag"
	ti.CharLimit = 200
	return Model{input: ti}
}

func (m *Model) Open() tea.Cmd {
	m.input.SetValue("")
	return m.input.Focus()
}

func (m *Model) Close() {
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) Value() string { return m.input.Value() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) SetWidth(width int) {
	m.width = width
	m.input.Width = max(width-14, 10)
}

func (m Model) View(r Results, spinner string) string {
	var b strings.Builder
	b.WriteString(m.input.View())
	if r.Busy {
		b.WriteString(" " + spinner)
	}
	b.WriteString("\n\n")

	mark := func(s string) string { return matchStyle.Render(s) }
	switch {
	case r.Err != "":
		b.WriteString(errorStyle.Render(r.Err))
	case strings.TrimSpace(r.Query) == "":
		b.WriteString(dimStyle.Render("Type to search all feedback."))
	case len(r.Records) == 0 && !r.Busy:
		b.WriteString(dimStyle.Render(fmt.Sprintf("No results for %q.", r.Query)))
	default:
		shown := r.Records
		if len(shown) > constants.SearchResultsMaxLen {
			shown = shown[:constants.SearchResultsMaxLen]
		}
		for i, fb := range shown {
			prefix := "  "
			if i == r.Cursor {
				prefix = cursorStyle.Render("> ")
			}
			title := format.Highlight(fb.Title, r.Query, mark)
			preview := format.Highlight(format.Preview(fb.Content, previewLength), r.Query, mark)
			fmt.Fprintf(&b, "%s%s\n    %s\n", prefix, title, dimStyle.Render(fb.CustomerName+" · ")+preview)
		}
		if extra := len(r.Records) - len(shown); extra > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  and %d more", extra)))
		}
	}

	return popoverStyle.Width(max(m.width-4, 30)).Render(b.String())
}
