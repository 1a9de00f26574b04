package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/triage/internal/constants"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/format"
)

type InputMode int

const (
	InputNone InputMode = iota
	InputNote
	InputTags
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	noteStyle    = lipgloss.NewStyle().PaddingLeft(2)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("117")).Padding(0, 1)
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
)

type Model struct {
	record *models.Feedback
	input  textinput.Model
	mode   InputMode
	width  int
	height int
	now    func() time.Time
}

func New(now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	ti := textinput.New()
	ti.CharLimit = 2000
	return Model{input: ti, now: now}
}

func (m *Model) SetRecord(r *models.Feedback) {
	if r == nil || m.record == nil || m.record.ID != r.ID {
		m.StopInput()
	}
	m.record = r
}

func (m Model) Record() *models.Feedback { return m.record }

func (m Model) Mode() InputMode { return m.mode }

func (m Model) Value() string { return m.input.Value() }

func (m *Model) SetValue(s string) { m.input.SetValue(s) }

// StartNote focuses the note input, pre-filled with draft.
func (m *Model) StartNote(draft string) tea.Cmd {
	m.mode = InputNote
	m.input.Prompt = "note> "
	m.input.Placeholder = "Add an internal note"
	m.input.SetValue(draft)
	return m.input.Focus()
}

// StartTags focuses the input with the record's tags as a comma list.
func (m *Model) StartTags() tea.Cmd {
	m.mode = InputTags
	m.input.Prompt = "tags> "
	m.input.Placeholder = "comma,separated,tags"
	if m.record != nil {
		m.input.SetValue(strings.Join(m.record.Tags, ", "))
	}
	return m.input.Focus()
}

func (m *Model) StopInput() {
	m.mode = InputNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.mode == InputNone {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-12, 10)
}

// View renders the selected record. pending lists the kinds of change
// still awaiting confirmation.
func (m Model) View(pending []string) string {
	if m.record == nil {
		return ""
	}
	r := m.record
	now := m.now()

	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Title) + "\n")
	fmt.Fprintf(&b, "%s %s <%s>\n\n", labelStyle.Render("From"), r.CustomerName, r.CustomerEmail)

	row := func(label, value string) {
		fmt.Fprintf(&b, "%-10s %s\n", labelStyle.Render(label), value)
	}
	row("Status", format.Label(string(r.Status)))
	row("Priority", format.Label(string(r.Priority)))
	row("Category", format.Label(string(r.Category)))
	row("Created", fmt.Sprintf("%s (%s)", r.CreatedAt.Format(constants.DateTimeFormat), format.Relative(r.CreatedAt, now)))
	row("Updated", format.Relative(r.UpdatedAt, now))
	if r.ResolvedAt != nil {
		row("Resolved", fmt.Sprintf("%s, after %s", format.Relative(*r.ResolvedAt, now), format.Duration(r.ResolvedAt.Sub(r.CreatedAt))))
	}
	if len(pending) > 0 {
		b.WriteString(pendingStyle.Render("saving "+strings.Join(pending, ", ")+"…") + "\n")
	}

	if len(r.Tags) > 0 {
		tags := make([]string, len(r.Tags))
		for i, t := range r.Tags {
			tags[i] = tagStyle.Render(t)
		}
		b.WriteString("\n" + strings.Join(tags, " ") + "\n")
	}

	b.WriteString("\n" + lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(r.Content) + "\n\n")

	fmt.Fprintf(&b, "%s\n", labelStyle.Render(fmt.Sprintf("Notes (%d)", len(r.Notes))))
	if len(r.Notes) == 0 {
		b.WriteString(noteStyle.Render("No notes yet.") + "\n")
	}
	for _, n := range r.Notes {
		meta := fmt.Sprintf("%s, %s", n.AuthorName, format.Relative(n.CreatedAt, now))
		if strings.HasPrefix(n.ID, constants.TempNotePrefix) {
			meta += " " + pendingStyle.Render("(sending)")
		}
		b.WriteString(noteStyle.Render(labelStyle.Render(meta)+"\n"+n.Content) + "\n")
	}

	if m.mode != InputNone {
		b.WriteString("\n" + m.input.View())
	}

	return paneStyle.Width(max(m.width-2, 20)).Render(b.String())
}
