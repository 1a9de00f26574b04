package feedbacklist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/format"
)

// OpenMsg asks the root model to open a record in the detail pane.
type OpenMsg struct {
	Record models.Feedback
}

type Item struct {
	Feedback models.Feedback
	Now      time.Time
}

func (i Item) Title() string {
	return fmt.Sprintf("%s %s", statusMarker(i.Feedback.Status), i.Feedback.Title)
}

func (i Item) Description() string {
	return fmt.Sprintf("%s · %s · %s · %s",
		format.Label(string(i.Feedback.Priority)),
		format.Label(string(i.Feedback.Category)),
		i.Feedback.CustomerName,
		format.Relative(i.Feedback.CreatedAt, i.Now),
	)
}

func (i Item) FilterValue() string { return i.Feedback.Title }

func statusMarker(s models.Status) string {
	switch s {
	case models.StatusNew:
		return "●"
	case models.StatusInReview:
		return "◐"
	case models.StatusResolved:
		return "✓"
	case models.StatusArchived:
		return "▪"
	default:
		return " "
	}
}

type KeyMap struct {
	Open key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
	now  func() time.Time
}

func New(width, height int, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Feedback"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// Filtering happens on the gateway.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open}
	}

	return Model{list: l, keys: keys, now: now}
}

// SetRecords replaces the items, keeping the cursor on the same record
// when it is still present.
func (m *Model) SetRecords(records []models.Feedback) tea.Cmd {
	var selectedID string
	if it, ok := m.list.SelectedItem().(Item); ok {
		selectedID = it.Feedback.ID
	}

	now := m.now()
	items := make([]list.Item, len(records))
	index := 0
	for i, r := range records {
		items[i] = Item{Feedback: r, Now: now}
		if r.ID == selectedID {
			index = i
		}
	}
	cmd := m.list.SetItems(items)
	m.list.Select(index)
	return cmd
}

// Selected returns the record under the cursor.
func (m Model) Selected() (models.Feedback, bool) {
	it, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Feedback{}, false
	}
	return it.Feedback, true
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Open) {
		if fb, ok := m.Selected(); ok {
			return m, func() tea.Msg { return OpenMsg{Record: fb} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return fmt.Sprintf("No feedback matches the current filters.\n\n%s", emptyHint)
	}
	return m.list.View()
}

const emptyHint = "Press f to change the filters."

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
