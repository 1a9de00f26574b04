// Package tui is the interactive feedback triage dashboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/triage/internal/controller"
	"github.com/julianstephens/triage/internal/tui/components/detail"
	"github.com/julianstephens/triage/internal/tui/components/feedbacklist"
	"github.com/julianstephens/triage/internal/tui/components/search"
)

type SessionState int

const (
	StateList SessionState = iota
	StateDetail
	StateInput
	StateFilterText
	StateFilterForm
	StateSearch
)

type Options struct {
	Now func() time.Time
	// Reset reseeds the backing store. Nil disables the key.
	Reset func() error
}

type resetDoneMsg struct{ err error }

type Model struct {
	ctrl *controller.Controllers
	opts Options

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	spinner       spinner.Model

	list        feedbacklist.Model
	detail      detail.Model
	search      search.Model
	filterInput textinput.Model
	form        *huh.Form
	filterForm  *FilterFormModel

	width    int
	height   int
	quitting bool
}

func New(ctrl *controller.Controllers, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	fi := textinput.New()
	fi.Prompt = "filter> "
	fi.Placeholder = "title, content, customer or tag"
	fi.CharLimit = 200

	return Model{
		ctrl:        ctrl,
		opts:        opts,
		state:       StateList,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		list:        feedbacklist.New(0, 0, opts.Now),
		detail:      detail.New(opts.Now),
		search:      search.New(),
		filterInput: fi,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ctrl.Init(), m.spinner.Tick)
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateDetail:
		return []key.Binding{m.keys.Back, m.keys.StatusResolved, m.keys.Note, m.keys.Help}
	case StateInput, StateFilterText:
		return []key.Binding{m.keys.Enter, m.keys.Back}
	case StateSearch:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}
	}
	return []key.Binding{m.keys.Enter, m.keys.Search, m.keys.Filters, m.keys.FilterText, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Help, m.keys.Search, m.keys.Filters, m.keys.FilterText, m.keys.Refresh}
	if m.opts.Reset != nil {
		global = append(global, m.keys.Reset)
	}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Focus, m.keys.Back}
	actions := []key.Binding{
		m.keys.StatusNew, m.keys.StatusInReview, m.keys.StatusResolved, m.keys.Archive,
		m.keys.Priority, m.keys.Category, m.keys.Note, m.keys.Tags,
	}
	return [][]key.Binding{global, navigation, actions}
}

// sync copies the store snapshot into the components.
func (m *Model) sync() tea.Cmd {
	snap := m.ctrl.Store.Snapshot()
	cmd := m.list.SetRecords(snap.List)

	hadDetail := m.detail.Record() != nil
	m.detail.SetRecord(snap.Selected)
	if snap.Selected == nil {
		if m.state == StateDetail || m.state == StateInput {
			m.state = StateList
		}
	} else if m.detail.Mode() == detail.InputNote && m.detail.Value() == "" && m.ctrl.Detail.Draft() != "" {
		m.detail.SetValue(m.ctrl.Detail.Draft())
	}
	if hadDetail != (snap.Selected != nil) {
		m.resize()
	}
	return cmd
}

func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	m.help.Width = m.width
	m.search.SetWidth(min(m.width-4, 80))
	m.filterInput.Width = max(m.width-12, 10)

	// header, analytics cards, filter bar, error bar, help
	bodyHeight := max(m.height-12, 5)
	if m.detail.Record() != nil {
		listWidth := m.width / 2
		m.list.SetSize(listWidth-2, bodyHeight)
		m.detail.SetSize(m.width-listWidth-4, bodyHeight)
		return
	}
	m.list.SetSize(m.width-2, bodyHeight)
}
