package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/triage/internal/logger"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/state"
	"github.com/julianstephens/triage/internal/tui/components/detail"
	"github.com/julianstephens/triage/internal/tui/components/feedbacklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.ctrl.Handle(msg); ok {
		synced := m.sync()
		return m, tea.Batch(cmd, synced)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case feedbacklist.OpenMsg:
		m.ctrl.Detail.Select(&msg.Record)
		m.state = StateDetail
		synced := m.sync()
		return m, synced

	case resetDoneMsg:
		if msg.err != nil {
			logger.Error("Failed to reset data", "error", msg.err)
			m.ctrl.Store.Dispatch(state.SetError{Message: "Couldn't reset the demo data."})
			return m, nil
		}
		m.ctrl.Detail.Close()
		m.ctrl.Search.Clear()
		cmd := m.ctrl.Init()
		synced := m.sync()
		return m, tea.Batch(cmd, synced)
	}

	if m.state == StateFilterForm && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if key.Matches(keyMsg, m.keys.Quit) && keyMsg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateSearch:
		return m.updateSearch(keyMsg)
	case StateFilterText:
		return m.updateFilterText(keyMsg)
	case StateInput:
		return m.updateInput(keyMsg)
	}

	if cmd, handled := m.updateGlobal(keyMsg); handled {
		return m, cmd
	}

	if m.state == StateDetail {
		return m.updateDetail(keyMsg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(keyMsg)
	return m, cmd
}

func (m *Model) updateGlobal(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	case key.Matches(msg, m.keys.Search):
		m.previousState = m.state
		m.state = StateSearch
		return m.search.Open(), true
	case key.Matches(msg, m.keys.Filters):
		snap := m.ctrl.Store.Snapshot()
		m.filterForm = newFilterFormModel(snap.Filters, snap.Sort)
		m.form = NewFilterForm(m.filterForm)
		m.previousState = m.state
		m.state = StateFilterForm
		return m.form.Init(), true
	case key.Matches(msg, m.keys.FilterText):
		m.previousState = m.state
		m.state = StateFilterText
		m.filterInput.SetValue(m.ctrl.Store.Snapshot().Filters.Search)
		return m.filterInput.Focus(), true
	case key.Matches(msg, m.keys.Refresh):
		return tea.Batch(m.ctrl.List.Retry(), m.ctrl.Analytics.Refresh(), m.sync()), true
	case key.Matches(msg, m.keys.Reset) && m.opts.Reset != nil:
		reset := m.opts.Reset
		return func() tea.Msg { return resetDoneMsg{err: reset()} }, true
	case key.Matches(msg, m.keys.Focus):
		if m.detail.Record() == nil {
			return nil, true
		}
		if m.state == StateDetail {
			m.state = StateList
		} else {
			m.state = StateDetail
		}
		return nil, true
	}
	return nil, false
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.form = nil
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		filters, sort := m.filterForm.Apply(m.ctrl.Store.Snapshot().Filters)
		m.form = nil
		m.state = m.previousState
		load := m.ctrl.List.ApplyFilters(filters, sort)
		synced := m.sync()
		return m, tea.Batch(load, synced)
	case huh.StateAborted:
		m.form = nil
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.ctrl.Search.Clear()
		m.search.Close()
		m.state = m.previousState
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.ctrl.Search.MoveUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.ctrl.Search.MoveDown()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if len(m.ctrl.Search.Results) == 0 {
			return m, nil
		}
		m.ctrl.Search.Choose(m.ctrl.Search.Cursor)
		m.search.Close()
		m.state = StateDetail
		synced := m.sync()
		return m, synced
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.ctrl.Search.SetQuery(m.search.Value()))
	}
	return m, cmd
}

func (m Model) updateFilterText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Enter) {
		m.filterInput.Blur()
		m.state = m.previousState
		return m, nil
	}

	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != before {
		return m, tea.Batch(cmd, m.ctrl.List.SetSearchFilter(m.filterInput.Value()))
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rec := m.detail.Record()
	if rec == nil {
		m.detail.StopInput()
		m.state = StateList
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.detail.StopInput()
		m.state = StateDetail
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if m.detail.Mode() == detail.InputTags {
			cmd := m.ctrl.Detail.SetTags(rec.ID, strings.Split(m.detail.Value(), ","))
			m.detail.StopInput()
			m.state = StateDetail
			synced := m.sync()
			return m, tea.Batch(cmd, synced)
		}
		cmd, ok := m.ctrl.Detail.AddNote(rec.ID, m.detail.Value())
		if !ok {
			// rejected; the error bar says why
			synced := m.sync()
			return m, synced
		}
		m.detail.StopInput()
		m.state = StateDetail
		synced := m.sync()
		return m, tea.Batch(cmd, synced)
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	if m.detail.Mode() == detail.InputNote {
		m.ctrl.Detail.SetDraft(m.detail.Value())
	}
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rec := m.detail.Record()
	if rec == nil {
		m.state = StateList
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Back):
		m.ctrl.Detail.Close()
		m.state = StateList
	case key.Matches(msg, m.keys.StatusNew):
		cmd = m.ctrl.Detail.ChangeStatus(rec.ID, models.StatusNew)
	case key.Matches(msg, m.keys.StatusInReview):
		cmd = m.ctrl.Detail.ChangeStatus(rec.ID, models.StatusInReview)
	case key.Matches(msg, m.keys.StatusResolved):
		cmd = m.ctrl.Detail.ChangeStatus(rec.ID, models.StatusResolved)
	case key.Matches(msg, m.keys.Archive):
		cmd = m.ctrl.Detail.Archive(rec.ID)
	case key.Matches(msg, m.keys.Priority):
		cmd = m.ctrl.Detail.ChangePriority(rec.ID, next(models.Priorities, rec.Priority))
	case key.Matches(msg, m.keys.Category):
		cmd = m.ctrl.Detail.ChangeCategory(rec.ID, next(models.Categories, rec.Category))
	case key.Matches(msg, m.keys.Note):
		m.state = StateInput
		focus := m.detail.StartNote(m.ctrl.Detail.Draft())
		return m, focus
	case key.Matches(msg, m.keys.Tags):
		m.state = StateInput
		focus := m.detail.StartTags()
		return m, focus
	default:
		return m, nil
	}
	synced := m.sync()
	return m, tea.Batch(cmd, synced)
}

// next returns the value after cur, wrapping around.
func next[T comparable](values []T, cur T) T {
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}
