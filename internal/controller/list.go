package controller

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/triage/internal/errors"
	"github.com/julianstephens/triage/internal/gateway"
	"github.com/julianstephens/triage/internal/logger"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/state"
)

// List loads the feedback list for the current filters and sort. Only the
// response to the most recent request is committed. Methods are called
// from the UI loop.
type List struct {
	ctx      context.Context
	store    *state.Store
	gw       gateway.Client
	debounce time.Duration

	seq         uint64
	debounceSeq uint64
	// replay yields changes not yet confirmed by the gateway; they are
	// re-applied over every freshly loaded list.
	replay func() []state.Action
}

func NewList(ctx context.Context, store *state.Store, gw gateway.Client, debounce time.Duration) *List {
	return &List{ctx: ctx, store: store, gw: gw, debounce: debounce}
}

// Refresh requests the list for filters and sort. The current list stays
// visible while loading.
func (c *List) Refresh(filters models.Filters, sort models.Sort) tea.Cmd {
	c.seq++
	seq := c.seq
	c.store.Dispatch(state.SetLoading{Loading: true})

	ctx, gw := c.ctx, c.gw
	return func() tea.Msg {
		records, err := gw.List(ctx, &filters, &sort)
		return ListLoadedMsg{Seq: seq, Records: records, Err: err}
	}
}

// Retry re-issues the request for the filters and sort currently in state.
func (c *List) Retry() tea.Cmd {
	snap := c.store.Snapshot()
	return c.Refresh(snap.Filters, snap.Sort)
}

func (c *List) HandleListResult(msg ListLoadedMsg) {
	if msg.Seq != c.seq {
		logger.Debug("Dropping stale list response", "seq", msg.Seq, "latest", c.seq)
		return
	}
	if msg.Err != nil {
		logger.Warn("Failed to load feedback", "error", msg.Err)
		c.store.Dispatch(
			state.SetLoading{Loading: false},
			state.SetError{Message: errors.UserMessage("load feedback", msg.Err)},
		)
		return
	}
	actions := []state.Action{
		state.SetList{Records: msg.Records},
		state.SetLoading{Loading: false},
		state.SetError{Message: ""},
	}
	if c.replay != nil {
		actions = append(actions, c.replay()...)
	}
	c.store.Dispatch(actions...)
}

func (c *List) SetStatusFilter(v string) tea.Cmd {
	return c.updateFilters(func(f *models.Filters) { f.Status = v })
}

func (c *List) SetPriorityFilter(v string) tea.Cmd {
	return c.updateFilters(func(f *models.Filters) { f.Priority = v })
}

func (c *List) SetCategoryFilter(v string) tea.Cmd {
	return c.updateFilters(func(f *models.Filters) { f.Category = v })
}

func (c *List) SetSort(s models.Sort) tea.Cmd {
	snap := c.store.Snapshot()
	c.store.Dispatch(state.SetSort{Sort: s})
	return c.Refresh(snap.Filters, s)
}

// ApplyFilters replaces filters and sort together and refreshes once.
func (c *List) ApplyFilters(filters models.Filters, sort models.Sort) tea.Cmd {
	c.store.Dispatch(state.SetFilters{Filters: filters}, state.SetSort{Sort: sort})
	return c.Refresh(filters, sort)
}

// SetSearchFilter stores the free-text filter and starts the debounce. The
// list is refreshed only when the tick for the latest keystroke arrives.
func (c *List) SetSearchFilter(text string) tea.Cmd {
	snap := c.store.Snapshot()
	f := snap.Filters
	f.Search = text
	c.store.Dispatch(state.SetFilters{Filters: f})

	c.debounceSeq++
	seq := c.debounceSeq
	return tea.Tick(c.debounce, func(time.Time) tea.Msg {
		return FilterTickMsg{Seq: seq}
	})
}

func (c *List) HandleFilterTick(msg FilterTickMsg) tea.Cmd {
	if msg.Seq != c.debounceSeq {
		return nil
	}
	return c.Retry()
}

func (c *List) updateFilters(fn func(*models.Filters)) tea.Cmd {
	snap := c.store.Snapshot()
	f := snap.Filters
	fn(&f)
	c.store.Dispatch(state.SetFilters{Filters: f})
	return c.Refresh(f, snap.Sort)
}
