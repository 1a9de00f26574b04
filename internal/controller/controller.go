// Package controller turns user intents into gateway commands and commits
// their results into the shared state.
package controller

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/triage/internal/gateway"
	"github.com/julianstephens/triage/internal/state"
)

type Options struct {
	Debounce time.Duration
	Author   Author
	Now      func() time.Time
}

// Controllers groups the dashboard's controllers over one store.
type Controllers struct {
	Store     *state.Store
	List      *List
	Detail    *Detail
	Search    *Search
	Analytics *Analytics
}

func New(ctx context.Context, store *state.Store, gw gateway.Client, opts Options) *Controllers {
	detail := NewDetail(ctx, store, gw, opts.Author, opts.Now)
	list := NewList(ctx, store, gw, opts.Debounce)
	list.replay = detail.Replay
	return &Controllers{
		Store:     store,
		List:      list,
		Detail:    detail,
		Search:    NewSearch(ctx, store, gw, detail, opts.Debounce),
		Analytics: NewAnalytics(ctx, store, gw),
	}
}

// Init loads the list and the analytics summary.
func (c *Controllers) Init() tea.Cmd {
	return tea.Batch(c.List.Retry(), c.Analytics.Refresh())
}

// Handle routes a result message to its controller. ok is false for
// messages that are not controller results.
func (c *Controllers) Handle(msg tea.Msg) (cmd tea.Cmd, ok bool) {
	switch msg := msg.(type) {
	case ListLoadedMsg:
		c.List.HandleListResult(msg)
	case FilterTickMsg:
		return c.List.HandleFilterTick(msg), true
	case UpdateResultMsg:
		return c.Detail.HandleUpdateResult(msg), true
	case NoteResultMsg:
		return c.Detail.HandleNoteResult(msg), true
	case SearchTickMsg:
		return c.Search.HandleTick(msg), true
	case SearchResultMsg:
		c.Search.HandleResult(msg)
	case AnalyticsMsg:
		c.Analytics.HandleResult(msg)
	case MutatedMsg:
		return c.Analytics.Refresh(), true
	default:
		return nil, false
	}
	return nil, true
}
