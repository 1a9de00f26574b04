package controller

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/triage/internal/errors"
	"github.com/julianstephens/triage/internal/gateway"
	"github.com/julianstephens/triage/internal/logger"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/state"
)

// Search drives the quick-search popover. Its results are independent of
// the list filters.
type Search struct {
	ctx      context.Context
	store    *state.Store
	gw       gateway.Client
	detail   *Detail
	debounce time.Duration

	seq     uint64
	Query   string
	Results []models.Feedback
	Busy    bool
	Cursor  int
	Err     string
}

func NewSearch(ctx context.Context, store *state.Store, gw gateway.Client, detail *Detail, debounce time.Duration) *Search {
	return &Search{ctx: ctx, store: store, gw: gw, detail: detail, debounce: debounce}
}

// SetQuery records the text and starts the debounce for it.
func (c *Search) SetQuery(text string) tea.Cmd {
	c.Query = text
	c.store.Dispatch(state.SetSearchQuery{Query: text})
	c.seq++
	seq := c.seq
	return tea.Tick(c.debounce, func(time.Time) tea.Msg {
		return SearchTickMsg{Seq: seq}
	})
}

func (c *Search) HandleTick(msg SearchTickMsg) tea.Cmd {
	if msg.Seq != c.seq {
		return nil
	}
	if strings.TrimSpace(c.Query) == "" {
		c.Results = nil
		c.Busy = false
		c.Cursor = 0
		return nil
	}

	c.Busy = true
	seq, query := msg.Seq, c.Query
	ctx, gw := c.ctx, c.gw
	return func() tea.Msg {
		records, err := gw.Search(ctx, query)
		return SearchResultMsg{Seq: seq, Records: records, Err: err}
	}
}

func (c *Search) HandleResult(msg SearchResultMsg) {
	if msg.Seq != c.seq {
		logger.Debug("Dropping stale search response", "seq", msg.Seq, "latest", c.seq)
		return
	}
	c.Busy = false
	c.Cursor = 0
	if msg.Err != nil {
		logger.Warn("Search failed", "query", c.Query, "error", msg.Err)
		c.Err = errors.UserMessage("search", msg.Err)
		c.store.Dispatch(state.SetError{Message: c.Err})
		return
	}
	c.Err = ""
	c.Results = msg.Records
}

func (c *Search) MoveUp() {
	if c.Cursor > 0 {
		c.Cursor--
	}
}

func (c *Search) MoveDown() {
	if c.Cursor < len(c.Results)-1 {
		c.Cursor++
	}
}

// Choose opens the result at index in the detail pane and closes the popover.
func (c *Search) Choose(index int) {
	if index < 0 || index >= len(c.Results) {
		return
	}
	// results are a snapshot; prefer the store copy, which carries any
	// change made since the search ran
	fb := c.Results[index]
	if cur, ok := c.store.Snapshot().Find(fb.ID); ok {
		fb = cur
	}
	c.detail.Select(&fb)
	c.Clear()
}

// Clear resets the popover. Responses still in flight are discarded.
func (c *Search) Clear() {
	c.seq++
	c.Query = ""
	c.Results = nil
	c.Busy = false
	c.Cursor = 0
	c.Err = ""
	c.store.Dispatch(state.SetSearchQuery{Query: ""})
}
