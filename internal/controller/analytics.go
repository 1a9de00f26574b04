package controller

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/triage/internal/gateway"
	"github.com/julianstephens/triage/internal/logger"
	"github.com/julianstephens/triage/internal/state"
)

// Analytics keeps the summary panel current. A failed refresh keeps the
// previous summary.
type Analytics struct {
	ctx   context.Context
	store *state.Store
	gw    gateway.Client
	seq   uint64
}

func NewAnalytics(ctx context.Context, store *state.Store, gw gateway.Client) *Analytics {
	return &Analytics{ctx: ctx, store: store, gw: gw}
}

func (c *Analytics) Refresh() tea.Cmd {
	c.seq++
	seq := c.seq
	ctx, gw := c.ctx, c.gw
	return func() tea.Msg {
		a, err := gw.Summarize(ctx)
		return AnalyticsMsg{Seq: seq, Analytics: a, Err: err}
	}
}

func (c *Analytics) HandleResult(msg AnalyticsMsg) {
	if msg.Seq != c.seq {
		return
	}
	if msg.Err != nil {
		logger.Warn("Failed to refresh analytics", "error", msg.Err)
		return
	}
	c.store.Dispatch(state.SetAnalytics{Analytics: msg.Analytics})
}
