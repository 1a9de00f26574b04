package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/triage/internal/controller"
	"github.com/julianstephens/triage/internal/logger"
	"github.com/julianstephens/triage/internal/state"
	"github.com/julianstephens/triage/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := state.NewStore(state.Initial())

	// The error bar is the only place failures surface on screen; keep a
	// trail of them in the log file.
	lastErr := ""
	unsubscribe := store.Subscribe(func(s state.Snapshot) {
		if s.Error != "" && s.Error != lastErr {
			logger.Info("Error shown", "message", s.Error)
		}
		lastErr = s.Error
	})
	defer unsubscribe()

	ctrl := controller.New(runCtx, store, ctx.Gateway, controller.Options{
		Debounce: ctx.Config.Debounce,
		Author:   controller.Author{ID: ctx.Config.User.ID, Name: ctx.Config.User.Name},
		Now:      ctx.Now,
	})
	model := tui.New(ctrl, tui.Options{Now: ctx.Now, Reset: ctx.Gateway.Reset})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard exited: %w", err)
	}
	return nil
}
