// Package cli holds the kong commands of the triage binary.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/triage/internal/config"
	"github.com/julianstephens/triage/internal/format"
	"github.com/julianstephens/triage/internal/gateway"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/storage"
)

type Context struct {
	Config  config.Config
	Store   storage.Provider
	Gateway *gateway.Gateway
	Out     io.Writer
	Now     func() time.Time
}

// NewContext opens the configured backend, seeds it and puts the gateway
// in front of it.
func NewContext(cfg config.Config) (*Context, error) {
	return newContext(cfg, os.Stdout, time.Now)
}

func newContext(cfg config.Config, out io.Writer, now func() time.Time) (*Context, error) {
	store, err := storage.Open(cfg.Backend, now())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}
	gw := gateway.New(store, gateway.Options{
		LatencyFactor: cfg.Gateway.LatencyFactor,
		FailureRate:   cfg.Gateway.FailureRate,
		Timeout:       cfg.Gateway.Timeout,
		AuthorID:      cfg.User.ID,
		AuthorName:    cfg.User.Name,
		Now:           now,
	})
	return &Context{Config: cfg, Store: store, Gateway: gw, Out: out, Now: now}, nil
}

func (c *Context) Close() error {
	return c.Store.Close()
}

func (c *Context) printf(f string, args ...any) {
	fmt.Fprintf(c.Out, f, args...)
}

// printRow writes the one-line summary used by list and search.
func (c *Context) printRow(r models.Feedback) {
	c.printf("%-8s %-10s %-9s %-16s %s (%s)\n",
		r.ID, r.Status, r.Priority, r.Category, r.Title, format.Relative(r.CreatedAt, c.Now()))
}

func (c *Context) printCount(n int, noun string) {
	if n != 1 {
		noun += "s"
	}
	c.printf("\n%s %s\n", format.Count(n), noun)
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
