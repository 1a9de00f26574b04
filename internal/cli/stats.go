package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/triage/internal/format"
	"github.com/julianstephens/triage/internal/models"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	a, err := ctx.Gateway.Summarize(context.Background())
	if err != nil {
		return fmt.Errorf("failed to compute analytics: %w", err)
	}

	avg := "n/a"
	if a.AverageResolutionTime != nil {
		avg = format.Duration(*a.AverageResolutionTime)
	}

	ctx.printf("Total feedback:      %s\n", format.Count(a.TotalCount))
	ctx.printf("This week:           %s\n", format.Count(a.FeedbackThisWeek))
	ctx.printf("This month:          %s\n", format.Count(a.FeedbackThisMonth))
	ctx.printf("Avg resolution time: %s\n", avg)

	ctx.printf("\nBy status:\n")
	for _, s := range models.Statuses {
		ctx.printf("  %-16s %s\n", format.Label(string(s)), format.Count(a.ByStatus[s]))
	}
	ctx.printf("\nBy priority:\n")
	for _, p := range models.Priorities {
		ctx.printf("  %-16s %s\n", format.Label(string(p)), format.Count(a.ByPriority[p]))
	}
	ctx.printf("\nBy category:\n")
	for _, cat := range models.Categories {
		ctx.printf("  %-16s %s\n", format.Label(string(cat)), format.Count(a.ByCategory[cat]))
	}
	return nil
}
