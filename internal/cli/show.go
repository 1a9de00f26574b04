package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/triage/internal/constants"
	"github.com/julianstephens/triage/internal/errors"
	"github.com/julianstephens/triage/internal/format"
)

type ShowCmd struct {
	ID string `arg:"" help:"Feedback ID, e.g. fb-003."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	fb, err := ctx.Gateway.GetByID(context.Background(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to get feedback: %w", err)
	}
	if fb == nil {
		return errors.NotFound(c.ID)
	}
	now := ctx.Now()

	ctx.printf("%s  %s\n", fb.ID, fb.Title)
	ctx.printf("From:     %s <%s>\n", fb.CustomerName, fb.CustomerEmail)
	ctx.printf("Status:   %s\n", format.Label(string(fb.Status)))
	ctx.printf("Priority: %s\n", format.Label(string(fb.Priority)))
	ctx.printf("Category: %s\n", format.Label(string(fb.Category)))
	ctx.printf("Created:  %s (%s)\n", fb.CreatedAt.Format(constants.DateTimeFormat), format.Relative(fb.CreatedAt, now))
	ctx.printf("Updated:  %s\n", format.Relative(fb.UpdatedAt, now))
	if fb.ResolvedAt != nil {
		ctx.printf("Resolved: %s, after %s\n", format.Relative(*fb.ResolvedAt, now), format.Duration(fb.ResolvedAt.Sub(fb.CreatedAt)))
	}
	if len(fb.Tags) > 0 {
		ctx.printf("Tags:     %s\n", strings.Join(fb.Tags, ", "))
	}
	ctx.printf("\n%s\n", indent(fb.Content))

	if len(fb.Notes) == 0 {
		return nil
	}
	ctx.printf("\nNotes:\n")
	for _, n := range fb.Notes {
		ctx.printf("  %s, %s:\n  %s\n", n.AuthorName, format.Relative(n.CreatedAt, now), indent(n.Content))
	}
	return nil
}
