package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/triage/internal/constants"
	"github.com/julianstephens/triage/internal/format"
)

type SearchCmd struct {
	Query string `arg:"" help:"Text to look for in titles, content, customers, emails and tags."`
}

func (c *SearchCmd) Run(ctx *Context) error {
	if strings.TrimSpace(c.Query) == "" {
		return fmt.Errorf("search query cannot be empty")
	}

	records, err := ctx.Gateway.Search(context.Background(), c.Query)
	if err != nil {
		return fmt.Errorf("failed to search feedback: %w", err)
	}
	if len(records) == 0 {
		ctx.printf("No matches for %q\n", c.Query)
		return nil
	}

	mark := func(s string) string { return "[" + s + "]" }
	for _, r := range records {
		ctx.printRow(r)
		ctx.printf("         %s\n", format.Highlight(format.Preview(r.Content, constants.PreviewLength), c.Query, mark))
	}
	ctx.printCount(len(records), "match")
	return nil
}
