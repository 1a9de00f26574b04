package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/triage/internal/models"
)

type ListCmd struct {
	Status   string `help:"Filter by status." enum:"all,new,in-review,resolved,archived" default:"all"`
	Priority string `help:"Filter by priority." enum:"all,low,medium,high,critical" default:"all"`
	Category string `help:"Filter by category." enum:"all,bug,feature-request,improvement,question,other" default:"all"`
	Search   string `help:"Match title, content, customer name or tag."`
	Sort     string `help:"Sort field." enum:"createdAt,updatedAt,priority,status" default:"createdAt"`
	Dir      string `help:"Sort direction." enum:"asc,desc" default:"desc"`
}

func (c *ListCmd) Run(ctx *Context) error {
	filters := models.Filters{
		Status:   c.Status,
		Priority: c.Priority,
		Category: c.Category,
		Search:   c.Search,
	}
	sort := models.Sort{Field: models.SortField(c.Sort), Direction: models.SortDirection(c.Dir)}

	records, err := ctx.Gateway.List(context.Background(), &filters, &sort)
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}
	if len(records) == 0 {
		ctx.printf("No feedback matches the filters\n")
		return nil
	}

	for _, r := range records {
		ctx.printRow(r)
	}
	ctx.printCount(len(records), "item")
	return nil
}
