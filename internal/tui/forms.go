package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/format"
)

// FilterFormModel backs the filter and sort form.
type FilterFormModel struct {
	Status    string
	Priority  string
	Category  string
	SortField models.SortField
	SortDir   models.SortDirection
}

func newFilterFormModel(f models.Filters, s models.Sort) *FilterFormModel {
	or := func(v string) string {
		if v == "" {
			return models.All
		}
		return v
	}
	return &FilterFormModel{
		Status:    or(f.Status),
		Priority:  or(f.Priority),
		Category:  or(f.Category),
		SortField: s.Field,
		SortDir:   s.Direction,
	}
}

func enumOptions[T ~string](values []T) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("All", models.All)}
	for _, v := range values {
		opts = append(opts, huh.NewOption(format.Label(string(v)), string(v)))
	}
	return opts
}

func NewFilterForm(fm *FilterFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status").
				Options(enumOptions(models.Statuses)...).
				Value(&fm.Status),
			huh.NewSelect[string]().
				Title("Priority").
				Options(enumOptions(models.Priorities)...).
				Value(&fm.Priority),
			huh.NewSelect[string]().
				Title("Category").
				Options(enumOptions(models.Categories)...).
				Value(&fm.Category),
		),
		huh.NewGroup(
			huh.NewSelect[models.SortField]().
				Title("Sort by").
				Options(
					huh.NewOption("Created", models.SortCreatedAt),
					huh.NewOption("Updated", models.SortUpdatedAt),
					huh.NewOption("Priority", models.SortPriority),
					huh.NewOption("Status", models.SortStatus),
				).
				Value(&fm.SortField),
			huh.NewSelect[models.SortDirection]().
				Title("Direction").
				Options(
					huh.NewOption("Descending", models.SortDesc),
					huh.NewOption("Ascending", models.SortAsc),
				).
				Value(&fm.SortDir),
		),
	)
}

// Apply builds the filters and sort the form describes, keeping the
// free-text filter from current.
func (fm *FilterFormModel) Apply(current models.Filters) (models.Filters, models.Sort) {
	return models.Filters{
			Status:   fm.Status,
			Priority: fm.Priority,
			Category: fm.Category,
			Search:   current.Search,
		}, models.Sort{
			Field:     fm.SortField,
			Direction: fm.SortDir,
		}
}
