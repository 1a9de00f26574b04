package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortUpdatedAt SortField = "updatedAt"
	SortPriority  SortField = "priority"
	SortStatus    SortField = "status"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Filters constrains a list query. Empty or "all" enum fields mean no constraint.
type Filters struct {
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=all new in-review resolved archived"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=all low medium high critical"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=all bug feature-request improvement question other"`
	Search   string `json:"search,omitempty"`
}

type Sort struct {
	Field     SortField     `json:"field" validate:"omitempty,oneof=createdAt updatedAt priority status"`
	Direction SortDirection `json:"direction" validate:"omitempty,oneof=asc desc"`
}

// DefaultFilters returns the unconstrained filter set the dashboard starts with.
func DefaultFilters() Filters {
	return Filters{Status: All, Priority: All, Category: All}
}

// DefaultSort is newest first.
func DefaultSort() Sort {
	return Sort{Field: SortCreatedAt, Direction: SortDesc}
}

func (f Filters) Validate() error {
	return validate.Struct(f)
}

func (s Sort) Validate() error {
	return validate.Struct(s)
}

func constrained(v string) bool {
	return v != "" && v != All
}

// Matches reports whether the record satisfies every active constraint.
func (f Filters) Matches(fb Feedback) bool {
	if constrained(f.Status) && string(fb.Status) != f.Status {
		return false
	}
	if constrained(f.Priority) && string(fb.Priority) != f.Priority {
		return false
	}
	if constrained(f.Category) && string(fb.Category) != f.Category {
		return false
	}
	if f.Search != "" && !fb.MatchesText(f.Search, false) {
		return false
	}
	return true
}

// Apply filters and sorts records, returning a new slice. A nil sort means
// the default ordering.
func Apply(records []Feedback, filters *Filters, sort *Sort) []Feedback {
	result := make([]Feedback, 0, len(records))
	for _, r := range records {
		if filters == nil || filters.Matches(r) {
			result = append(result, r.Clone())
		}
	}
	s := DefaultSort()
	if sort != nil && sort.Field != "" {
		s = *sort
	}
	SortRecords(result, s)
	return result
}

// SortRecords sorts in place. Priority and status compare by rank, not lexically.
// Equal keys keep their relative order.
func SortRecords(records []Feedback, s Sort) {
	slices.SortStableFunc(records, func(a, b Feedback) int {
		var cmp int
		switch s.Field {
		case SortUpdatedAt:
			cmp = a.UpdatedAt.Compare(b.UpdatedAt)
		case SortPriority:
			cmp = a.Priority.Rank() - b.Priority.Rank()
		case SortStatus:
			cmp = a.Status.Rank() - b.Status.Rank()
		default:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		}
		if s.Direction == SortDesc {
			return -cmp
		}
		return cmp
	})
}

// UpdatePayload is a partial update. Nil fields are left untouched.
type UpdatePayload struct {
	Status   *Status   `json:"status,omitempty" validate:"omitempty,oneof=new in-review resolved archived"`
	Priority *Priority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Category *Category `json:"category,omitempty" validate:"omitempty,oneof=bug feature-request improvement question other"`
	Tags     []string  `json:"tags,omitempty" validate:"omitempty,dive,required"`
}

func (p UpdatePayload) Validate() error {
	return validate.Struct(p)
}

func (p UpdatePayload) Empty() bool {
	return p.Status == nil && p.Priority == nil && p.Category == nil && p.Tags == nil
}

// String renders the touched fields, used in log lines.
func (p UpdatePayload) String() string {
	var parts []string
	if p.Status != nil {
		parts = append(parts, fmt.Sprintf("status=%s", *p.Status))
	}
	if p.Priority != nil {
		parts = append(parts, fmt.Sprintf("priority=%s", *p.Priority))
	}
	if p.Category != nil {
		parts = append(parts, fmt.Sprintf("category=%s", *p.Category))
	}
	if p.Tags != nil {
		parts = append(parts, fmt.Sprintf("tags=%s", strings.Join(p.Tags, ",")))
	}
	return strings.Join(parts, " ")
}

// ValidateNoteContent rejects blank note bodies.
func ValidateNoteContent(content string) error {
	return validate.Var(strings.TrimSpace(content), "required")
}
