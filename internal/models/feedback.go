package models

import (
	"strings"
	"time"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusInReview Status = "in-review"
	StatusResolved Status = "resolved"
	StatusArchived Status = "archived"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type Category string

const (
	CategoryBug            Category = "bug"
	CategoryFeatureRequest Category = "feature-request"
	CategoryImprovement    Category = "improvement"
	CategoryQuestion       Category = "question"
	CategoryOther          Category = "other"
)

// All is the filter value meaning "no constraint".
const All = "all"

var (
	Statuses   = []Status{StatusNew, StatusInReview, StatusResolved, StatusArchived}
	Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
	Categories = []Category{CategoryBug, CategoryFeatureRequest, CategoryImprovement, CategoryQuestion, CategoryOther}
)

// Rank orders statuses for sorting: new > in-review > resolved > archived.
func (s Status) Rank() int {
	switch s {
	case StatusNew:
		return 4
	case StatusInReview:
		return 3
	case StatusResolved:
		return 2
	case StatusArchived:
		return 1
	default:
		return 0
	}
}

// Rank orders priorities for sorting: critical > high > medium > low.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (s Status) Valid() bool   { return s.Rank() > 0 }
func (p Priority) Valid() bool { return p.Rank() > 0 }

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Note struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Feedback struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Status        Status     `json:"status"`
	Priority      Priority   `json:"priority"`
	Category      Category   `json:"category"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerName  string     `json:"customerName"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	ResolvedAt    *time.Time `json:"resolvedAt"`
	Notes         []Note     `json:"notes"`
	Tags          []string   `json:"tags"`
}

// Clone returns a deep copy so callers can modify slices and pointers freely.
func (f Feedback) Clone() Feedback {
	out := f
	if f.ResolvedAt != nil {
		t := *f.ResolvedAt
		out.ResolvedAt = &t
	}
	out.Notes = append([]Note(nil), f.Notes...)
	out.Tags = append([]string(nil), f.Tags...)
	return out
}

// HasNote reports whether a note with the given ID is attached.
func (f Feedback) HasNote(id string) bool {
	for _, n := range f.Notes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// MatchesText reports a case-insensitive substring match over title, content,
// customer name and tags. When includeEmail is set the customer email is
// searched as well.
func (f Feedback) MatchesText(query string, includeEmail bool) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(f.Title), q) ||
		strings.Contains(strings.ToLower(f.Content), q) ||
		strings.Contains(strings.ToLower(f.CustomerName), q) {
		return true
	}
	if includeEmail && strings.Contains(strings.ToLower(f.CustomerEmail), q) {
		return true
	}
	for _, tag := range f.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// ApplyStatus sets the status and keeps ResolvedAt consistent with it:
// entering resolved stamps at, leaving resolved clears it.
func (f *Feedback) ApplyStatus(status Status, at time.Time) {
	if status == StatusResolved && f.Status != StatusResolved {
		t := at
		f.ResolvedAt = &t
	}
	if status != StatusResolved && f.Status == StatusResolved {
		f.ResolvedAt = nil
	}
	f.Status = status
}
