package models

import (
	"testing"
	"time"
)

func TestFiltersValidate(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		wantErr bool
	}{
		{name: "defaults", filters: DefaultFilters()},
		{name: "empty", filters: Filters{}},
		{name: "concrete", filters: Filters{Status: "in-review", Priority: "high", Category: "feature-request"}},
		{name: "bad status", filters: Filters{Status: "closed"}, wantErr: true},
		{name: "bad category", filters: Filters{Category: "praise"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.filters.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFiltersMatches(t *testing.T) {
	f := Feedback{Status: StatusNew, Priority: PriorityHigh, Category: CategoryBug, Title: "Crash", CustomerEmail: "x@crash.io"}

	tests := []struct {
		name    string
		filters Filters
		want    bool
	}{
		{name: "all", filters: DefaultFilters(), want: true},
		{name: "status match", filters: Filters{Status: "new"}, want: true},
		{name: "status mismatch", filters: Filters{Status: "resolved"}, want: false},
		{name: "all constraints", filters: Filters{Status: "new", Priority: "high", Category: "bug", Search: "crash"}, want: true},
		{name: "search excludes email", filters: Filters{Search: "crash.io"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Matches(f); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortRecordsByRank(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []Feedback{
		{ID: "a", Priority: PriorityLow, Status: StatusResolved, CreatedAt: base},
		{ID: "b", Priority: PriorityCritical, Status: StatusArchived, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Priority: PriorityMedium, Status: StatusNew, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "d", Priority: PriorityLow, Status: StatusInReview, CreatedAt: base.Add(3 * time.Hour)},
	}

	tests := []struct {
		sort Sort
		want string
	}{
		{sort: Sort{Field: SortPriority, Direction: SortDesc}, want: "bcad"},
		{sort: Sort{Field: SortPriority, Direction: SortAsc}, want: "adcb"},
		{sort: Sort{Field: SortStatus, Direction: SortDesc}, want: "cdab"},
		{sort: Sort{Field: SortCreatedAt, Direction: SortDesc}, want: "dcba"},
		{sort: Sort{Field: SortCreatedAt, Direction: SortAsc}, want: "abcd"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort.Field)+"-"+string(tt.sort.Direction), func(t *testing.T) {
			got := Apply(records, nil, &tt.sort)
			var order string
			for _, r := range got {
				order += r.ID
			}
			if order != tt.want {
				t.Errorf("order = %s, want %s", order, tt.want)
			}
		})
	}
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	records := []Feedback{{ID: "a", Tags: []string{"x"}}}
	got := Apply(records, nil, nil)
	got[0].Tags[0] = "y"
	if records[0].Tags[0] != "x" {
		t.Error("Apply() result shares tag storage with input")
	}
}

func TestUpdatePayloadValidate(t *testing.T) {
	bad := Status("closed")
	good := PriorityHigh
	if err := (UpdatePayload{Status: &bad}).Validate(); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := (UpdatePayload{Priority: &good}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (UpdatePayload{Tags: []string{"ok", ""}}).Validate(); err == nil {
		t.Error("expected error for blank tag")
	}
	if !(UpdatePayload{}).Empty() {
		t.Error("zero payload should be empty")
	}
}

func TestValidateNoteContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t"} {
		if err := ValidateNoteContent(content); err == nil {
			t.Errorf("ValidateNoteContent(%q) = nil, want error", content)
		}
	}
	if err := ValidateNoteContent("looks good"); err != nil {
		t.Errorf("ValidateNoteContent() error = %v", err)
	}
}
