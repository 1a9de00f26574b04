package models

import (
	"testing"
	"time"
)

func TestApplyStatusResolvedAt(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	earlier := at.Add(-time.Hour)

	tests := []struct {
		name         string
		from         Status
		resolvedAt   *time.Time
		to           Status
		wantResolved *time.Time
	}{
		{name: "enter resolved stamps", from: StatusNew, to: StatusResolved, wantResolved: &at},
		{name: "stay resolved keeps stamp", from: StatusResolved, resolvedAt: &earlier, to: StatusResolved, wantResolved: &earlier},
		{name: "leave resolved clears", from: StatusResolved, resolvedAt: &earlier, to: StatusInReview, wantResolved: nil},
		{name: "unrelated change", from: StatusNew, to: StatusArchived, wantResolved: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Feedback{Status: tt.from, ResolvedAt: tt.resolvedAt}
			f.ApplyStatus(tt.to, at)
			if f.Status != tt.to {
				t.Errorf("Status = %s, want %s", f.Status, tt.to)
			}
			switch {
			case tt.wantResolved == nil && f.ResolvedAt != nil:
				t.Errorf("ResolvedAt = %v, want nil", f.ResolvedAt)
			case tt.wantResolved != nil && (f.ResolvedAt == nil || !f.ResolvedAt.Equal(*tt.wantResolved)):
				t.Errorf("ResolvedAt = %v, want %v", f.ResolvedAt, *tt.wantResolved)
			}
		})
	}
}

func TestMatchesText(t *testing.T) {
	f := Feedback{
		Title:         "Export broken",
		Content:       "The CSV is empty",
		CustomerName:  "Sarah Chen",
		CustomerEmail: "sarah@techcorp.io",
		Tags:          []string{"critical-path"},
	}

	tests := []struct {
		query        string
		includeEmail bool
		want         bool
	}{
		{query: "EXPORT", want: true},
		{query: "csv", want: true},
		{query: "chen", want: true},
		{query: "critical", want: true},
		{query: "techcorp", want: false},
		{query: "techcorp", includeEmail: true, want: true},
		{query: "missing", includeEmail: true, want: false},
	}

	for _, tt := range tests {
		if got := f.MatchesText(tt.query, tt.includeEmail); got != tt.want {
			t.Errorf("MatchesText(%q, %v) = %v, want %v", tt.query, tt.includeEmail, got, tt.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	at := time.Now()
	f := Feedback{ResolvedAt: &at, Tags: []string{"a"}, Notes: []Note{{ID: "n1"}}}
	c := f.Clone()
	c.Tags[0] = "b"
	c.Notes[0].ID = "n2"
	*c.ResolvedAt = at.Add(time.Hour)

	if f.Tags[0] != "a" || f.Notes[0].ID != "n1" || !f.ResolvedAt.Equal(at) {
		t.Errorf("original modified through clone: %+v", f)
	}
}

func TestEnumValid(t *testing.T) {
	if Status("closed").Valid() || Priority("urgent").Valid() || Category("praise").Valid() {
		t.Error("unknown enum values reported valid")
	}
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("status %s not valid", s)
		}
	}
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("category %s not valid", c)
		}
	}
}
