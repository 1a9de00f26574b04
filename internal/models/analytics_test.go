package models

import (
	"testing"
	"time"
)

func TestComputeAnalyticsEmpty(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := ComputeAnalytics(nil, now)

	if a.TotalCount != 0 || a.FeedbackThisWeek != 0 || a.FeedbackThisMonth != 0 {
		t.Errorf("counts = %+v, want zeros", a)
	}
	if a.AverageResolutionTime != nil {
		t.Errorf("AverageResolutionTime = %v, want nil", *a.AverageResolutionTime)
	}
	if len(a.ByStatus) != len(Statuses) || len(a.ByPriority) != len(Priorities) || len(a.ByCategory) != len(Categories) {
		t.Errorf("breakdowns missing keys: %v %v %v", a.ByStatus, a.ByPriority, a.ByCategory)
	}
	if !a.ComputedAt.Equal(now) {
		t.Errorf("ComputedAt = %v", a.ComputedAt)
	}
}

func TestComputeAnalytics(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	r1 := now.Add(-1 * day)
	r2 := now.Add(-10 * day)

	records := []Feedback{
		{Status: StatusNew, Priority: PriorityHigh, Category: CategoryBug, CreatedAt: now.Add(-2 * day)},
		{Status: StatusResolved, Priority: PriorityLow, Category: CategoryBug, CreatedAt: now.Add(-3 * day), ResolvedAt: &r1},
		{Status: StatusResolved, Priority: PriorityLow, Category: CategoryQuestion, CreatedAt: now.Add(-14 * day), ResolvedAt: &r2},
		{Status: StatusArchived, Priority: PriorityMedium, Category: CategoryOther, CreatedAt: now.Add(-45 * day)},
	}

	a := ComputeAnalytics(records, now)
	if a.TotalCount != 4 {
		t.Errorf("TotalCount = %d", a.TotalCount)
	}
	if a.ByStatus[StatusResolved] != 2 || a.ByStatus[StatusInReview] != 0 {
		t.Errorf("ByStatus = %v", a.ByStatus)
	}
	if a.ByCategory[CategoryBug] != 2 || a.ByCategory[CategoryFeatureRequest] != 0 {
		t.Errorf("ByCategory = %v", a.ByCategory)
	}
	if a.FeedbackThisWeek != 2 || a.FeedbackThisMonth != 3 {
		t.Errorf("week/month = %d/%d, want 2/3", a.FeedbackThisWeek, a.FeedbackThisMonth)
	}
	// (2d + 4d) / 2
	if a.AverageResolutionTime == nil || *a.AverageResolutionTime != 3*day {
		t.Errorf("AverageResolutionTime = %v, want 72h", a.AverageResolutionTime)
	}
}
