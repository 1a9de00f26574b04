package models

import "time"

type Analytics struct {
	TotalCount            int              `json:"totalCount"`
	ByStatus              map[Status]int   `json:"byStatus"`
	ByPriority            map[Priority]int `json:"byPriority"`
	ByCategory            map[Category]int `json:"byCategory"`
	AverageResolutionTime *time.Duration   `json:"averageResolutionTime"`
	FeedbackThisWeek      int              `json:"feedbackThisWeek"`
	FeedbackThisMonth     int              `json:"feedbackThisMonth"`
	ComputedAt            time.Time        `json:"computedAt"`
}

// ComputeAnalytics derives the summary from the full collection as of now.
// Every enum key is present in the breakdown maps, even with a zero count.
func ComputeAnalytics(records []Feedback, now time.Time) Analytics {
	a := Analytics{
		TotalCount: len(records),
		ByStatus:   make(map[Status]int, len(Statuses)),
		ByPriority: make(map[Priority]int, len(Priorities)),
		ByCategory: make(map[Category]int, len(Categories)),
		ComputedAt: now,
	}
	for _, s := range Statuses {
		a.ByStatus[s] = 0
	}
	for _, p := range Priorities {
		a.ByPriority[p] = 0
	}
	for _, c := range Categories {
		a.ByCategory[c] = 0
	}

	weekAgo := now.Add(-7 * 24 * time.Hour)
	monthAgo := now.Add(-30 * 24 * time.Hour)

	var total time.Duration
	resolved := 0
	for _, r := range records {
		a.ByStatus[r.Status]++
		a.ByPriority[r.Priority]++
		a.ByCategory[r.Category]++

		if !r.CreatedAt.Before(weekAgo) {
			a.FeedbackThisWeek++
		}
		if !r.CreatedAt.Before(monthAgo) {
			a.FeedbackThisMonth++
		}
		if r.ResolvedAt != nil {
			total += r.ResolvedAt.Sub(r.CreatedAt)
			resolved++
		}
	}
	if resolved > 0 {
		avg := total / time.Duration(resolved)
		a.AverageResolutionTime = &avg
	}
	return a
}
