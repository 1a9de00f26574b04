package controller

import "github.com/julianstephens/triage/internal/models"

// Result messages carry the sequence number of the request that produced
// them. Handlers drop any message whose sequence is no longer the latest.

type ListLoadedMsg struct {
	Seq     uint64
	Records []models.Feedback
	Err     error
}

// FilterTickMsg fires when the free-text filter debounce elapses.
type FilterTickMsg struct{ Seq uint64 }

type UpdateResultMsg struct {
	Seq     uint64
	ID      string
	Kind    OpKind
	Payload models.UpdatePayload
	Record  models.Feedback
	Err     error
}

type NoteResultMsg struct {
	FeedbackID string
	TempID     string
	Content    string
	Note       models.Note
	Err        error
}

// SearchTickMsg fires when the search popover debounce elapses.
type SearchTickMsg struct{ Seq uint64 }

type SearchResultMsg struct {
	Seq     uint64
	Records []models.Feedback
	Err     error
}

type AnalyticsMsg struct {
	Seq       uint64
	Analytics models.Analytics
	Err       error
}

// MutatedMsg reports a committed change that can move the analytics.
type MutatedMsg struct{ ID string }
