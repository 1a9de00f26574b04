package state

import "github.com/julianstephens/triage/internal/models"

// Action is a state transition applied by Reduce. The set is closed: only
// types in this package implement it.
type Action interface {
	action()
}

type SetList struct{ Records []models.Feedback }

// SetSelected opens a record in the detail pane; nil closes it.
type SetSelected struct{ Record *models.Feedback }

// MergeRecord replaces the record with the same ID in the list and the
// selection together.
type MergeRecord struct{ Record models.Feedback }

// PatchRecord applies a field-level patch to the list entry and the
// selection that share ID.
type PatchRecord struct {
	ID    string
	Patch models.Patch
}

type AppendNote struct {
	FeedbackID string
	Note       models.Note
}

// ReplaceNote swaps the note with TempID for Note at the same position. If
// Note.ID is already attached the placeholder is dropped instead.
type ReplaceNote struct {
	FeedbackID string
	TempID     string
	Note       models.Note
}

type RemoveNote struct {
	FeedbackID string
	NoteID     string
}

type SetFilters struct{ Filters models.Filters }

type SetSort struct{ Sort models.Sort }

type SetAnalytics struct{ Analytics models.Analytics }

type SetLoading struct{ Loading bool }

// SetError sets the user-facing error; an empty message clears it.
type SetError struct{ Message string }

type SetSearchQuery struct{ Query string }

func (SetList) action()        {}
func (SetSelected) action()    {}
func (MergeRecord) action()    {}
func (PatchRecord) action()    {}
func (AppendNote) action()     {}
func (ReplaceNote) action()    {}
func (RemoveNote) action()     {}
func (SetFilters) action()     {}
func (SetSort) action()        {}
func (SetAnalytics) action()   {}
func (SetLoading) action()     {}
func (SetError) action()       {}
func (SetSearchQuery) action() {}
