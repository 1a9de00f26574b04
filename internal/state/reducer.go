package state

import (
	"slices"

	"github.com/julianstephens/triage/internal/models"
)

// Snapshot is the shared view state. Values are treated as immutable:
// Reduce never writes through slices or pointers it was given.
type Snapshot struct {
	List        []models.Feedback
	Selected    *models.Feedback
	Filters     models.Filters
	Sort        models.Sort
	Analytics   *models.Analytics
	Loading     bool
	Error       string
	SearchQuery string
}

// Initial is the state the dashboard starts in.
func Initial() Snapshot {
	return Snapshot{
		List:    []models.Feedback{},
		Filters: models.DefaultFilters(),
		Sort:    models.DefaultSort(),
	}
}

// Reduce returns the snapshot that results from applying a to s.
func Reduce(s Snapshot, a Action) Snapshot {
	switch a := a.(type) {
	case SetList:
		s.List = cloneAll(a.Records)
		// the selection follows the freshly loaded copy of the same record
		if s.Selected != nil {
			if i := slices.IndexFunc(s.List, func(f models.Feedback) bool { return f.ID == s.Selected.ID }); i >= 0 {
				fb := s.List[i].Clone()
				s.Selected = &fb
			}
		}
	case SetSelected:
		if a.Record == nil {
			s.Selected = nil
		} else {
			fb := a.Record.Clone()
			s.Selected = &fb
		}
	case MergeRecord:
		s = updateRecord(s, a.Record.ID, func(f *models.Feedback) {
			*f = a.Record.Clone()
		})
	case PatchRecord:
		if a.Patch != nil {
			s = updateRecord(s, a.ID, a.Patch.Apply)
		}
	case AppendNote:
		s = updateRecord(s, a.FeedbackID, func(f *models.Feedback) {
			if !f.HasNote(a.Note.ID) {
				f.Notes = append(f.Notes, a.Note)
			}
		})
	case ReplaceNote:
		s = updateRecord(s, a.FeedbackID, func(f *models.Feedback) {
			i := slices.IndexFunc(f.Notes, func(n models.Note) bool { return n.ID == a.TempID })
			if i < 0 {
				return
			}
			if f.HasNote(a.Note.ID) {
				f.Notes = slices.Delete(f.Notes, i, i+1)
				return
			}
			f.Notes[i] = a.Note
		})
	case RemoveNote:
		s = updateRecord(s, a.FeedbackID, func(f *models.Feedback) {
			f.Notes = slices.DeleteFunc(f.Notes, func(n models.Note) bool { return n.ID == a.NoteID })
		})
	case SetFilters:
		s.Filters = a.Filters
	case SetSort:
		s.Sort = a.Sort
	case SetAnalytics:
		an := a.Analytics
		s.Analytics = &an
	case SetLoading:
		s.Loading = a.Loading
	case SetError:
		s.Error = a.Message
	case SetSearchQuery:
		s.SearchQuery = a.Query
	}
	return s
}

// updateRecord applies fn to a private copy of the list entry and of the
// selection with the given id. Other entries are shared with the input.
func updateRecord(s Snapshot, id string, fn func(*models.Feedback)) Snapshot {
	if i := slices.IndexFunc(s.List, func(f models.Feedback) bool { return f.ID == id }); i >= 0 {
		list := slices.Clone(s.List)
		fb := list[i].Clone()
		fn(&fb)
		list[i] = fb
		s.List = list
	}
	if s.Selected != nil && s.Selected.ID == id {
		fb := s.Selected.Clone()
		fn(&fb)
		s.Selected = &fb
	}
	return s
}

func cloneAll(records []models.Feedback) []models.Feedback {
	out := make([]models.Feedback, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// Find returns the current version of a record, preferring the selection.
func (s Snapshot) Find(id string) (models.Feedback, bool) {
	if s.Selected != nil && s.Selected.ID == id {
		return *s.Selected, true
	}
	for _, f := range s.List {
		if f.ID == id {
			return f, true
		}
	}
	return models.Feedback{}, false
}
