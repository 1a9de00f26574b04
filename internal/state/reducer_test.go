package state

import (
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/triage/internal/models"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func sample() Snapshot {
	s := Initial()
	s.List = []models.Feedback{
		{ID: "a", Status: models.StatusNew, UpdatedAt: t0, Notes: []models.Note{{ID: "n1"}}, Tags: []string{"x"}},
		{ID: "b", Status: models.StatusInReview, UpdatedAt: t0},
	}
	sel := s.List[0].Clone()
	s.Selected = &sel
	return s
}

func TestReducePurity(t *testing.T) {
	in := sample()
	actions := []Action{
		PatchRecord{ID: "a", Patch: models.StatusPatch{Status: models.StatusArchived}},
		AppendNote{FeedbackID: "a", Note: models.Note{ID: "tmp-1"}},
		RemoveNote{FeedbackID: "a", NoteID: "n1"},
		MergeRecord{Record: models.Feedback{ID: "a", Status: models.StatusResolved}},
		SetList{Records: nil},
	}

	for _, a := range actions {
		_ = Reduce(in, a)
		if in.List[0].Status != models.StatusNew || in.Selected.Status != models.StatusNew {
			t.Fatalf("%T mutated input status", a)
		}
		if len(in.List[0].Notes) != 1 || len(in.Selected.Notes) != 1 || in.List[0].Notes[0].ID != "n1" {
			t.Fatalf("%T mutated input notes", a)
		}
		if len(in.List) != 2 {
			t.Fatalf("%T mutated input list", a)
		}
	}
}

func TestPatchRecordUpdatesListAndSelection(t *testing.T) {
	out := Reduce(sample(), PatchRecord{ID: "a", Patch: models.StatusPatch{Status: models.StatusInReview}})
	if out.List[0].Status != models.StatusInReview || out.Selected.Status != models.StatusInReview {
		t.Errorf("list=%s selected=%s, want both in-review", out.List[0].Status, out.Selected.Status)
	}
	if out.List[1].Status != models.StatusInReview {
		t.Errorf("other record changed: %s", out.List[1].Status)
	}
}

func TestPatchRecordNotInList(t *testing.T) {
	s := sample()
	sel := models.Feedback{ID: "z", Status: models.StatusNew}
	s.Selected = &sel
	out := Reduce(s, PatchRecord{ID: "z", Patch: models.StatusPatch{Status: models.StatusArchived}})
	if out.Selected.Status != models.StatusArchived {
		t.Errorf("selected status = %s", out.Selected.Status)
	}
}

func TestSetListRefreshesSelection(t *testing.T) {
	in := sample()
	fresh := []models.Feedback{
		{ID: "b", Status: models.StatusInReview, UpdatedAt: t0},
		{ID: "a", Status: models.StatusResolved, UpdatedAt: t0.Add(time.Hour), Notes: []models.Note{{ID: "n1"}, {ID: "n2"}}},
	}

	out := Reduce(in, SetList{Records: fresh})
	if out.Selected.Status != models.StatusResolved || len(out.Selected.Notes) != 2 {
		t.Errorf("selected = %s with %d notes, want the loaded copy", out.Selected.Status, len(out.Selected.Notes))
	}
	if in.Selected.Status != models.StatusNew {
		t.Error("input selection mutated")
	}

	// the selection and the list entry are separate copies
	fresh[1].Notes[0].ID = "changed"
	out.List[1].Tags = append(out.List[1].Tags, "y")
	if out.Selected.Notes[0].ID != "n1" || len(out.Selected.Tags) != 0 {
		t.Error("selection shares memory with the list")
	}
}

func TestSetListKeepsSelectionOutsideList(t *testing.T) {
	out := Reduce(sample(), SetList{Records: []models.Feedback{{ID: "b"}}})
	if out.Selected == nil || out.Selected.ID != "a" || out.Selected.Status != models.StatusNew {
		t.Errorf("selected = %+v, want record a kept", out.Selected)
	}
}

func TestAppendNoteIsIdempotent(t *testing.T) {
	s := Reduce(sample(), AppendNote{FeedbackID: "a", Note: models.Note{ID: "tmp-1"}})
	s = Reduce(s, AppendNote{FeedbackID: "a", Note: models.Note{ID: "tmp-1"}})
	if len(s.List[0].Notes) != 2 || len(s.Selected.Notes) != 2 {
		t.Errorf("notes = %d/%d, want 2 each", len(s.List[0].Notes), len(s.Selected.Notes))
	}
}

func TestReplaceNoteInPlace(t *testing.T) {
	s := sample()
	s = Reduce(s, AppendNote{FeedbackID: "a", Note: models.Note{ID: "tmp-1", Content: "draft"}})
	s = Reduce(s, AppendNote{FeedbackID: "a", Note: models.Note{ID: "tmp-2", Content: "second"}})
	s = Reduce(s, ReplaceNote{FeedbackID: "a", TempID: "tmp-1", Note: models.Note{ID: "n2", Content: "draft"}})

	want := []string{"n1", "n2", "tmp-2"}
	for _, f := range []models.Feedback{s.List[0], *s.Selected} {
		if len(f.Notes) != len(want) {
			t.Fatalf("notes = %v, want %v", f.Notes, want)
		}
		for i, id := range want {
			if f.Notes[i].ID != id {
				t.Errorf("note[%d] = %s, want %s", i, f.Notes[i].ID, id)
			}
		}
	}
}

func TestReplaceNoteDropsDuplicate(t *testing.T) {
	s := sample()
	s = Reduce(s, AppendNote{FeedbackID: "a", Note: models.Note{ID: "tmp-1"}})
	s = Reduce(s, ReplaceNote{FeedbackID: "a", TempID: "tmp-1", Note: models.Note{ID: "n1"}})
	if len(s.List[0].Notes) != 1 || s.List[0].Notes[0].ID != "n1" {
		t.Errorf("notes = %v, want only n1", s.List[0].Notes)
	}
}

func TestRemoveNote(t *testing.T) {
	s := Reduce(sample(), AppendNote{FeedbackID: "a", Note: models.Note{ID: "tmp-1"}})
	s = Reduce(s, RemoveNote{FeedbackID: "a", NoteID: "tmp-1"})
	if len(s.Selected.Notes) != 1 || s.Selected.Notes[0].ID != "n1" {
		t.Errorf("notes = %v", s.Selected.Notes)
	}
}

func TestScalarActions(t *testing.T) {
	s := Reduce(Initial(), SetLoading{Loading: true})
	s = Reduce(s, SetError{Message: "boom"})
	s = Reduce(s, SetSearchQuery{Query: "csv"})
	s = Reduce(s, SetFilters{Filters: models.Filters{Status: "new"}})
	s = Reduce(s, SetSort{Sort: models.Sort{Field: models.SortPriority, Direction: models.SortAsc}})
	s = Reduce(s, SetAnalytics{Analytics: models.Analytics{TotalCount: 3}})
	s = Reduce(s, SetSelected{Record: nil})

	if !s.Loading || s.Error != "boom" || s.SearchQuery != "csv" || s.Filters.Status != "new" {
		t.Errorf("snapshot = %+v", s)
	}
	if s.Sort.Field != models.SortPriority || s.Analytics == nil || s.Analytics.TotalCount != 3 || s.Selected != nil {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestFind(t *testing.T) {
	s := sample()
	s = Reduce(s, PatchRecord{ID: "a", Patch: models.StatusPatch{Status: models.StatusResolved}})
	f, ok := s.Find("a")
	if !ok || f.Status != models.StatusResolved {
		t.Errorf("Find(a) = %+v, %v", f, ok)
	}
	if _, ok := s.Find("missing"); ok {
		t.Error("Find(missing) reported found")
	}
}

func TestStoreDispatchNotifies(t *testing.T) {
	store := NewStore(Initial())
	var got []string
	unsubscribe := store.Subscribe(func(s Snapshot) { got = append(got, s.Error) })

	store.Dispatch(SetError{Message: "one"}, SetError{Message: "two"})
	unsubscribe()
	store.Dispatch(SetError{Message: "three"})

	if len(got) != 1 || got[0] != "two" {
		t.Errorf("notifications = %v, want [two]", got)
	}
	if store.Snapshot().Error != "three" {
		t.Errorf("Error = %q, want three", store.Snapshot().Error)
	}
}

func TestStoreConcurrentDispatch(t *testing.T) {
	store := NewStore(sample())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Dispatch(AppendNote{FeedbackID: "a", Note: models.Note{ID: "tmp"}})
		}(i)
	}
	wg.Wait()

	if n := len(store.Snapshot().List[0].Notes); n != 51 {
		t.Errorf("notes = %d, want 51", n)
	}
}
