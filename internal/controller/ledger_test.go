package controller

import (
	"testing"

	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/state"
)

func TestLedgerReplay(t *testing.T) {
	l := newLedger()
	low, high := models.PriorityLow, models.PriorityHigh

	first := l.issue("fb-001", OpPriority, models.FieldsPatch{}, models.FieldsPatch{Priority: &low})
	l.issue("fb-002", OpStatus, models.StatusPatch{}, models.StatusPatch{Status: models.StatusResolved})
	l.issue("fb-001", OpPriority, models.FieldsPatch{}, models.FieldsPatch{Priority: &high})

	got := l.replay()
	want := []string{"fb-002", "fb-001"}
	if len(got) != len(want) {
		t.Fatalf("replay() = %d actions, want %d", len(got), len(want))
	}
	for i, a := range got {
		pr, ok := a.(state.PatchRecord)
		if !ok || pr.ID != want[i] {
			t.Errorf("action %d = %+v, want patch for %s", i, a, want[i])
		}
	}
	if fp := got[1].(state.PatchRecord).Patch.(models.FieldsPatch); *fp.Priority != models.PriorityHigh {
		t.Errorf("replayed priority = %s, want the latest", *fp.Priority)
	}

	l.settle("fb-001", OpPriority, first, nil)
	if n := len(l.replay()); n != 2 {
		t.Errorf("replay() after one of two settled = %d actions, want 2", n)
	}
}
