package models

import (
	"testing"
	"time"
)

func TestStatusPatchRollbackRestoresPreImage(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := Feedback{Status: StatusNew, CreatedAt: created, UpdatedAt: created}

	before := CaptureStatus(f)
	SpeculativeStatus(f, StatusResolved, created.Add(time.Hour)).Apply(&f)
	if f.Status != StatusResolved || f.ResolvedAt == nil {
		t.Fatalf("speculative patch not applied: %+v", f)
	}
	if !f.UpdatedAt.Equal(created) {
		t.Errorf("speculative patch moved UpdatedAt to %v", f.UpdatedAt)
	}

	before.Apply(&f)
	if f.Status != StatusNew || f.ResolvedAt != nil {
		t.Errorf("rollback = %s/%v, want new without resolvedAt", f.Status, f.ResolvedAt)
	}
}

func TestCommittedStatusPreservesNotes(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	local := Feedback{ID: "fb", Status: StatusNew, UpdatedAt: t0, Notes: []Note{{ID: "n1"}, {ID: "n2"}}}
	server := Feedback{ID: "fb", Status: StatusInReview, UpdatedAt: t0.Add(time.Minute), Notes: []Note{{ID: "n1"}}}

	CommittedStatus(server).Apply(&local)
	if local.Status != StatusInReview {
		t.Errorf("Status = %s", local.Status)
	}
	if len(local.Notes) != 2 {
		t.Errorf("notes = %v, want both local notes kept", local.Notes)
	}
	if !local.UpdatedAt.Equal(t0.Add(time.Minute)) {
		t.Errorf("UpdatedAt = %v", local.UpdatedAt)
	}
}

func TestPatchNeverMovesUpdatedAtBackwards(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := Feedback{Status: StatusNew, UpdatedAt: t0}
	old := t0.Add(-time.Hour)

	StatusPatch{Status: StatusInReview, UpdatedAt: &old}.Apply(&f)
	TouchPatch{UpdatedAt: old}.Apply(&f)
	if !f.UpdatedAt.Equal(t0) {
		t.Errorf("UpdatedAt = %v, want %v", f.UpdatedAt, t0)
	}
}

func TestFieldsPatchTouchesOnlyPayloadFields(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := Feedback{Priority: PriorityLow, Category: CategoryBug, Tags: []string{"a"}, UpdatedAt: t0}
	high := PriorityHigh
	payload := UpdatePayload{Priority: &high}

	before := CaptureFields(f, payload)
	if before.Category != nil || before.SetTags {
		t.Errorf("capture includes untouched fields: %+v", before)
	}

	FieldsFrom(payload, nil).Apply(&f)
	if f.Priority != PriorityHigh || f.Category != CategoryBug || len(f.Tags) != 1 {
		t.Errorf("speculative patch = %+v", f)
	}

	// A category change that lands meanwhile must survive the priority rollback.
	f.Category = CategoryQuestion
	before.Apply(&f)
	if f.Priority != PriorityLow || f.Category != CategoryQuestion {
		t.Errorf("rollback = %s/%s, want low/question", f.Priority, f.Category)
	}
}

func TestFieldsFromCommitted(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	crit := PriorityCritical
	server := Feedback{Priority: PriorityCritical, Category: CategoryOther, Tags: []string{"x", "y"}, UpdatedAt: t0.Add(time.Hour)}
	p := FieldsFrom(UpdatePayload{Priority: &crit, Tags: []string{"x", "y"}}, &server)

	f := Feedback{Priority: PriorityLow, Category: CategoryBug, UpdatedAt: t0}
	p.Apply(&f)
	if f.Priority != PriorityCritical || f.Category != CategoryBug || len(f.Tags) != 2 {
		t.Errorf("committed patch = %+v", f)
	}
	if !f.UpdatedAt.Equal(server.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", f.UpdatedAt, server.UpdatedAt)
	}
}
