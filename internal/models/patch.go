package models

import "time"

// ApplyUpdate merges a partial update into the record, maintaining the
// ResolvedAt invariant and advancing UpdatedAt to now.
func (f *Feedback) ApplyUpdate(p UpdatePayload, now time.Time) {
	if p.Status != nil {
		f.ApplyStatus(*p.Status, now)
	}
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Tags != nil {
		f.Tags = append([]string(nil), p.Tags...)
	}
	if now.After(f.UpdatedAt) {
		f.UpdatedAt = now
	}
}

// Patch is a field-level change to a record. Implementations touch only
// their own fields, so patches from independent operations compose.
type Patch interface {
	Apply(f *Feedback)
}

// StatusPatch owns Status and ResolvedAt. A non-nil UpdatedAt is merged
// forward only; it never moves the record's timestamp backwards.
type StatusPatch struct {
	Status     Status
	ResolvedAt *time.Time
	UpdatedAt  *time.Time
}

func (p StatusPatch) Apply(f *Feedback) {
	f.Status = p.Status
	if p.ResolvedAt != nil {
		t := *p.ResolvedAt
		f.ResolvedAt = &t
	} else {
		f.ResolvedAt = nil
	}
	advance(f, p.UpdatedAt)
}

// CaptureStatus takes the pre-image of the fields a StatusPatch owns.
func CaptureStatus(f Feedback) StatusPatch {
	return StatusPatch{Status: f.Status, ResolvedAt: f.ResolvedAt}
}

// SpeculativeStatus derives the locally predicted post-image of a status change.
// UpdatedAt is not advanced; the committed value comes from the server.
func SpeculativeStatus(f Feedback, status Status, now time.Time) StatusPatch {
	next := f.Clone()
	next.ApplyStatus(status, now)
	return StatusPatch{Status: next.Status, ResolvedAt: next.ResolvedAt}
}

// CommittedStatus extracts the authoritative status fields from a server record.
func CommittedStatus(f Feedback) StatusPatch {
	updated := f.UpdatedAt
	return StatusPatch{Status: f.Status, ResolvedAt: f.ResolvedAt, UpdatedAt: &updated}
}

// FieldsPatch owns priority, category and tags. Nil fields are not touched.
type FieldsPatch struct {
	Priority  *Priority
	Category  *Category
	Tags      []string
	SetTags   bool
	UpdatedAt *time.Time
}

func (p FieldsPatch) Apply(f *Feedback) {
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.SetTags {
		f.Tags = append([]string(nil), p.Tags...)
	}
	advance(f, p.UpdatedAt)
}

// CaptureFields takes the pre-image of exactly the fields the payload touches.
func CaptureFields(f Feedback, p UpdatePayload) FieldsPatch {
	var out FieldsPatch
	if p.Priority != nil {
		v := f.Priority
		out.Priority = &v
	}
	if p.Category != nil {
		v := f.Category
		out.Category = &v
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), f.Tags...)
		out.SetTags = true
	}
	return out
}

// FieldsFrom builds the post-image of the payload's fields, either
// speculatively from the payload or, with a server record, authoritatively.
func FieldsFrom(p UpdatePayload, committed *Feedback) FieldsPatch {
	var out FieldsPatch
	if committed == nil {
		out.Priority = p.Priority
		out.Category = p.Category
		if p.Tags != nil {
			out.Tags = append([]string(nil), p.Tags...)
			out.SetTags = true
		}
		return out
	}
	if p.Priority != nil {
		v := committed.Priority
		out.Priority = &v
	}
	if p.Category != nil {
		v := committed.Category
		out.Category = &v
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), committed.Tags...)
		out.SetTags = true
	}
	updated := committed.UpdatedAt
	out.UpdatedAt = &updated
	return out
}

// TouchPatch only advances UpdatedAt, used when a note is committed.
type TouchPatch struct {
	UpdatedAt time.Time
}

func (p TouchPatch) Apply(f *Feedback) {
	advance(f, &p.UpdatedAt)
}

func advance(f *Feedback, t *time.Time) {
	if t != nil && t.After(f.UpdatedAt) {
		f.UpdatedAt = *t
	}
}
