package controller

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/julianstephens/triage/internal/constants"
	"github.com/julianstephens/triage/internal/errors"
	"github.com/julianstephens/triage/internal/gateway"
	"github.com/julianstephens/triage/internal/logger"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/state"
)

// Author identifies the acting user on locally created notes.
type Author struct {
	ID   string
	Name string
}

// Detail applies changes to the selected record optimistically: the
// predicted result is shown at once and reconciled when the gateway answers.
type Detail struct {
	ctx    context.Context
	store  *state.Store
	gw     gateway.Client
	author Author
	now    func() time.Time

	ledger *ledger
	draft  string
	// notes holds submitted notes per record. The head is in flight; the
	// rest wait so the server stores them in submission order.
	notes map[string][]queuedNote
}

type queuedNote struct {
	placeholder models.Note
	content     string
}

func NewDetail(ctx context.Context, store *state.Store, gw gateway.Client, author Author, now func() time.Time) *Detail {
	if now == nil {
		now = time.Now
	}
	return &Detail{
		ctx:    ctx,
		store:  store,
		gw:     gw,
		author: author,
		now:    now,
		ledger: newLedger(),
		notes:  make(map[string][]queuedNote),
	}
}

// Select opens a record. No request is made; the list copy is shown as is.
func (c *Detail) Select(fb *models.Feedback) {
	c.draft = ""
	c.store.Dispatch(state.SetSelected{Record: fb})
}

func (c *Detail) Close() {
	c.draft = ""
	c.store.Dispatch(state.SetSelected{Record: nil})
}

func (c *Detail) Draft() string { return c.draft }

func (c *Detail) SetDraft(s string) { c.draft = s }

// Pending reports whether a change of kind is awaiting the gateway.
func (c *Detail) Pending(id string, kind OpKind) bool {
	return c.ledger.inFlight(id, kind)
}

func (c *Detail) ChangeStatus(id string, status models.Status) tea.Cmd {
	return c.changeStatus(id, status, func(ctx context.Context, gw gateway.Client, p models.UpdatePayload) (models.Feedback, error) {
		return gw.Update(ctx, id, p)
	})
}

func (c *Detail) Archive(id string) tea.Cmd {
	return c.changeStatus(id, models.StatusArchived, func(ctx context.Context, gw gateway.Client, _ models.UpdatePayload) (models.Feedback, error) {
		return gw.Archive(ctx, id)
	})
}

func (c *Detail) ChangePriority(id string, priority models.Priority) tea.Cmd {
	return c.changeFields(id, OpPriority, models.UpdatePayload{Priority: &priority})
}

func (c *Detail) ChangeCategory(id string, category models.Category) tea.Cmd {
	return c.changeFields(id, OpCategory, models.UpdatePayload{Category: &category})
}

func (c *Detail) SetTags(id string, tags []string) tea.Cmd {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return c.changeFields(id, OpTags, models.UpdatePayload{Tags: clean})
}

type updateFunc func(ctx context.Context, gw gateway.Client, p models.UpdatePayload) (models.Feedback, error)

func (c *Detail) changeStatus(id string, status models.Status, fn updateFunc) tea.Cmd {
	cur, ok := c.store.Snapshot().Find(id)
	if !ok {
		c.store.Dispatch(state.SetError{Message: errors.UserMessage("update status", errors.NotFound(id))})
		return nil
	}

	payload := models.UpdatePayload{Status: &status}
	patch := models.SpeculativeStatus(cur, status, c.now())
	seq := c.ledger.issue(id, OpStatus, models.CaptureStatus(cur), patch)
	c.store.Dispatch(state.PatchRecord{ID: id, Patch: patch})
	return c.send(seq, id, OpStatus, payload, fn)
}

func (c *Detail) changeFields(id string, kind OpKind, payload models.UpdatePayload) tea.Cmd {
	if err := payload.Validate(); err != nil {
		c.store.Dispatch(state.SetError{Message: errors.UserMessage("update "+kind.String(), errors.Validation(err.Error()))})
		return nil
	}
	cur, ok := c.store.Snapshot().Find(id)
	if !ok {
		c.store.Dispatch(state.SetError{Message: errors.UserMessage("update "+kind.String(), errors.NotFound(id))})
		return nil
	}

	patch := models.FieldsFrom(payload, nil)
	seq := c.ledger.issue(id, kind, models.CaptureFields(cur, payload), patch)
	c.store.Dispatch(state.PatchRecord{ID: id, Patch: patch})
	return c.send(seq, id, kind, payload, func(ctx context.Context, gw gateway.Client, p models.UpdatePayload) (models.Feedback, error) {
		return gw.Update(ctx, id, p)
	})
}

func (c *Detail) send(seq uint64, id string, kind OpKind, payload models.UpdatePayload, fn updateFunc) tea.Cmd {
	logger.Debug("Issuing update", "id", id, "kind", kind, "seq", seq, "payload", payload.String())
	ctx, gw := c.ctx, c.gw
	return func() tea.Msg {
		record, err := fn(ctx, gw, payload)
		return UpdateResultMsg{Seq: seq, ID: id, Kind: kind, Payload: payload, Record: record, Err: err}
	}
}

// HandleUpdateResult reconciles a finished update. Only the latest
// operation of its kind touches the screen: on success its authoritative
// fields are applied, on failure the last confirmed value is restored.
func (c *Detail) HandleUpdateResult(msg UpdateResultMsg) tea.Cmd {
	if msg.Err != nil {
		latest, confirmed := c.ledger.settle(msg.ID, msg.Kind, msg.Seq, nil)
		logger.Warn("Update failed", "id", msg.ID, "kind", msg.Kind, "seq", msg.Seq, "latest", latest, "error", msg.Err)
		if !latest || confirmed == nil {
			return nil
		}
		c.store.Dispatch(
			state.PatchRecord{ID: msg.ID, Patch: confirmed},
			state.SetError{Message: errors.UserMessage("update "+msg.Kind.String(), msg.Err)},
		)
		return nil
	}

	var committed models.Patch
	if msg.Kind == OpStatus {
		committed = models.CommittedStatus(msg.Record)
	} else {
		committed = models.FieldsFrom(msg.Payload, &msg.Record)
	}
	latest, _ := c.ledger.settle(msg.ID, msg.Kind, msg.Seq, committed)
	if latest {
		c.store.Dispatch(state.PatchRecord{ID: msg.ID, Patch: committed})
	}

	id := msg.ID
	return func() tea.Msg { return MutatedMsg{ID: id} }
}

// AddNote appends a placeholder note at once and submits it. Notes for the
// same record are sent one at a time in submission order. The draft is
// cleared on submit and put back if the submission fails. ok is false when
// the note is rejected before anything is shown.
func (c *Detail) AddNote(id, content string) (cmd tea.Cmd, ok bool) {
	trimmed := strings.TrimSpace(content)
	if err := models.ValidateNoteContent(trimmed); err != nil {
		c.store.Dispatch(state.SetError{Message: errors.UserMessage("add note", errors.Validation("note content cannot be empty"))})
		return nil, false
	}
	if _, found := c.store.Snapshot().Find(id); !found {
		c.store.Dispatch(state.SetError{Message: errors.UserMessage("add note", errors.NotFound(id))})
		return nil, false
	}

	c.draft = ""
	qn := queuedNote{
		placeholder: models.Note{
			ID:         constants.TempNotePrefix + uuid.NewString(),
			Content:    trimmed,
			AuthorID:   c.author.ID,
			AuthorName: c.author.Name,
			CreatedAt:  c.now(),
		},
		content: content,
	}
	c.store.Dispatch(state.AppendNote{FeedbackID: id, Note: qn.placeholder})

	c.notes[id] = append(c.notes[id], qn)
	if waiting := len(c.notes[id]) - 1; waiting > 0 {
		logger.Debug("Queued note", "id", id, "ahead", waiting)
		return nil, true
	}
	return c.sendNote(id, qn), true
}

func (c *Detail) sendNote(id string, qn queuedNote) tea.Cmd {
	ctx, gw := c.ctx, c.gw
	return func() tea.Msg {
		note, err := gw.AddNote(ctx, id, qn.placeholder.Content)
		return NoteResultMsg{FeedbackID: id, TempID: qn.placeholder.ID, Content: qn.content, Note: note, Err: err}
	}
}

// HandleNoteResult settles the note in flight and returns the command for
// the next queued note of the same record, if any.
func (c *Detail) HandleNoteResult(msg NoteResultMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Warn("Failed to add note", "id", msg.FeedbackID, "error", msg.Err)
		c.store.Dispatch(
			state.RemoveNote{FeedbackID: msg.FeedbackID, NoteID: msg.TempID},
			state.SetError{Message: errors.UserMessage("add note", msg.Err)},
		)
		if c.draft == "" {
			c.draft = msg.Content
		}
	} else {
		c.store.Dispatch(
			state.ReplaceNote{FeedbackID: msg.FeedbackID, TempID: msg.TempID, Note: msg.Note},
			state.PatchRecord{ID: msg.FeedbackID, Patch: models.TouchPatch{UpdatedAt: msg.Note.CreatedAt}},
		)
	}
	return c.nextNote(msg.FeedbackID, msg.TempID)
}

func (c *Detail) nextNote(id, settled string) tea.Cmd {
	q := c.notes[id]
	if len(q) == 0 || q[0].placeholder.ID != settled {
		return nil
	}
	q = q[1:]
	if len(q) == 0 {
		delete(c.notes, id)
		return nil
	}
	c.notes[id] = q
	return c.sendNote(id, q[0])
}

// Replay returns the actions that put every change still awaiting the
// gateway back on top of freshly loaded records.
func (c *Detail) Replay() []state.Action {
	actions := c.ledger.replay()
	for _, id := range slices.Sorted(maps.Keys(c.notes)) {
		for _, qn := range c.notes[id] {
			actions = append(actions, state.AppendNote{FeedbackID: id, Note: qn.placeholder})
		}
	}
	return actions
}
