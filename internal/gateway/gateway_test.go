package gateway

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/triage/internal/constants"
	apperrors "github.com/julianstephens/triage/internal/errors"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/storage"
	"github.com/julianstephens/triage/internal/storage/memory"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func setupTestGateway(t *testing.T, opts Options) *Gateway {
	p, err := storage.Open(constants.BackendMemory, testNow)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	return New(p, opts)
}

func TestResolvedRoundTrip(t *testing.T) {
	g := setupTestGateway(t, Options{})
	ctx := context.Background()
	resolved := models.StatusResolved
	fresh := models.StatusNew

	if _, err := g.Update(ctx, "fb-001", models.UpdatePayload{Status: &resolved}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	fb, err := g.GetByID(ctx, "fb-001")
	if err != nil || fb == nil {
		t.Fatalf("GetByID() = %v, %v", fb, err)
	}
	if fb.ResolvedAt == nil {
		t.Fatal("ResolvedAt = nil after resolving")
	}

	updated, err := g.Update(ctx, "fb-001", models.UpdatePayload{Status: &fresh})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ResolvedAt != nil {
		t.Errorf("ResolvedAt = %v after reopening, want nil", updated.ResolvedAt)
	}
}

func TestGetByIDUnknown(t *testing.T) {
	g := setupTestGateway(t, Options{})
	fb, err := g.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if fb != nil {
		t.Errorf("GetByID() = %+v, want nil", fb)
	}
}

func TestNotFound(t *testing.T) {
	g := setupTestGateway(t, Options{})
	ctx := context.Background()

	if _, err := g.Archive(ctx, "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Archive() error = %v, want ErrNotFound", err)
	}
	if _, err := g.AddNote(ctx, "nope", "hello"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("AddNote() error = %v, want ErrNotFound", err)
	}
}

func TestSearchBlank(t *testing.T) {
	// Failure injection and a canceled context only affect real round trips.
	g := setupTestGateway(t, Options{FailureRate: 1, LatencyFactor: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, q := range []string{"", "  ", "\t\n"} {
		got, err := g.Search(ctx, q)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", q, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Search(%q) = %v, want empty non-nil slice", q, got)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	g := New(memory.NewStore(), Options{Now: func() time.Time { return testNow }})
	a, err := g.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if a.TotalCount != 0 || a.AverageResolutionTime != nil {
		t.Errorf("Summarize() = %+v, want zero total and nil average", a)
	}
}

func TestSummarizeSeed(t *testing.T) {
	g := setupTestGateway(t, Options{})
	a, err := g.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if a.TotalCount != 15 {
		t.Errorf("TotalCount = %d, want 15", a.TotalCount)
	}
	if a.ByStatus[models.StatusResolved] != 4 {
		t.Errorf("resolved = %d, want 4", a.ByStatus[models.StatusResolved])
	}
	if a.AverageResolutionTime == nil {
		t.Error("AverageResolutionTime = nil with resolved records present")
	}
}

func TestAddNoteStampsAuthor(t *testing.T) {
	g := setupTestGateway(t, Options{AuthorID: "u-7", AuthorName: "Dana"})
	note, err := g.AddNote(context.Background(), "fb-001", "  Checked logs  ")
	if err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}
	if note.AuthorID != "u-7" || note.AuthorName != "Dana" {
		t.Errorf("author = %s/%s", note.AuthorID, note.AuthorName)
	}
	if note.Content != "Checked logs" {
		t.Errorf("Content = %q, want trimmed", note.Content)
	}
	if !strings.HasPrefix(note.ID, "note-") || !note.CreatedAt.Equal(testNow) {
		t.Errorf("note = %+v", note)
	}
}

func TestValidationRejectedBeforeCall(t *testing.T) {
	g := setupTestGateway(t, Options{FailureRate: 1})
	ctx := context.Background()

	if _, err := g.AddNote(ctx, "fb-001", "   "); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("AddNote() error = %v, want ErrValidation", err)
	}
	bad := models.Priority("urgent")
	if _, err := g.Update(ctx, "fb-001", models.UpdatePayload{Priority: &bad}); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Update() error = %v, want ErrValidation", err)
	}
	if _, err := g.List(ctx, &models.Filters{Status: "closed"}, nil); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("List() error = %v, want ErrValidation", err)
	}
}

func TestInjectedFailure(t *testing.T) {
	g := setupTestGateway(t, Options{FailureRate: 1})
	status := models.StatusArchived

	_, err := g.Update(context.Background(), "fb-001", models.UpdatePayload{Status: &status})
	if !errors.Is(err, apperrors.ErrTransient) {
		t.Fatalf("Update() error = %v, want ErrTransient", err)
	}

	// The failed call never reached the store.
	fb, _ := g.GetByID(context.Background(), "fb-001")
	if fb == nil {
		t.Fatal("GetByID() = nil")
	}
	if fb.Status == models.StatusArchived {
		t.Error("failed update was applied")
	}
}

func TestTimeoutIsTransient(t *testing.T) {
	g := setupTestGateway(t, Options{LatencyFactor: 1, Timeout: time.Millisecond})
	_, err := g.List(context.Background(), nil, nil)
	if apperrors.Kind(err) != apperrors.ErrTransient {
		t.Errorf("List() error = %v, want transient", err)
	}
}

func TestCanceledContext(t *testing.T) {
	g := setupTestGateway(t, Options{LatencyFactor: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Summarize(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Summarize() error = %v, want context.Canceled", err)
	}
}

func TestReset(t *testing.T) {
	g := setupTestGateway(t, Options{})
	ctx := context.Background()
	if _, err := g.Archive(ctx, "fb-001"); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if err := g.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	fb, _ := g.GetByID(ctx, "fb-001")
	if fb == nil || fb.Status != models.StatusNew {
		t.Errorf("after Reset() = %+v, want status new", fb)
	}
}
