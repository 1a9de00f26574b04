// Package gateway is the asynchronous data boundary the dashboard talks to.
// It fronts a storage.Provider with simulated network behaviour: every call
// waits out a randomized latency window and may fail transiently.
package gateway

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/triage/internal/constants"
	"github.com/julianstephens/triage/internal/errors"
	"github.com/julianstephens/triage/internal/logger"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/internal/storage"
	"github.com/julianstephens/triage/internal/storage/seed"
)

// Client is the set of operations controllers depend on.
type Client interface {
	List(ctx context.Context, filters *models.Filters, sort *models.Sort) ([]models.Feedback, error)
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	Update(ctx context.Context, id string, payload models.UpdatePayload) (models.Feedback, error)
	AddNote(ctx context.Context, feedbackID, content string) (models.Note, error)
	Search(ctx context.Context, query string) ([]models.Feedback, error)
	Summarize(ctx context.Context) (models.Analytics, error)
	Archive(ctx context.Context, id string) (models.Feedback, error)
}

type Options struct {
	// LatencyFactor scales every latency window; 0 disables latency.
	LatencyFactor float64
	// FailureRate is the probability a call fails with a transient error.
	FailureRate float64
	// Timeout bounds each call; 0 means none.
	Timeout time.Duration

	AuthorID   string
	AuthorName string

	// Now and Rand are injectable for tests.
	Now  func() time.Time
	Rand *rand.Rand
}

type Gateway struct {
	provider storage.Provider
	opts     Options

	randMu sync.Mutex
}

var _ Client = (*Gateway)(nil)

func New(provider storage.Provider, opts Options) *Gateway {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.AuthorID == "" {
		opts.AuthorID = constants.DefaultUserID
	}
	if opts.AuthorName == "" {
		opts.AuthorName = constants.DefaultUserName
	}
	return &Gateway{provider: provider, opts: opts}
}

func (g *Gateway) List(ctx context.Context, filters *models.Filters, sort *models.Sort) ([]models.Feedback, error) {
	if filters != nil {
		if err := filters.Validate(); err != nil {
			return nil, errors.Validation(err.Error())
		}
	}
	if sort != nil {
		if err := sort.Validate(); err != nil {
			return nil, errors.Validation(err.Error())
		}
	}
	return call(ctx, g, "list", constants.LatencyList, func() ([]models.Feedback, error) {
		return g.provider.List(filters, sort)
	})
}

// GetByID returns nil without error when the id is unknown.
func (g *Gateway) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	return call(ctx, g, "get", constants.LatencyGet, func() (*models.Feedback, error) {
		return g.provider.Get(id)
	})
}

func (g *Gateway) Update(ctx context.Context, id string, payload models.UpdatePayload) (models.Feedback, error) {
	if err := payload.Validate(); err != nil {
		return models.Feedback{}, errors.Validation(err.Error())
	}
	return call(ctx, g, "update", constants.LatencyUpdate, func() (models.Feedback, error) {
		return g.provider.Update(id, payload, g.opts.Now())
	})
}

func (g *Gateway) AddNote(ctx context.Context, feedbackID, content string) (models.Note, error) {
	if err := models.ValidateNoteContent(content); err != nil {
		return models.Note{}, errors.Validation("note content cannot be empty")
	}
	return call(ctx, g, "add note", constants.LatencyAddNote, func() (models.Note, error) {
		note := models.Note{
			ID:         "note-" + uuid.NewString(),
			Content:    strings.TrimSpace(content),
			AuthorID:   g.opts.AuthorID,
			AuthorName: g.opts.AuthorName,
			CreatedAt:  g.opts.Now(),
		}
		return g.provider.AddNote(feedbackID, note)
	})
}

// Search matches title, content, customer name, email and tags. A blank
// query returns an empty result without a round trip.
func (g *Gateway) Search(ctx context.Context, query string) ([]models.Feedback, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Feedback{}, nil
	}
	return call(ctx, g, "search", constants.LatencySearch, func() ([]models.Feedback, error) {
		return g.provider.Search(query)
	})
}

func (g *Gateway) Summarize(ctx context.Context) (models.Analytics, error) {
	return call(ctx, g, "summarize", constants.LatencySummarize, func() (models.Analytics, error) {
		records, err := g.provider.All()
		if err != nil {
			return models.Analytics{}, err
		}
		return models.ComputeAnalytics(records, g.opts.Now()), nil
	})
}

func (g *Gateway) Archive(ctx context.Context, id string) (models.Feedback, error) {
	archived := models.StatusArchived
	return g.Update(ctx, id, models.UpdatePayload{Status: &archived})
}

// Reset restores the seed collection.
func (g *Gateway) Reset() error {
	return g.provider.Reset(seed.Records(g.opts.Now()))
}

// call waits out the latency window, rolls for a transient failure and
// then runs fn. Context expiry during the wait is a transient failure.
func call[T any](ctx context.Context, g *Gateway, op string, window [2]time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	delay, fail := g.roll(window)
	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Warn("Gateway call timed out", "op", op, "error", ctx.Err())
			return zero, fmt.Errorf("%w: %w", errors.Transient(op), ctx.Err())
		case <-timer.C:
		}
	}
	if fail {
		logger.Warn("Gateway call failed", "op", op, "injected", true)
		return zero, errors.Transient(op)
	}

	result, err := fn()
	if err != nil {
		logger.Debug("Gateway call returned error", "op", op, "error", err)
		return zero, err
	}
	logger.Debug("Gateway call completed", "op", op, "latency", delay)
	return result, nil
}

func (g *Gateway) roll(window [2]time.Duration) (time.Duration, bool) {
	g.randMu.Lock()
	defer g.randMu.Unlock()

	var delay time.Duration
	if g.opts.LatencyFactor > 0 {
		span := float64(window[1] - window[0])
		delay = time.Duration((float64(window[0]) + g.opts.Rand.Float64()*span) * g.opts.LatencyFactor)
	}
	fail := g.opts.FailureRate > 0 && g.opts.Rand.Float64() < g.opts.FailureRate
	return delay, fail
}
