package storage

import (
	"time"

	"github.com/julianstephens/triage/internal/models"
)

// Provider is the feedback data store behind the gateway. Implementations
// must be safe for concurrent use: gateway calls run off the UI loop.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error
	// Reset replaces the whole collection, used for seeding.
	Reset(records []models.Feedback) error

	// Queries
	List(filters *models.Filters, sort *models.Sort) ([]models.Feedback, error)
	// Get returns nil without error when the id is unknown.
	Get(id string) (*models.Feedback, error)
	Search(query string) ([]models.Feedback, error)
	All() ([]models.Feedback, error)

	// Mutations fail with errors.ErrNotFound for unknown ids.
	Update(id string, payload models.UpdatePayload, now time.Time) (models.Feedback, error)
	AddNote(feedbackID string, note models.Note) (models.Note, error)
}
