package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/triage/internal/errors"
	"github.com/julianstephens/triage/internal/models"
)

// Store keeps the collection in a slice; slice order is insertion order
// and acts as the tie-breaker for sorting.
type Store struct {
	mu      sync.RWMutex
	records []models.Feedback
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Init() error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Reset(records []models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]models.Feedback, 0, len(records))
	for _, r := range records {
		s.records = append(s.records, r.Clone())
	}
	return nil
}

func (s *Store) List(filters *models.Filters, sort *models.Sort) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Apply(s.records, filters, sort), nil
}

func (s *Store) Get(id string) (*models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	fb := s.records[i].Clone()
	return &fb, nil
}

func (s *Store) Search(query string) ([]models.Feedback, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Feedback{}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Feedback{}
	for _, r := range s.records {
		if r.MatchesText(query, true) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (s *Store) All() ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Feedback, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out, nil
}

func (s *Store) Update(id string, payload models.UpdatePayload, now time.Time) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Feedback{}, errors.NotFound(id)
	}
	next := s.records[i].Clone()
	next.ApplyUpdate(payload, now)
	s.records[i] = next
	return next.Clone(), nil
}

func (s *Store) AddNote(feedbackID string, note models.Note) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(feedbackID)
	if i < 0 {
		return models.Note{}, errors.NotFound(feedbackID)
	}
	next := s.records[i].Clone()
	next.Notes = append(next.Notes, note)
	if note.CreatedAt.After(next.UpdatedAt) {
		next.UpdatedAt = note.CreatedAt
	}
	s.records[i] = next
	return note, nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}
