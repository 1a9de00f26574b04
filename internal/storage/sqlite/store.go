package sqlite

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/triage/internal/errors"
	"github.com/julianstephens/triage/internal/migration"
	"github.com/julianstephens/triage/internal/models"
	"github.com/julianstephens/triage/migrations"
)

// Store keeps the collection in a private in-memory SQLite database.
// The pool is limited to one connection so every statement sees the same
// database; methods never hold a *sql.Rows open while issuing another query.
type Store struct {
	dsn string
	db  *sql.DB

	// writeMu serializes read-modify-write mutations.
	writeMu sync.Mutex
}

// NewStore returns a store over an in-memory database. dsn may be empty.
func NewStore(dsn string) *Store {
	if dsn == "" {
		dsn = ":memory:"
	}
	return &Store{dsn: dsn}
}

func (s *Store) Init() error {
	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	s.db = db

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	_, err = migration.NewRunner(s.db, subFS).Apply()
	return err
}

func (s *Store) Reset(records []models.Feedback) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"feedback_notes", "feedback_tags", "feedback"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, r := range records {
		_, err := tx.Exec(`
			INSERT INTO feedback (
				seq, id, title, content, status, priority, category,
				customer_email, customer_name, created_at, updated_at, resolved_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			i, r.ID, r.Title, r.Content, string(r.Status), string(r.Priority), string(r.Category),
			r.CustomerEmail, r.CustomerName, r.CreatedAt.UnixNano(), r.UpdatedAt.UnixNano(), nanosPtr(r.ResolvedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert feedback %s: %w", r.ID, err)
		}
		if err := writeTags(tx, r.ID, r.Tags); err != nil {
			return err
		}
		for _, n := range r.Notes {
			if err := insertNote(tx, r.ID, n); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

const selectFeedback = `
	SELECT id, title, content, status, priority, category,
		customer_email, customer_name, created_at, updated_at, resolved_at
	FROM feedback f`

// textMatch mirrors models.Feedback.MatchesText. The query argument must be
// lowercased by the caller and is bound five times.
const textMatch = `(
	instr(lower(f.title), ?) > 0 OR
	instr(lower(f.content), ?) > 0 OR
	instr(lower(f.customer_name), ?) > 0 OR
	instr(lower(f.customer_email), ?) > 0 OR
	EXISTS (SELECT 1 FROM feedback_tags t WHERE t.feedback_id = f.id AND instr(lower(t.tag), ?) > 0)
)`

// textMatchNoEmail is textMatch without the email column; bound four times.
const textMatchNoEmail = `(
	instr(lower(f.title), ?) > 0 OR
	instr(lower(f.content), ?) > 0 OR
	instr(lower(f.customer_name), ?) > 0 OR
	EXISTS (SELECT 1 FROM feedback_tags t WHERE t.feedback_id = f.id AND instr(lower(t.tag), ?) > 0)
)`

func (s *Store) List(filters *models.Filters, sort *models.Sort) ([]models.Feedback, error) {
	var where []string
	var args []any

	if filters != nil {
		if v := filters.Status; v != "" && v != models.All {
			where = append(where, "f.status = ?")
			args = append(args, v)
		}
		if v := filters.Priority; v != "" && v != models.All {
			where = append(where, "f.priority = ?")
			args = append(args, v)
		}
		if v := filters.Category; v != "" && v != models.All {
			where = append(where, "f.category = ?")
			args = append(args, v)
		}
		if filters.Search != "" {
			q := strings.ToLower(filters.Search)
			where = append(where, textMatchNoEmail)
			args = append(args, q, q, q, q)
		}
	}

	query := selectFeedback
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderBy(sort)

	return s.queryRecords(query, args...)
}

// orderBy renders the sort as SQL. Equal keys fall back to insertion order
// in both directions, matching models.SortRecords.
func orderBy(sort *models.Sort) string {
	s := models.DefaultSort()
	if sort != nil && sort.Field != "" {
		s = *sort
	}

	var key string
	switch s.Field {
	case models.SortUpdatedAt:
		key = "f.updated_at"
	case models.SortPriority:
		key = "CASE f.priority WHEN 'critical' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END"
	case models.SortStatus:
		key = "CASE f.status WHEN 'new' THEN 4 WHEN 'in-review' THEN 3 WHEN 'resolved' THEN 2 WHEN 'archived' THEN 1 ELSE 0 END"
	default:
		key = "f.created_at"
	}

	dir := "ASC"
	if s.Direction == models.SortDesc {
		dir = "DESC"
	}
	return key + " " + dir + ", f.seq ASC"
}

func (s *Store) Get(id string) (*models.Feedback, error) {
	records, err := s.queryRecords(selectFeedback+" WHERE f.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (s *Store) Search(query string) ([]models.Feedback, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Feedback{}, nil
	}
	q := strings.ToLower(query)
	return s.queryRecords(selectFeedback+" WHERE "+textMatch+" ORDER BY f.seq ASC", q, q, q, q, q)
}

func (s *Store) All() ([]models.Feedback, error) {
	return s.queryRecords(selectFeedback + " ORDER BY f.seq ASC")
}

func (s *Store) Update(id string, payload models.UpdatePayload, now time.Time) (models.Feedback, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.Get(id)
	if err != nil {
		return models.Feedback{}, err
	}
	if current == nil {
		return models.Feedback{}, errors.NotFound(id)
	}

	next := current.Clone()
	next.ApplyUpdate(payload, now)

	tx, err := s.db.Begin()
	if err != nil {
		return models.Feedback{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE feedback
		SET status = ?, priority = ?, category = ?, updated_at = ?, resolved_at = ?
		WHERE id = ?
	`, string(next.Status), string(next.Priority), string(next.Category),
		next.UpdatedAt.UnixNano(), nanosPtr(next.ResolvedAt), id)
	if err != nil {
		return models.Feedback{}, fmt.Errorf("failed to update feedback: %w", err)
	}

	if payload.Tags != nil {
		if _, err := tx.Exec("DELETE FROM feedback_tags WHERE feedback_id = ?", id); err != nil {
			return models.Feedback{}, fmt.Errorf("failed to clear tags: %w", err)
		}
		if err := writeTags(tx, id, next.Tags); err != nil {
			return models.Feedback{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Feedback{}, fmt.Errorf("failed to commit update: %w", err)
	}
	return next, nil
}

func (s *Store) AddNote(feedbackID string, note models.Note) (models.Note, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var updatedAt int64
	err = tx.QueryRow("SELECT updated_at FROM feedback WHERE id = ?", feedbackID).Scan(&updatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return models.Note{}, errors.NotFound(feedbackID)
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to get feedback: %w", err)
	}

	if err := insertNote(tx, feedbackID, note); err != nil {
		return models.Note{}, err
	}
	if note.CreatedAt.UnixNano() > updatedAt {
		if _, err := tx.Exec("UPDATE feedback SET updated_at = ? WHERE id = ?", note.CreatedAt.UnixNano(), feedbackID); err != nil {
			return models.Note{}, fmt.Errorf("failed to touch feedback: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Note{}, fmt.Errorf("failed to commit note: %w", err)
	}
	return note, nil
}

func (s *Store) queryRecords(query string, args ...any) ([]models.Feedback, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}

	records := []models.Feedback{}
	for rows.Next() {
		var fb models.Feedback
		var status, priority, category string
		var createdAt, updatedAt int64
		var resolvedAt sql.NullInt64

		err := rows.Scan(
			&fb.ID, &fb.Title, &fb.Content, &status, &priority, &category,
			&fb.CustomerEmail, &fb.CustomerName, &createdAt, &updatedAt, &resolvedAt,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}

		fb.Status = models.Status(status)
		fb.Priority = models.Priority(priority)
		fb.Category = models.Category(category)
		fb.CreatedAt = time.Unix(0, createdAt)
		fb.UpdatedAt = time.Unix(0, updatedAt)
		if resolvedAt.Valid {
			t := time.Unix(0, resolvedAt.Int64)
			fb.ResolvedAt = &t
		}
		records = append(records, fb)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}
	rows.Close()

	if len(records) == 0 {
		return records, nil
	}

	tags, err := s.loadTags()
	if err != nil {
		return nil, err
	}
	notes, err := s.loadNotes()
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Tags = append([]string{}, tags[records[i].ID]...)
		records[i].Notes = append([]models.Note{}, notes[records[i].ID]...)
	}
	return records, nil
}

func (s *Store) loadTags() (map[string][]string, error) {
	rows, err := s.db.Query("SELECT feedback_id, tag FROM feedback_tags ORDER BY feedback_id, position")
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		out[id] = append(out[id], tag)
	}
	return out, rows.Err()
}

func (s *Store) loadNotes() (map[string][]models.Note, error) {
	rows, err := s.db.Query(`
		SELECT feedback_id, id, content, author_id, author_name, created_at
		FROM feedback_notes
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Note)
	for rows.Next() {
		var feedbackID string
		var n models.Note
		var createdAt int64
		if err := rows.Scan(&feedbackID, &n.ID, &n.Content, &n.AuthorID, &n.AuthorName, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		n.CreatedAt = time.Unix(0, createdAt)
		out[feedbackID] = append(out[feedbackID], n)
	}
	return out, rows.Err()
}

func writeTags(tx *sql.Tx, feedbackID string, tags []string) error {
	for i, tag := range tags {
		if _, err := tx.Exec("INSERT INTO feedback_tags (feedback_id, position, tag) VALUES (?, ?, ?)", feedbackID, i, tag); err != nil {
			return fmt.Errorf("failed to insert tag for %s: %w", feedbackID, err)
		}
	}
	return nil
}

func insertNote(tx *sql.Tx, feedbackID string, n models.Note) error {
	_, err := tx.Exec(`
		INSERT INTO feedback_notes (id, feedback_id, content, author_id, author_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, n.ID, feedbackID, n.Content, n.AuthorID, n.AuthorName, n.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert note %s: %w", n.ID, err)
	}
	return nil
}

func nanosPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixNano()
}
