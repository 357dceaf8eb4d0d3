// Package sessions provides database operations for reading sessions: the
// start/stop timer per document visit and the immutable history statistics
// are derived from.
//
// Per document the state machine is Idle → Open → Idle. Closed sessions are
// terminal history entries and are never mutated again.
package sessions

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lectern-app/lectern/internal/database"
	"github.com/lectern-app/lectern/internal/database/progress"
	"github.com/lectern-app/lectern/internal/entities"
)

// Repository handles all reading session database operations. Closing a
// session folds its duration into the progress tracker.
type Repository struct {
	db       *gorm.DB
	progress *progress.Repository
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB, progress *progress.Repository) *Repository {
	return &Repository{db: db, progress: progress}
}

// Start opens a session for a document. A session left open for the same
// document is force-closed first, with its duration computed as if Stop were
// called now, so reading time is never double-counted by two open sessions.
func (r *Repository) Start(documentID string) (*entities.ReadingSession, error) {
	if err := r.requireDocument(documentID); err != nil {
		return nil, fmt.Errorf("session start failed: %w", err)
	}

	now := time.Now().UTC()
	open, err := r.openSession(documentID)
	if err != nil {
		return nil, fmt.Errorf("session start failed: %w", err)
	}
	if open != nil {
		if err := r.closeAt(open, now); err != nil {
			return nil, fmt.Errorf("session start failed: %w", err)
		}
	}

	s := &entities.ReadingSession{
		ID:         database.NewID(),
		DocumentID: documentID,
		StartedAt:  now,
	}
	if err := r.db.Create(s).Error; err != nil {
		return nil, fmt.Errorf("session start failed: %w", database.WrapStore("put sessions", err))
	}
	return s, nil
}

// Stop closes the open session of a document, computes its whole-minute
// duration and folds it into the progress tracker. With no open session it is
// a no-op and returns nil.
func (r *Repository) Stop(documentID string) (*entities.ReadingSession, error) {
	open, err := r.openSession(documentID)
	if err != nil {
		return nil, fmt.Errorf("session stop failed: %w", err)
	}
	if open == nil {
		return nil, nil
	}
	if err := r.closeAt(open, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("session stop failed: %w", err)
	}
	return open, nil
}

// ListForDocument returns the closed session history of one document, oldest
// first. Consumers re-sort as their statistics require.
func (r *Repository) ListForDocument(documentID string) ([]entities.ReadingSession, error) {
	var list []entities.ReadingSession
	err := r.db.Where("document_id = ? AND ended_at IS NOT NULL", documentID).
		Order("started_at ASC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("session list failed: %w", database.WrapStore("getAllByIndex sessions", err))
	}
	return list, nil
}

// ReadingStreak counts consecutive calendar days with at least one session,
// walking backward from the day of now. The walk may begin on today or on
// yesterday, which keeps a streak that ended yesterday visible; once a day has
// been counted, every further day must match the cursor exactly, so any
// skipped day mid-walk ends the streak.
func (r *Repository) ReadingStreak(now time.Time) (int, error) {
	var starts []time.Time
	err := r.db.Model(&entities.ReadingSession{}).
		Order("started_at DESC").Pluck("started_at", &starts).Error
	if err != nil {
		return 0, fmt.Errorf("streak query failed: %w", database.WrapStore("getAll sessions", err))
	}

	cursor := dayOf(now, now.Location())
	streak := 0
	for _, s := range starts {
		d := dayOf(s, now.Location())
		if d.After(cursor) {
			continue // several sessions on one day count once
		}
		switch {
		case d.Equal(cursor):
			streak++
		case streak == 0 && d.Equal(cursor.AddDate(0, 0, -1)):
			streak++
		default:
			return streak, nil
		}
		cursor = d.AddDate(0, 0, -1)
	}
	return streak, nil
}

func (r *Repository) openSession(documentID string) (*entities.ReadingSession, error) {
	var s entities.ReadingSession
	err := r.db.Where("document_id = ? AND ended_at IS NULL", documentID).
		Order("started_at DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.WrapStore("get sessions", err)
	}
	return &s, nil
}

// closeAt finalizes a session and credits its duration to the document's
// cumulative reading time.
func (r *Repository) closeAt(s *entities.ReadingSession, end time.Time) error {
	s.EndedAt = &end
	s.DurationMinutes = int(end.Sub(s.StartedAt) / time.Minute)
	if err := r.db.Save(s).Error; err != nil {
		return database.WrapStore("put sessions", err)
	}
	if _, err := r.progress.AddReadingTime(s.DocumentID, s.DurationMinutes); err != nil {
		return err
	}
	return nil
}

func (r *Repository) requireDocument(documentID string) error {
	var count int64
	err := r.db.Model(&entities.Document{}).Where("id = ?", documentID).Count(&count).Error
	if err != nil {
		return database.WrapStore("get documents", err)
	}
	if count == 0 {
		return fmt.Errorf("document %s: %w", documentID, database.ErrReferentialViolation)
	}
	return nil
}

// dayOf truncates a timestamp to its calendar date in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
