// Package progress provides database operations for the per-document reading
// progress record: current position, cumulative reading time and the finished
// flag.
//
// There is exactly one record per document id. Every write is an upsert,
// nothing is ever appended.
package progress

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lectern-app/lectern/internal/database"
	"github.com/lectern-app/lectern/internal/entities"
)

// Repository handles all reading progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RecordPosition upserts the progress record for a document after a renderer
// relocation. The percentage is clamped to [0, 100] and the finished flag is
// monotonic: once true it survives back-navigation below 100%.
func (r *Repository) RecordPosition(documentID string, pos entities.Position) (*entities.Progress, error) {
	if err := r.requireDocument(documentID); err != nil {
		return nil, fmt.Errorf("record position failed: %w", err)
	}

	pos = pos.Clamped()
	now := time.Now().UTC()

	p, err := r.load(documentID)
	if err != nil {
		return nil, fmt.Errorf("record position failed: %w", err)
	}
	if p == nil {
		p = &entities.Progress{
			DocumentID: documentID,
			Position:   pos,
			LastReadAt: now,
			Finished:   pos.Complete(),
		}
		if err := r.db.Create(p).Error; err != nil {
			return nil, fmt.Errorf("record position failed: %w", database.WrapStore("put progress", err))
		}
		return p, nil
	}

	p.Position = pos
	p.LastReadAt = now
	p.Finished = p.Finished || pos.Complete()
	if err := r.save(p); err != nil {
		return nil, fmt.Errorf("record position failed: %w", err)
	}
	return p, nil
}

// AddReadingTime folds minutes of reading into the cumulative total and bumps
// the last-read timestamp. When no progress record exists yet a zero-position
// one is synthesized, so time is never lost.
func (r *Repository) AddReadingTime(documentID string, minutes int) (*entities.Progress, error) {
	if minutes < 0 {
		return nil, fmt.Errorf("add reading time failed: negative duration %d", minutes)
	}
	if err := r.requireDocument(documentID); err != nil {
		return nil, fmt.Errorf("add reading time failed: %w", err)
	}

	now := time.Now().UTC()
	p, err := r.load(documentID)
	if err != nil {
		return nil, fmt.Errorf("add reading time failed: %w", err)
	}
	if p == nil {
		p = &entities.Progress{
			DocumentID:          documentID,
			Position:            entities.Position{Percentage: 0},
			TotalReadingMinutes: minutes,
			LastReadAt:          now,
		}
		if err := r.db.Create(p).Error; err != nil {
			return nil, fmt.Errorf("add reading time failed: %w", database.WrapStore("put progress", err))
		}
		return p, nil
	}

	p.TotalReadingMinutes += minutes
	p.LastReadAt = now
	if err := r.save(p); err != nil {
		return nil, fmt.Errorf("add reading time failed: %w", err)
	}
	return p, nil
}

// Get retrieves the progress record for one document. An absent record is
// reported as ErrNotFound, distinct from a medium failure.
func (r *Repository) Get(documentID string) (*entities.Progress, error) {
	p, err := r.load(documentID)
	if err != nil {
		return nil, fmt.Errorf("get progress failed: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("progress for document %s: %w", documentID, database.ErrNotFound)
	}
	return p, nil
}

// GetAll returns the progress of every document keyed by document id.
func (r *Repository) GetAll() (map[string]entities.Progress, error) {
	var list []entities.Progress
	if err := r.db.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get all progress failed: %w", database.WrapStore("getAll progress", err))
	}
	out := make(map[string]entities.Progress, len(list))
	for _, p := range list {
		out[p.DocumentID] = p
	}
	return out, nil
}

func (r *Repository) load(documentID string) (*entities.Progress, error) {
	var p entities.Progress
	err := r.db.First(&p, "document_id = ?", documentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.WrapStore("get progress", err)
	}
	return &p, nil
}

func (r *Repository) save(p *entities.Progress) error {
	if err := r.db.Save(p).Error; err != nil {
		return database.WrapStore("put progress", err)
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
