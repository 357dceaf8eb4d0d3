// Package annotations provides database operations for user-created marks:
// highlights, notes and bookmarks.
//
// # Usage
//
//	repo := annotations.NewRepository(db)
//	a, err := repo.Create(docID, entities.AnnotationKindHighlight, "selected text", pos, "#FFFFFF00", "")
package annotations

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lectern-app/lectern/internal/database"
	"github.com/lectern-app/lectern/internal/entities"
)

// Patch carries partial updates for an annotation. Nil fields stay untouched.
type Patch struct {
	Kind     *entities.AnnotationKind `json:"kind,omitempty"`
	Content  *string                  `json:"content,omitempty"`
	Note     *string                  `json:"note,omitempty"`
	Color    *string                  `json:"color,omitempty"`
	Position *entities.Position       `json:"position,omitempty"`
}

// Repository handles all annotation database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new annotations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new mark against an existing document. Fails with
// ErrNotFound when the document id is unknown.
func (r *Repository) Create(documentID string, kind entities.AnnotationKind, content string, pos entities.Position, color, note string) (*entities.Annotation, error) {
	if err := r.requireDocument(documentID); err != nil {
		return nil, fmt.Errorf("annotation create failed: %w", err)
	}

	now := time.Now().UTC()
	a := &entities.Annotation{
		ID:         database.NewID(),
		DocumentID: documentID,
		Kind:       kind,
		Content:    content,
		Note:       note,
		Position:   pos.Clamped(),
		Color:      color,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := r.db.Create(a).Error; err != nil {
		return nil, fmt.Errorf("annotation create failed: %w", database.WrapStore("put annotations", err))
	}
	return a, nil
}

// Get retrieves one annotation by id.
func (r *Repository) Get(id string) (*entities.Annotation, error) {
	var a entities.Annotation
	err := r.db.First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("annotation %s: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("annotation get failed: %w", database.WrapStore("get annotations", err))
	}
	return &a, nil
}

// Update applies a partial edit and always refreshes the updated timestamp.
// Fails with ErrNotFound when the id is unknown.
func (r *Repository) Update(id string, patch Patch) (*entities.Annotation, error) {
	a, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Kind != nil {
		a.Kind = *patch.Kind
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.Note != nil {
		a.Note = *patch.Note
	}
	if patch.Color != nil {
		a.Color = *patch.Color
	}
	if patch.Position != nil {
		a.Position = patch.Position.Clamped()
	}

	a.UpdatedAt = time.Now().UTC()
	if !a.UpdatedAt.After(a.CreatedAt) {
		// clock precision guard: updated must stay strictly after created
		a.UpdatedAt = a.CreatedAt.Add(time.Millisecond)
	}

	if err := r.db.Save(a).Error; err != nil {
		return nil, fmt.Errorf("annotation update failed: %w", database.WrapStore("put annotations", err))
	}
	return a, nil
}

// Delete removes an annotation. Deleting an absent id is not an error.
func (r *Repository) Delete(id string) error {
	err := r.db.Where("id = ?", id).Delete(&entities.Annotation{}).Error
	if err != nil {
		return fmt.Errorf("annotation delete failed: %w", database.WrapStore("delete annotations", err))
	}
	return nil
}

// ListForDocument returns every annotation of one document ordered by
// creation time ascending. The id tiebreak keeps the order deterministic.
func (r *Repository) ListForDocument(documentID string) ([]entities.Annotation, error) {
	var list []entities.Annotation
	err := r.db.Where("document_id = ?", documentID).
		Order("created_at ASC, id ASC").Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("annotation list failed: %w", database.WrapStore("getAllByIndex annotations", err))
	}
	return list, nil
}

func (r *Repository) requireDocument(documentID string) error {
	var count int64
	err := r.db.Model(&entities.Document{}).Where("id = ?", documentID).Count(&count).Error
	if err != nil {
		return database.WrapStore("get documents", err)
	}
	if count == 0 {
		return fmt.Errorf("document %s: %w", documentID, database.ErrNotFound)
	}
	return nil
}
