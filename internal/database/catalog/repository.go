// Package catalog provides database operations for the document registry.
//
// The catalog anchors every other collection: annotations, progress and
// sessions all reference a document id owned here, and removing a document
// cascades across all four collections.
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	doc, err := repo.AddDocument("Jane Austen - Emma.epub", entities.FormatFlow, payload)
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lectern-app/lectern/internal/database"
	"github.com/lectern-app/lectern/internal/entities"
)

// UnknownAuthor is the fallback when no author can be inferred from the
// display name.
const UnknownAuthor = "Unknown Author"

// MetadataPatch carries partial updates for the editable document fields.
// Nil fields are left untouched.
type MetadataPatch struct {
	Title    *string `json:"title,omitempty"`
	Author   *string `json:"author,omitempty"`
	Genre    *string `json:"genre,omitempty"`
	CoverRef *string `json:"cover_ref,omitempty"`
}

// Repository handles all document catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddDocument registers an imported document, inferring title and author from
// the display name. A format no renderer understands is rejected with
// ErrUnsupportedFormat and no record is created.
func (r *Repository) AddDocument(name string, format entities.DocumentFormat, payload []byte) (*entities.Document, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("add document %q: %w", name, database.ErrUnsupportedFormat)
	}

	title, author := inferMetadata(name)
	now := time.Now().UTC()
	doc := &entities.Document{
		ID:           database.NewID(),
		Name:         name,
		Format:       format,
		Payload:      payload,
		Title:        title,
		Author:       author,
		Outline:      entities.Outline{},
		CreatedAt:    now,
		LastOpenedAt: now,
	}

	if err := r.db.Create(doc).Error; err != nil {
		return nil, fmt.Errorf("add document: %w", database.WrapStore("put documents", err))
	}
	return doc, nil
}

// GetDocument retrieves one document by id.
func (r *Repository) GetDocument(id string) (*entities.Document, error) {
	var doc entities.Document
	err := r.db.First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("document %s: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", database.WrapStore("get documents", err))
	}
	return &doc, nil
}

// ListDocuments returns every catalog entry, most recently opened first.
func (r *Repository) ListDocuments() ([]entities.Document, error) {
	var docs []entities.Document
	err := r.db.Order("last_opened_at DESC").Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", database.WrapStore("getAll documents", err))
	}
	return docs, nil
}

// RemoveDocuments deletes the given documents together with every annotation,
// progress record and session that references them. The whole cascade runs in
// one transaction: either all four collections are mutated or none are. Ids
// that do not exist are skipped silently.
func (r *Repository) RemoveDocuments(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id IN ?", ids).Delete(&entities.Annotation{}).Error; err != nil {
			return fmt.Errorf("cascade delete annotations: %w", err)
		}
		if err := tx.Where("document_id IN ?", ids).Delete(&entities.ReadingSession{}).Error; err != nil {
			return fmt.Errorf("cascade delete sessions: %w", err)
		}
		if err := tx.Where("document_id IN ?", ids).Delete(&entities.Progress{}).Error; err != nil {
			return fmt.Errorf("cascade delete progress: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&entities.Document{}).Error; err != nil {
			return fmt.Errorf("cascade delete documents: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove documents: %w", err)
	}
	return nil
}

// UpdateMetadata applies a partial update to the editable fields of one
// document. Fails with ErrNotFound when the id is unknown.
func (r *Repository) UpdateMetadata(id string, patch MetadataPatch) (*entities.Document, error) {
	doc, err := r.GetDocument(id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		doc.Title = *patch.Title
	}
	if patch.Author != nil {
		doc.Author = *patch.Author
	}
	if patch.Genre != nil {
		doc.Genre = *patch.Genre
	}
	if patch.CoverRef != nil {
		doc.CoverRef = *patch.CoverRef
	}

	if err := r.db.Save(doc).Error; err != nil {
		return nil, fmt.Errorf("update metadata: %w", database.WrapStore("put documents", err))
	}
	return doc, nil
}

// SetOutline replaces the cached table of contents of one document.
func (r *Repository) SetOutline(id string, outline entities.Outline) error {
	doc, err := r.GetDocument(id)
	if err != nil {
		return err
	}
	doc.Outline = outline
	if err := r.db.Save(doc).Error; err != nil {
		return fmt.Errorf("set outline: %w", database.WrapStore("put documents", err))
	}
	return nil
}

// MarkOpened bumps the last-opened timestamp, e.g. when a renderer borrows
// the payload.
func (r *Repository) MarkOpened(id string) error {
	res := r.db.Model(&entities.Document{}).Where("id = ?", id).
		Update("last_opened_at", time.Now().UTC())
	if res.Error != nil {
		return fmt.Errorf("mark opened: %w", database.WrapStore("put documents", res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("document %s: %w", id, database.ErrNotFound)
	}
	return nil
}

// inferMetadata splits a display name of the form "Author - Title" into its
// parts, dropping a trailing file extension first. Names without the
// separator become the title verbatim, attributed to UnknownAuthor.
func inferMetadata(name string) (title, author string) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.SplitN(base, " - ", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" && strings.TrimSpace(parts[1]) != "" {
		return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0])
	}
	return base, UnknownAuthor
}
