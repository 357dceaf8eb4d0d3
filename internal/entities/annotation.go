package entities

import (
	"time"
)

type AnnotationKind string

const (
	AnnotationKindHighlight AnnotationKind = "highlight"
	AnnotationKindNote      AnnotationKind = "note"
	AnnotationKindBookmark  AnnotationKind = "bookmark"
)

// Annotation is a user-created mark tied to one document and one Position.
// Content holds the selected text for highlights, or a user-entered title for
// free-standing notes and bookmarks. Color is stored as an opaque token; the
// renderers agree on its meaning, the store does not interpret it.
type Annotation struct {
	ID         string         `gorm:"primaryKey;size:64" json:"id"`
	DocumentID string         `gorm:"index;size:64" json:"document_id"`
	Kind       AnnotationKind `gorm:"size:20;default:'highlight'" json:"kind"`
	Content    string         `gorm:"type:text" json:"content"`
	Note       string         `gorm:"type:text" json:"note,omitempty"`
	Position   Position       `gorm:"embedded;embeddedPrefix:position_" json:"position"`
	Color      string         `gorm:"size:20" json:"color,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"` // invariant: never before CreatedAt
}

func (Annotation) TableName() string {
	return "annotations"
}
