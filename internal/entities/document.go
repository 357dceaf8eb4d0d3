package entities

import (
	"time"
)

type DocumentFormat string

const (
	FormatFlow  DocumentFormat = "flow"  // reflowable, addressed by opaque flow locators
	FormatPaged DocumentFormat = "paged" // fixed layout, addressed by page number
	FormatPlain DocumentFormat = "plain" // linear text, addressed by line and offset
)

// Valid reports whether the format is one a renderer exists for.
func (f DocumentFormat) Valid() bool {
	switch f {
	case FormatFlow, FormatPaged, FormatPlain:
		return true
	}
	return false
}

// OutlineNode is one entry of a document's cached table of contents. Exactly
// one of the locator fields is set, matching the owning document's format.
type OutlineNode struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	FlowLocator *string       `json:"flow_locator,omitempty"`
	Page        *int          `json:"page,omitempty"`
	Line        *int          `json:"line,omitempty"`
	Children    []OutlineNode `json:"children,omitempty"`
}

// Outline is the ordered tree of outline nodes, possibly empty.
type Outline []OutlineNode

// Document is a catalog entry: the imported binary payload plus its editable
// bibliographic metadata and cached outline. The payload is immutable after
// import; renderers borrow it transiently and never own it.
type Document struct {
	ID      string         `gorm:"primaryKey;size:64" json:"id"`
	Name    string         `gorm:"size:512" json:"name"` // display name as imported
	Format  DocumentFormat `gorm:"size:10" json:"format"`
	Payload []byte         `gorm:"type:blob" json:"-"`

	// Editable fields, user-overridable after import.
	Title    string `gorm:"index;size:512" json:"title,omitempty"`
	Author   string `gorm:"index;size:256" json:"author,omitempty"`
	Genre    string `gorm:"size:100" json:"genre,omitempty"`
	CoverRef string `gorm:"size:2048" json:"cover_ref,omitempty"`

	Outline Outline `gorm:"serializer:json" json:"outline,omitempty"`

	CreatedAt    time.Time `json:"created_at"`
	LastOpenedAt time.Time `json:"last_opened_at"`
}

func (Document) TableName() string {
	return "documents"
}
