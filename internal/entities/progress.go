package entities

import (
	"time"
)

// Progress is the single current-position record for a document. The document
// id is the primary key: every relocation upserts, nothing is ever appended.
//
// Finished is monotonic: once true it stays true even when the reader
// navigates back below 100%, so back-navigation never flips a finished
// document to "unfinished".
type Progress struct {
	DocumentID          string    `gorm:"primaryKey;size:64" json:"document_id"`
	Position            Position  `gorm:"embedded;embeddedPrefix:position_" json:"position"`
	TotalReadingMinutes int       `json:"total_reading_minutes"`
	LastReadAt          time.Time `json:"last_read_at"`
	Finished            bool      `gorm:"default:false" json:"finished"`
}

func (Progress) TableName() string {
	return "progress"
}
