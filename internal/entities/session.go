package entities

import (
	"time"
)

// ReadingSession is one contiguous interval of active reading on a single
// document. EndedAt is nil while the session is open; at most one session per
// document may be open at a time. Closed sessions are append-only history and
// are never mutated afterwards.
type ReadingSession struct {
	ID              string     `gorm:"primaryKey;size:64" json:"id"`
	DocumentID      string     `gorm:"index;size:64" json:"document_id"`
	StartedAt       time.Time  `gorm:"index" json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes"` // whole minutes, 0 until closed
}

// Open reports whether the session has not been stopped yet.
func (s *ReadingSession) Open() bool {
	return s.EndedAt == nil
}

func (ReadingSession) TableName() string {
	return "sessions"
}
