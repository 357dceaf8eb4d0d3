package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID generates a primary key for any collection. The millisecond prefix
// keeps keys roughly creation-ordered; the random suffix guarantees that
// rapid successive calls within the same millisecond never collide.
func NewID() string {
	return fmt.Sprintf("%013d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
