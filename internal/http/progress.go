package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lectern-app/lectern/internal/entities"
)

// ProgressStore defines database operations for reading progress.
type ProgressStore interface {
	RecordPosition(documentID string, pos entities.Position) (*entities.Progress, error)
	Get(documentID string) (*entities.Progress, error)
	GetAll() (map[string]entities.Progress, error)
}

type ProgressController struct {
	store ProgressStore
}

func NewProgressController(store ProgressStore) *ProgressController {
	return &ProgressController{store: store}
}

// Record consumes a renderer "relocated" signal and upserts the document's
// progress record.
// PUT /api/documents/:id/progress
func (pc *ProgressController) Record(c *gin.Context) {
	var pos entities.Position
	if err := c.ShouldBindJSON(&pos); err != nil {
		respondBadRequest(c, "invalid position: "+err.Error())
		return
	}

	p, err := pc.store.RecordPosition(c.Param("id"), pos)
	if err != nil {
		respondStoreError(c, err, "record position")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Get returns the progress record of one document.
// GET /api/documents/:id/progress
func (pc *ProgressController) Get(c *gin.Context) {
	p, err := pc.store.Get(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "get progress")
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetAll returns every progress record keyed by document id, the shape the
// library view consumes.
// GET /api/progress
func (pc *ProgressController) GetAll(c *gin.Context) {
	all, err := pc.store.GetAll()
	if err != nil {
		respondStoreError(c, err, "get all progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": all})
}
