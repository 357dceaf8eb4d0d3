package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lectern-app/lectern/internal/database/annotations"
	"github.com/lectern-app/lectern/internal/entities"
	"github.com/lectern-app/lectern/internal/utils"
)

// AnnotationsStore defines database operations for annotation management.
type AnnotationsStore interface {
	Create(documentID string, kind entities.AnnotationKind, content string, pos entities.Position, color, note string) (*entities.Annotation, error)
	Update(id string, patch annotations.Patch) (*entities.Annotation, error)
	Delete(id string) error
	ListForDocument(documentID string) ([]entities.Annotation, error)
}

type AnnotationsController struct {
	store AnnotationsStore
}

func NewAnnotationsController(store AnnotationsStore) *AnnotationsController {
	return &AnnotationsController{store: store}
}

type createAnnotationRequest struct {
	Kind     entities.AnnotationKind `json:"kind" binding:"required"`
	Content  string                  `json:"content"`
	Note     string                  `json:"note"`
	Color    string                  `json:"color"`
	Position entities.Position       `json:"position"`
}

// Create persists a highlight, note or bookmark against a document. The
// caller has already translated the renderer's selection into a Position.
// POST /api/documents/:id/annotations
func (ac *AnnotationsController) Create(c *gin.Context) {
	var req createAnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	color := utils.NormalizeColor(req.Color)
	a, err := ac.store.Create(c.Param("id"), req.Kind, req.Content, req.Position, color, req.Note)
	if err != nil {
		respondStoreError(c, err, "create annotation")
		return
	}
	respondCreated(c, a)
}

// List returns a document's annotations in creation order.
// GET /api/documents/:id/annotations
func (ac *AnnotationsController) List(c *gin.Context) {
	list, err := ac.store.ListForDocument(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "list annotations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"annotations": list, "total": len(list)})
}

// Update applies a partial edit to an annotation.
// PATCH /api/annotations/:id
func (ac *AnnotationsController) Update(c *gin.Context) {
	var patch annotations.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}
	if patch.Color != nil {
		normalized := utils.NormalizeColor(*patch.Color)
		patch.Color = &normalized
	}

	a, err := ac.store.Update(c.Param("id"), patch)
	if err != nil {
		respondStoreError(c, err, "update annotation")
		return
	}
	c.JSON(http.StatusOK, a)
}

// Delete removes an annotation. Deleting twice succeeds both times.
// DELETE /api/annotations/:id
func (ac *AnnotationsController) Delete(c *gin.Context) {
	if err := ac.store.Delete(c.Param("id")); err != nil {
		respondStoreError(c, err, "delete annotation")
		return
	}
	respondSuccess(c, "annotation deleted")
}
