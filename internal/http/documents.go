package http

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lectern-app/lectern/internal/database/catalog"
	"github.com/lectern-app/lectern/internal/entities"
)

// DocumentsStore defines database operations for catalog management.
type DocumentsStore interface {
	AddDocument(name string, format entities.DocumentFormat, payload []byte) (*entities.Document, error)
	GetDocument(id string) (*entities.Document, error)
	ListDocuments() ([]entities.Document, error)
	RemoveDocuments(ids []string) error
	UpdateMetadata(id string, patch catalog.MetadataPatch) (*entities.Document, error)
	SetOutline(id string, outline entities.Outline) error
	MarkOpened(id string) error
}

type DocumentsController struct {
	store DocumentsStore
}

func NewDocumentsController(store DocumentsStore) *DocumentsController {
	return &DocumentsController{store: store}
}

type addDocumentRequest struct {
	Name    string                  `json:"name" binding:"required"`
	Format  entities.DocumentFormat `json:"format" binding:"required"`
	Payload string                  `json:"payload"` // base64-encoded binary
}

// Add imports a document into the catalog.
// POST /api/documents
func (dc *DocumentsController) Add(c *gin.Context) {
	var req addDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		respondBadRequest(c, "payload is not valid base64")
		return
	}

	doc, err := dc.store.AddDocument(req.Name, req.Format, payload)
	if err != nil {
		respondStoreError(c, err, "add document")
		return
	}
	respondCreated(c, doc)
}

// List returns every catalog entry without payloads.
// GET /api/documents
func (dc *DocumentsController) List(c *gin.Context) {
	docs, err := dc.store.ListDocuments()
	if err != nil {
		respondStoreError(c, err, "list documents")
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs, "total": len(docs)})
}

// Payload serves the raw binary of a document to a renderer and bumps its
// last-opened timestamp.
// GET /api/documents/:id/payload
func (dc *DocumentsController) Payload(c *gin.Context) {
	id := c.Param("id")
	doc, err := dc.store.GetDocument(id)
	if err != nil {
		respondStoreError(c, err, "get document payload")
		return
	}
	if err := dc.store.MarkOpened(id); err != nil {
		respondStoreError(c, err, "mark document opened")
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", doc.Payload)
}

type removeDocumentsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// Remove cascade-deletes documents and all their dependent records. Unknown
// ids do not fail the call.
// DELETE /api/documents
func (dc *DocumentsController) Remove(c *gin.Context) {
	var req removeDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := dc.store.RemoveDocuments(req.IDs); err != nil {
		respondStoreError(c, err, "remove documents")
		return
	}
	respondSuccess(c, "documents removed")
}

// UpdateMetadata applies a partial edit to the editable fields.
// PATCH /api/documents/:id
func (dc *DocumentsController) UpdateMetadata(c *gin.Context) {
	var patch catalog.MetadataPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	doc, err := dc.store.UpdateMetadata(c.Param("id"), patch)
	if err != nil {
		respondStoreError(c, err, "update metadata")
		return
	}
	c.JSON(http.StatusOK, doc)
}

type setOutlineRequest struct {
	Outline entities.Outline `json:"outline"`
}

// SetOutline replaces the cached table of contents.
// PUT /api/documents/:id/outline
func (dc *DocumentsController) SetOutline(c *gin.Context) {
	var req setOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := dc.store.SetOutline(c.Param("id"), req.Outline); err != nil {
		respondStoreError(c, err, "set outline")
		return
	}
	respondSuccess(c, "outline updated")
}

// Outline serves the cached table of contents for outline navigation.
// GET /api/documents/:id/outline
func (dc *DocumentsController) Outline(c *gin.Context) {
	doc, err := dc.store.GetDocument(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "get outline")
		return
	}
	c.JSON(http.StatusOK, gin.H{"outline": doc.Outline})
}
