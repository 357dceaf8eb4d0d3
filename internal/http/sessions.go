package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lectern-app/lectern/internal/entities"
)

// SessionsStore defines database operations for reading sessions.
type SessionsStore interface {
	Start(documentID string) (*entities.ReadingSession, error)
	Stop(documentID string) (*entities.ReadingSession, error)
	ListForDocument(documentID string) ([]entities.ReadingSession, error)
}

type SessionsController struct {
	store SessionsStore
}

func NewSessionsController(store SessionsStore) *SessionsController {
	return &SessionsController{store: store}
}

// Start opens a reading session, force-closing any session left open for the
// same document.
// POST /api/documents/:id/sessions/start
func (sc *SessionsController) Start(c *gin.Context) {
	s, err := sc.store.Start(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "start session")
		return
	}
	respondCreated(c, s)
}

// Stop closes the open session and folds its duration into progress. With no
// open session nothing happens.
// POST /api/documents/:id/sessions/stop
func (sc *SessionsController) Stop(c *gin.Context) {
	s, err := sc.store.Stop(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "stop session")
		return
	}
	if s == nil {
		respondSuccess(c, "no open session")
		return
	}
	c.JSON(http.StatusOK, s)
}

// List returns the closed session history of a document.
// GET /api/documents/:id/sessions
func (sc *SessionsController) List(c *gin.Context) {
	list, err := sc.store.ListForDocument(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "list sessions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": list, "total": len(list)})
}
