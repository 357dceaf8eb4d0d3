package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-app/lectern/internal/entities"
)

// Exercises the whole reading flow of a plain-text document over the API:
// relocation, session start/stop, completion, back-navigation.
func TestReadingFlow(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	doc := addTestDocument(t, router, "Author - Journal", entities.FormatPlain)

	t.Run("relocation creates progress", func(t *testing.T) {
		w := doJSON(router, "PUT", "/api/documents/"+doc.ID+"/progress", gin.H{
			"line": 5, "percentage": 10,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var p entities.Progress
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, 10.0, p.Position.Percentage)
		assert.False(t, p.Finished)
	})

	t.Run("a session accrues reading time", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/documents/"+doc.ID+"/sessions/start", nil)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, "POST", "/api/documents/"+doc.ID+"/sessions/stop", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var s entities.ReadingSession
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
		require.NotNil(t, s.EndedAt)
		assert.GreaterOrEqual(t, s.DurationMinutes, 0)

		w = doJSON(router, "GET", "/api/documents/"+doc.ID+"/progress", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var p entities.Progress
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, s.DurationMinutes, p.TotalReadingMinutes)

		w = doJSON(router, "GET", "/api/documents/"+doc.ID+"/sessions", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var listResp struct {
			Total int `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
		assert.Equal(t, 1, listResp.Total)
	})

	t.Run("reaching the end sets finished, back-navigation keeps it", func(t *testing.T) {
		w := doJSON(router, "PUT", "/api/documents/"+doc.ID+"/progress", gin.H{
			"line": 50, "percentage": 100,
		})
		require.Equal(t, http.StatusOK, w.Code)
		var p entities.Progress
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.True(t, p.Finished)

		w = doJSON(router, "PUT", "/api/documents/"+doc.ID+"/progress", gin.H{
			"line": 10, "percentage": 20,
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.True(t, p.Finished, "finished survives back-navigation")
		assert.Equal(t, 20.0, p.Position.Percentage)
	})

	t.Run("stats reflect the flow", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var stats struct {
			Documents         int64 `json:"documents"`
			FinishedDocuments int64 `json:"finished_documents"`
			ReadingStreakDays int   `json:"reading_streak_days"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, int64(1), stats.Documents)
		assert.Equal(t, int64(1), stats.FinishedDocuments)
		assert.Equal(t, 1, stats.ReadingStreakDays, "today's session starts a streak")
	})

	t.Run("progress for an untracked document is 404", func(t *testing.T) {
		other := addTestDocument(t, router, "Author - Untouched", entities.FormatPaged)
		w := doJSON(router, "GET", "/api/documents/"+other.ID+"/progress", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("health is ok", func(t *testing.T) {
		w := doJSON(router, "GET", "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
