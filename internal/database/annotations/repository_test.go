package annotations

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-app/lectern/internal/database"
	"github.com/lectern-app/lectern/internal/database/catalog"
	"github.com/lectern-app/lectern/internal/entities"
)

func setupTestRepo(t *testing.T) (*Repository, *entities.Document, func()) {
	t.Helper()
	dbPath := "./test_annotations_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	doc, err := catalog.NewRepository(db.DB).AddDocument("Author - Title", entities.FormatPlain, nil)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), doc, cleanup
}

func linePos(line int, pct float64) entities.Position {
	return entities.Position{Line: &line, Percentage: pct}
}

func TestCreate(t *testing.T) {
	repo, doc, cleanup := setupTestRepo(t)
	defer cleanup()

	t.Run("persists a highlight with its position", func(t *testing.T) {
		a, err := repo.Create(doc.ID, entities.AnnotationKindHighlight, "selected text", linePos(5, 10), "#FFFFFF00", "a remark")
		require.NoError(t, err)
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, doc.ID, a.DocumentID)
		assert.Equal(t, "selected text", a.Content)
		assert.Equal(t, "a remark", a.Note)
		require.NotNil(t, a.Position.Line)
		assert.Equal(t, 5, *a.Position.Line)
		assert.Nil(t, a.Position.Page, "page does not apply to a plain document")
		assert.False(t, a.UpdatedAt.Before(a.CreatedAt))
	})

	t.Run("clamps a percentage overshoot", func(t *testing.T) {
		a, err := repo.Create(doc.ID, entities.AnnotationKindBookmark, "end", linePos(999, 104.2), "", "")
		require.NoError(t, err)
		assert.Equal(t, 100.0, a.Position.Percentage)
	})

	t.Run("unknown document fails with not found", func(t *testing.T) {
		_, err := repo.Create("missing-doc", entities.AnnotationKindNote, "title", linePos(1, 0), "", "")
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestUpdate(t *testing.T) {
	repo, doc, cleanup := setupTestRepo(t)
	defer cleanup()

	a, err := repo.Create(doc.ID, entities.AnnotationKindHighlight, "original", linePos(3, 7), "#FF112233", "")
	require.NoError(t, err)

	t.Run("changes only the patched field and refreshes updated", func(t *testing.T) {
		note := "added later"
		updated, err := repo.Update(a.ID, Patch{Note: &note})
		require.NoError(t, err)

		assert.Equal(t, "added later", updated.Note)
		assert.Equal(t, "original", updated.Content)
		assert.Equal(t, "#FF112233", updated.Color)
		assert.Equal(t, a.CreatedAt.UnixNano(), updated.CreatedAt.UnixNano())
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		content := "x"
		_, err := repo.Update("missing-id", Patch{Content: &content})
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	repo, doc, cleanup := setupTestRepo(t)
	defer cleanup()

	a, err := repo.Create(doc.ID, entities.AnnotationKindBookmark, "mark", linePos(1, 1), "", "")
	require.NoError(t, err)

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Delete(a.ID))
		assert.NoError(t, repo.Delete(a.ID), "second delete of the same id must succeed")

		_, err := repo.Get(a.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestListForDocument(t *testing.T) {
	repo, doc, cleanup := setupTestRepo(t)
	defer cleanup()

	t.Run("rapid creations stay distinct and creation-ordered", func(t *testing.T) {
		// No sleeps: all three may land in the same millisecond.
		for _, content := range []string{"first", "second", "third"} {
			_, err := repo.Create(doc.ID, entities.AnnotationKindHighlight, content, linePos(1, 1), "", "")
			require.NoError(t, err)
		}

		list, err := repo.ListForDocument(doc.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)

		ids := make(map[string]bool)
		for _, a := range list {
			ids[a.ID] = true
		}
		assert.Len(t, ids, 3, "ids must be distinct")

		for i := 1; i < len(list); i++ {
			assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt), "list must be creation-ordered")
		}
	})

	t.Run("document with no annotations yields an empty list", func(t *testing.T) {
		list, err := repo.ListForDocument("no-such-doc")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
