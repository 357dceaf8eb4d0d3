package catalog

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-app/lectern/internal/database"
	"github.com/lectern-app/lectern/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	dbPath := "./test_catalog_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestAddDocument(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	t.Run("infers author and title from the display name", func(t *testing.T) {
		doc, err := repo.AddDocument("Jane Austen - Emma.epub", entities.FormatFlow, []byte("payload"))
		require.NoError(t, err)
		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, "Emma", doc.Title)
		assert.Equal(t, "Jane Austen", doc.Author)
		assert.Equal(t, entities.FormatFlow, doc.Format)
		assert.Equal(t, []byte("payload"), doc.Payload)
		assert.False(t, doc.CreatedAt.IsZero())
	})

	t.Run("falls back to bare name and unknown author", func(t *testing.T) {
		doc, err := repo.AddDocument("notes.txt", entities.FormatPlain, nil)
		require.NoError(t, err)
		assert.Equal(t, "notes", doc.Title)
		assert.Equal(t, UnknownAuthor, doc.Author)
	})

	t.Run("rejects a format no renderer understands", func(t *testing.T) {
		_, err := repo.AddDocument("mystery.bin", entities.DocumentFormat("spreadsheet"), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, database.ErrUnsupportedFormat)

		docs, err := repo.ListDocuments()
		require.NoError(t, err)
		for _, d := range docs {
			assert.NotEqual(t, "mystery.bin", d.Name, "rejected import must not create a record")
		}
	})
}

func TestListDocuments(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	first, err := repo.AddDocument("A - One", entities.FormatPaged, nil)
	require.NoError(t, err)
	_, err = repo.AddDocument("B - Two", entities.FormatPlain, nil)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.MarkOpened(first.ID))

	docs, err := repo.ListDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first.ID, docs[0].ID, "most recently opened first")
}

func TestUpdateMetadata(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	doc, err := repo.AddDocument("Author - Title", entities.FormatFlow, nil)
	require.NoError(t, err)

	t.Run("updates only the given fields", func(t *testing.T) {
		genre := "novel"
		updated, err := repo.UpdateMetadata(doc.ID, MetadataPatch{Genre: &genre})
		require.NoError(t, err)
		assert.Equal(t, "novel", updated.Genre)
		assert.Equal(t, "Title", updated.Title)
		assert.Equal(t, "Author", updated.Author)
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		title := "x"
		_, err := repo.UpdateMetadata("missing-id", MetadataPatch{Title: &title})
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestSetOutline(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	doc, err := repo.AddDocument("Author - Title", entities.FormatPaged, nil)
	require.NoError(t, err)

	page1, page5 := 1, 5
	outline := entities.Outline{
		{ID: "ch1", Label: "Chapter 1", Page: &page1, Children: []entities.OutlineNode{
			{ID: "ch1.1", Label: "Opening", Page: &page1},
		}},
		{ID: "ch2", Label: "Chapter 2", Page: &page5},
	}
	require.NoError(t, repo.SetOutline(doc.ID, outline))

	reloaded, err := repo.GetDocument(doc.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Outline, 2)
	assert.Equal(t, "Chapter 1", reloaded.Outline[0].Label)
	require.NotNil(t, reloaded.Outline[1].Page)
	assert.Equal(t, 5, *reloaded.Outline[1].Page)
	require.Len(t, reloaded.Outline[0].Children, 1)
	assert.Equal(t, "ch1.1", reloaded.Outline[0].Children[0].ID)

	t.Run("unknown id fails with not found", func(t *testing.T) {
		err := repo.SetOutline("missing-id", outline)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestRemoveDocuments(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	doc, err := repo.AddDocument("Author - Doomed", entities.FormatPlain, nil)
	require.NoError(t, err)
	keep, err := repo.AddDocument("Author - Kept", entities.FormatPlain, nil)
	require.NoError(t, err)

	// Dependent records in all three other collections.
	now := time.Now().UTC()
	require.NoError(t, db.DB.Create(&entities.Annotation{
		ID: database.NewID(), DocumentID: doc.ID, Kind: entities.AnnotationKindHighlight,
		Content: "text", CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.DB.Create(&entities.Progress{DocumentID: doc.ID, LastReadAt: now}).Error)
	require.NoError(t, db.DB.Create(&entities.ReadingSession{
		ID: database.NewID(), DocumentID: doc.ID, StartedAt: now, EndedAt: &now,
	}).Error)
	require.NoError(t, db.DB.Create(&entities.Progress{DocumentID: keep.ID, LastReadAt: now}).Error)

	t.Run("cascade removes all dependents, unknown ids are no-ops", func(t *testing.T) {
		require.NoError(t, repo.RemoveDocuments([]string{doc.ID, "doc-nonexistent"}))

		_, err := repo.GetDocument(doc.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)

		var count int64
		require.NoError(t, db.DB.Model(&entities.Annotation{}).Where("document_id = ?", doc.ID).Count(&count).Error)
		assert.Zero(t, count, "annotations must not survive their document")
		require.NoError(t, db.DB.Model(&entities.ReadingSession{}).Where("document_id = ?", doc.ID).Count(&count).Error)
		assert.Zero(t, count, "sessions must not survive their document")
		require.NoError(t, db.DB.Model(&entities.Progress{}).Where("document_id = ?", doc.ID).Count(&count).Error)
		assert.Zero(t, count, "progress must not survive its document")

		// Other documents are untouched.
		require.NoError(t, db.DB.Model(&entities.Progress{}).Where("document_id = ?", keep.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("empty id list is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.RemoveDocuments(nil))
	})
}

func TestInferMetadata(t *testing.T) {
	cases := []struct {
		name   string
		title  string
		author string
	}{
		{"Jane Austen - Emma", "Emma", "Jane Austen"},
		{"Jane Austen - Emma.epub", "Emma", "Jane Austen"},
		{"Emma", "Emma", UnknownAuthor},
		{"With - Several - Dashes", "Several - Dashes", "With"},
		{" - Title", " - Title", UnknownAuthor},
	}
	for _, c := range cases {
		title, author := inferMetadata(c.name)
		assert.Equal(t, c.title, title, "name %q", c.name)
		assert.Equal(t, c.author, author, "name %q", c.name)
	}
}
