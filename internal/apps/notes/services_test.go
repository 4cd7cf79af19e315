package notes

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *NoteService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Note{}))
	return NewNoteService(db)
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	note, err := svc.Create(owner, &CreateNoteRequest{Title: "groceries", Content: "milk"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, note.ID)
	assert.Equal(t, owner, note.OwnerID)
	assert.Equal(t, DefaultColor, note.Color)
	assert.False(t, note.Pinned)
}

func TestCreateMissingFields(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(uuid.New(), &CreateNoteRequest{Title: "no content"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(uuid.New(), &CreateNoteRequest{Content: "no title"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestListOrdering(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	old, err := svc.Create(owner, &CreateNoteRequest{Title: "old", Content: "x"})
	require.NoError(t, err)
	require.NoError(t, svc.db.Model(old).Update("created_at", time.Now().Add(-time.Hour)).Error)

	_, err = svc.Create(owner, &CreateNoteRequest{Title: "new", Content: "x"})
	require.NoError(t, err)
	_, err = svc.Create(owner, &CreateNoteRequest{Title: "pinned", Content: "x", Pinned: true})
	require.NoError(t, err)

	list, err := svc.List(owner)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Pinned first, then newest first.
	assert.Equal(t, "pinned", list[0].Title)
	assert.Equal(t, "new", list[1].Title)
	assert.Equal(t, "old", list[2].Title)
}

func TestOwnerIsolation(t *testing.T) {
	svc := newTestService(t)
	alice := uuid.New()
	bob := uuid.New()

	note, err := svc.Create(alice, &CreateNoteRequest{Title: "private", Content: "x"})
	require.NoError(t, err)

	list, err := svc.List(bob)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Get(bob, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(bob, note.ID, &UpdateNoteRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(bob, note.ID), ErrNotFound)

	// Still there for the owner.
	_, err = svc.Get(alice, note.ID)
	require.NoError(t, err)
}

func TestPartialUpdate(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	note, err := svc.Create(owner, &CreateNoteRequest{Title: "draft", Content: "body", Color: "#abcdef"})
	require.NoError(t, err)

	pinned := true
	updated, err := svc.Update(owner, note.ID, &UpdateNoteRequest{Pinned: &pinned})
	require.NoError(t, err)

	assert.True(t, updated.Pinned)
	assert.Equal(t, "draft", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, "#abcdef", updated.Color)
}

func TestDeleteTwice(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	note, err := svc.Create(owner, &CreateNoteRequest{Title: "gone", Content: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(owner, note.ID))
	assert.ErrorIs(t, svc.Delete(owner, note.ID), ErrNotFound)
}

func TestBulkImport(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	id := uuid.New()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	count, err := svc.BulkImport(owner, []ImportNoteRequest{
		{ID: &id, Title: "kept id", Content: "x", CreatedAt: &created, UpdatedAt: &created},
		{Title: "assigned id", Content: "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	note, err := svc.Get(owner, id)
	require.NoError(t, err)
	assert.Equal(t, "kept id", note.Title)
	assert.Equal(t, DefaultColor, note.Color)
	assert.True(t, note.CreatedAt.Equal(created))
}

func TestBulkImportSkipsCollidingIDs(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	existing, err := svc.Create(owner, &CreateNoteRequest{Title: "already here", Content: "x"})
	require.NoError(t, err)

	count, err := svc.BulkImport(owner, []ImportNoteRequest{
		{ID: &existing.ID, Title: "collides", Content: "x"},
		{Title: "fresh", Content: "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The existing record is untouched.
	note, err := svc.Get(owner, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "already here", note.Title)
}

func TestBulkImportValidation(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()

	_, err := svc.BulkImport(owner, nil)
	assert.ErrorIs(t, err, ErrEmptyImport)

	_, err = svc.BulkImport(owner, []ImportNoteRequest{{Title: "no content"}})
	assert.ErrorIs(t, err, ErrMissingFields)
}
