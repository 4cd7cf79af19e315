package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trovehq/trove/pkg/client"
	"github.com/trovehq/trove/pkg/localstore"
)

func newGuestNotes(t *testing.T) (*Notes, *localstore.Store) {
	t.Helper()
	files, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	notes, err := NewNotes(files, client.New("http://unused"), false)
	require.NoError(t, err)
	return notes, files
}

func TestGuestAdd(t *testing.T) {
	notes, files := newGuestNotes(t)
	ctx := context.Background()

	note, err := notes.Add(ctx, client.NoteDraft{Title: "groceries", Content: "milk"})
	require.NoError(t, err)

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, DefaultNoteColor, note.Color)
	assert.False(t, note.Pinned)
	assert.False(t, notes.Loading())

	items := notes.Items()
	require.Len(t, items, 1)
	assert.Equal(t, note.ID, items[0].ID)

	// The file on disk matches the in-memory list.
	var persisted []client.Note
	require.NoError(t, files.Load(localstore.KeyNotes, &persisted))
	assert.Equal(t, items, persisted)
}

func TestGuestAddPrepends(t *testing.T) {
	notes, _ := newGuestNotes(t)
	ctx := context.Background()

	first, err := notes.Add(ctx, client.NoteDraft{Title: "first", Content: "x"})
	require.NoError(t, err)
	second, err := notes.Add(ctx, client.NoteDraft{Title: "second", Content: "x"})
	require.NoError(t, err)

	items := notes.Items()
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGuestUpdateAndDelete(t *testing.T) {
	notes, _ := newGuestNotes(t)
	ctx := context.Background()

	note, err := notes.Add(ctx, client.NoteDraft{Title: "draft", Content: "x"})
	require.NoError(t, err)

	pinned := true
	updated, err := notes.Update(ctx, note.ID, client.NotePatch{Pinned: &pinned})
	require.NoError(t, err)
	assert.True(t, updated.Pinned)
	assert.Equal(t, "draft", updated.Title)

	require.NoError(t, notes.Delete(ctx, note.ID))
	assert.Empty(t, notes.Items())

	assert.ErrorIs(t, notes.Delete(ctx, note.ID), ErrNotFound)
	_, err = notes.Update(ctx, note.ID, client.NotePatch{Pinned: &pinned})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGuestHydratesFromDisk(t *testing.T) {
	dir := t.TempDir()
	files, err := localstore.New(dir)
	require.NoError(t, err)

	notes, err := NewNotes(files, client.New("http://unused"), false)
	require.NoError(t, err)
	_, err = notes.Add(context.Background(), client.NoteDraft{Title: "kept", Content: "x"})
	require.NoError(t, err)

	// A fresh collection over the same directory sees the record.
	reopened, err := NewNotes(files, client.New("http://unused"), false)
	require.NoError(t, err)
	items := reopened.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "kept", items[0].Title)
}

func TestExportForSyncStripsIDs(t *testing.T) {
	notes, _ := newGuestNotes(t)
	ctx := context.Background()

	_, err := notes.Add(ctx, client.NoteDraft{Title: "a", Content: "x", Pinned: true})
	require.NoError(t, err)
	_, err = notes.Add(ctx, client.NoteDraft{Title: "b", Content: "y"})
	require.NoError(t, err)

	drafts := notes.ExportForSync()
	require.Len(t, drafts, 2)
	for _, d := range drafts {
		assert.NotNil(t, d.CreatedAt)
		assert.NotNil(t, d.UpdatedAt)
	}
	assert.Equal(t, "b", drafts[0].Title)
	assert.True(t, drafts[1].Pinned)
}

func TestClear(t *testing.T) {
	notes, files := newGuestNotes(t)

	_, err := notes.Add(context.Background(), client.NoteDraft{Title: "a", Content: "x"})
	require.NoError(t, err)

	require.NoError(t, notes.Clear())
	assert.Empty(t, notes.Items())

	var persisted []client.Note
	require.NoError(t, files.Load(localstore.KeyNotes, &persisted))
	assert.Empty(t, persisted)
}

func TestRemoteFailureLeavesListUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"notes":[{"id":"n1","title":"remote","content":"x"}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	files, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	notes, err := NewNotes(files, client.New(srv.URL), true)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, notes.Fetch(ctx))
	require.Len(t, notes.Items(), 1)

	_, err = notes.Add(ctx, client.NoteDraft{Title: "rejected", Content: "x"})
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Message)

	// The list still holds only the fetched record, and the error is
	// recorded on the collection.
	assert.Len(t, notes.Items(), 1)
	assert.ErrorIs(t, notes.Err(), err)
	assert.False(t, notes.Loading())
}

func TestTaskAndIdeaDefaults(t *testing.T) {
	files, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	cl := client.New("http://unused")
	ctx := context.Background()

	tasks, err := NewTasks(files, cl, false)
	require.NoError(t, err)
	task, err := tasks.Add(ctx, client.TaskDraft{Title: "ship it"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTaskPriority, task.Priority)

	ideas, err := NewIdeas(files, cl, false)
	require.NoError(t, err)
	idea, err := ideas.Add(ctx, client.IdeaDraft{Title: "solar kettle", Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, DefaultIdeaCategory, idea.Category)
	assert.NotNil(t, idea.Tags)
	assert.Empty(t, idea.Tags)
}
