package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trovehq/trove/pkg/client"
	"github.com/trovehq/trove/pkg/localstore"
)

// fakeServer counts bulk-import payload sizes per endpoint and can be
// told to fail one of them.
type fakeServer struct {
	imports  map[string]int
	failPath string
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":  map[string]string{"id": "u1", "email": "ada@example.com"},
			"token": "tok",
		})
	})
	for _, path := range []string{"/api/notes/sync", "/api/tasks/sync", "/api/ideas/sync"} {
		path := path
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if path == f.failPath {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"import failed"}`))
				return
			}
			var drafts []json.RawMessage
			json.NewDecoder(r.Body).Decode(&drafts)
			f.imports[path] = len(drafts)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]int{"count": len(drafts)})
		})
	}
	return mux
}

func newSyncFixture(t *testing.T, fake *fakeServer) *Syncer {
	t.Helper()

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	files, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	cl := client.New(srv.URL)

	notes, err := NewNotes(files, cl, false)
	require.NoError(t, err)
	tasks, err := NewTasks(files, cl, false)
	require.NoError(t, err)
	ideas, err := NewIdeas(files, cl, false)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = notes.Add(ctx, client.NoteDraft{Title: "n1", Content: "x"})
	require.NoError(t, err)
	_, err = notes.Add(ctx, client.NoteDraft{Title: "n2", Content: "y"})
	require.NoError(t, err)
	_, err = tasks.Add(ctx, client.TaskDraft{Title: "t1"})
	require.NoError(t, err)

	return &Syncer{Client: cl, Notes: notes, Tasks: tasks, Ideas: ideas}
}

func TestRegisterAndSync(t *testing.T) {
	fake := &fakeServer{imports: map[string]int{}}
	syncer := newSyncFixture(t, fake)

	auth, result, err := syncer.RegisterAndSync(context.Background(), "ada@example.com", "hunter22", "")
	require.NoError(t, err)

	assert.Equal(t, "tok", auth.Token)
	assert.Equal(t, 2, result.NotesImported)
	assert.Equal(t, 1, result.TasksImported)
	assert.Equal(t, 0, result.IdeasImported)

	assert.Equal(t, 2, fake.imports["/api/notes/sync"])
	assert.Equal(t, 1, fake.imports["/api/tasks/sync"])
	// The empty idea list is never sent.
	_, sent := fake.imports["/api/ideas/sync"]
	assert.False(t, sent)

	// Synced lists are cleared locally.
	assert.Empty(t, syncer.Notes.Items())
	assert.Empty(t, syncer.Tasks.Items())
}

func TestRegisterAndSyncPartialFailure(t *testing.T) {
	fake := &fakeServer{imports: map[string]int{}, failPath: "/api/notes/sync"}
	syncer := newSyncFixture(t, fake)

	auth, result, err := syncer.RegisterAndSync(context.Background(), "ada@example.com", "hunter22", "")

	// Registration held even though one import failed.
	require.NotNil(t, auth)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes import")

	// The failed type keeps its local records; the others synced and
	// cleared.
	assert.Equal(t, 0, result.NotesImported)
	assert.Equal(t, 1, result.TasksImported)
	assert.Len(t, syncer.Notes.Items(), 2)
	assert.Empty(t, syncer.Tasks.Items())
}

func TestRegisterAndSyncRegistrationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"email already registered"}`))
	}))
	defer srv.Close()

	files, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	cl := client.New(srv.URL)
	notes, err := NewNotes(files, cl, false)
	require.NoError(t, err)
	tasks, err := NewTasks(files, cl, false)
	require.NoError(t, err)
	ideas, err := NewIdeas(files, cl, false)
	require.NoError(t, err)

	_, err = notes.Add(context.Background(), client.NoteDraft{Title: "kept", Content: "x"})
	require.NoError(t, err)

	syncer := &Syncer{Client: cl, Notes: notes, Tasks: tasks, Ideas: ideas}
	auth, result, err := syncer.RegisterAndSync(context.Background(), "ada@example.com", "hunter22", "")

	assert.Nil(t, auth)
	assert.Nil(t, result)
	require.Error(t, err)

	// Nothing was imported or cleared.
	assert.Len(t, notes.Items(), 1)
}
