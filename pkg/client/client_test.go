package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSetsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "Ada", body["name"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user":  map[string]string{"id": "u1", "email": "ada@example.com"},
			"token": "tok",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	auth, err := c.Register(context.Background(), "ada@example.com", "hunter22", "Ada")
	require.NoError(t, err)

	assert.Equal(t, "tok", auth.Token)
	assert.Equal(t, "u1", auth.User.ID)
	assert.Equal(t, "tok", c.Token())
}

func TestBearerTokenSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"notes":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok")

	_, err := c.ListNotes(context.Background())
	require.NoError(t, err)
}

func TestErrorBodyDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid email or password"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "ada@example.com", "nope")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid email or password", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "401")
}

func TestErrorWithoutBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListTasks(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestSearchIdeasEscapesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ideas/search", r.URL.Path)
		assert.Equal(t, "two words", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ideas":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SearchIdeas(context.Background(), "two words")
	require.NoError(t, err)
}

func TestSyncNotesReturnsCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notes/sync", r.URL.Path)

		var drafts []NoteDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&drafts))
		assert.Len(t, drafts, 2)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"count":2}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	count, err := c.SyncNotes(context.Background(), []NoteDraft{
		{Title: "a", Content: "x"},
		{Title: "b", Content: "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
