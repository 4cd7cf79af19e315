// Package client is a typed REST client for the trove API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Client talks to one trove server. Not safe for concurrent token
// swaps; callers set the token once after login.
type Client struct {
	base  string
	http  *http.Client
	token string
}

func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// --- auth ---

func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	if name != "" {
		body["name"] = name
	}

	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// --- notes ---

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var out struct {
		Notes []Note `json:"notes"`
	}
	err := c.do(ctx, http.MethodGet, "/api/notes", nil, &out)
	return out.Notes, err
}

func (c *Client) GetNote(ctx context.Context, id string) (Note, error) {
	var out struct {
		Note Note `json:"note"`
	}
	err := c.do(ctx, http.MethodGet, "/api/notes/"+id, nil, &out)
	return out.Note, err
}

func (c *Client) CreateNote(ctx context.Context, draft NoteDraft) (Note, error) {
	var out struct {
		Note Note `json:"note"`
	}
	err := c.do(ctx, http.MethodPost, "/api/notes", draft, &out)
	return out.Note, err
}

func (c *Client) UpdateNote(ctx context.Context, id string, patch NotePatch) (Note, error) {
	var out struct {
		Note Note `json:"note"`
	}
	err := c.do(ctx, http.MethodPut, "/api/notes/"+id, patch, &out)
	return out.Note, err
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+id, nil, nil)
}

func (c *Client) SyncNotes(ctx context.Context, drafts []NoteDraft) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodPost, "/api/notes/sync", drafts, &out)
	return out.Count, err
}

// --- tasks ---

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out)
	return out.Tasks, err
}

func (c *Client) GetTask(ctx context.Context, id string) (Task, error) {
	var out struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+id, nil, &out)
	return out.Task, err
}

func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) (Task, error) {
	var out struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPost, "/api/tasks", draft, &out)
	return out.Task, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error) {
	var out struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, patch, &out)
	return out.Task, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (c *Client) SyncTasks(ctx context.Context, drafts []TaskDraft) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodPost, "/api/tasks/sync", drafts, &out)
	return out.Count, err
}

// --- ideas ---

func (c *Client) ListIdeas(ctx context.Context, category string) ([]Idea, error) {
	path := "/api/ideas"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}

	var out struct {
		Ideas []Idea `json:"ideas"`
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Ideas, err
}

func (c *Client) SearchIdeas(ctx context.Context, query string) ([]Idea, error) {
	var out struct {
		Ideas []Idea `json:"ideas"`
	}
	err := c.do(ctx, http.MethodGet, "/api/ideas/search?query="+url.QueryEscape(query), nil, &out)
	return out.Ideas, err
}

func (c *Client) GetIdea(ctx context.Context, id string) (Idea, error) {
	var out struct {
		Idea Idea `json:"idea"`
	}
	err := c.do(ctx, http.MethodGet, "/api/ideas/"+id, nil, &out)
	return out.Idea, err
}

func (c *Client) CreateIdea(ctx context.Context, draft IdeaDraft) (Idea, error) {
	var out struct {
		Idea Idea `json:"idea"`
	}
	err := c.do(ctx, http.MethodPost, "/api/ideas", draft, &out)
	return out.Idea, err
}

func (c *Client) UpdateIdea(ctx context.Context, id string, patch IdeaPatch) (Idea, error) {
	var out struct {
		Idea Idea `json:"idea"`
	}
	err := c.do(ctx, http.MethodPut, "/api/ideas/"+id, patch, &out)
	return out.Idea, err
}

func (c *Client) DeleteIdea(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/ideas/"+id, nil, nil)
}

func (c *Client) SyncIdeas(ctx context.Context, drafts []IdeaDraft) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodPost, "/api/ideas/sync", drafts, &out)
	return out.Count, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
