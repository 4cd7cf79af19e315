// Package store is the client-side dual-mode state layer: one ordered
// list per content type, backed either by local files (guest mode) or
// by the REST API (authenticated mode). The backend is chosen once,
// from the caller's authentication state, not per call.
package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/trovehq/trove/pkg/localstore"
)

// ErrNotFound is returned when an id is not present in the local list.
var ErrNotFound = errors.New("record not found")

// Backend is one storage strategy for a record type. T is the record,
// D the draft used to create it, P the partial patch.
type Backend[T, D, P any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft D) (T, error)
	Update(ctx context.Context, id string, patch P) (T, error)
	Delete(ctx context.Context, id string) error
	// Clear wipes persisted state. Remote backends have nothing to
	// wipe and return nil.
	Clear() error
}

// hooks carries the per-type behavior shared by both backends.
type hooks[T, D, P any] struct {
	key        string
	id         func(T) string
	fromDraft  func(draft D, id string, now time.Time) T
	toDraft    func(T) D
	applyPatch func(rec *T, patch P, now time.Time)
}

// Collection holds the ordered record list (most recent first), a
// loading flag and the last error. Guest-mode calls are synchronous
// and never enter the loading state.
type Collection[T, D, P any] struct {
	mu      sync.Mutex
	items   []T
	loading bool
	lastErr error
	guest   bool
	backend Backend[T, D, P]
	h       hooks[T, D, P]
}

func newCollection[T, D, P any](h hooks[T, D, P], backend Backend[T, D, P], guest bool) (*Collection[T, D, P], error) {
	c := &Collection[T, D, P]{backend: backend, h: h, guest: guest}
	if guest {
		// Local persistence is authoritative; hydrate once.
		items, err := backend.List(context.Background())
		if err != nil {
			return nil, err
		}
		c.items = items
	}
	return c, nil
}

// Items returns a copy of the current list.
func (c *Collection[T, D, P]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T, D, P]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error recorded by the last failed call, if any.
func (c *Collection[T, D, P]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Fetch refreshes the list from the backend. In guest mode the local
// list is already authoritative and this is a no-op. On failure the
// existing list is left untouched.
func (c *Collection[T, D, P]) Fetch(ctx context.Context) error {
	if c.guest {
		return nil
	}

	c.begin()
	items, err := c.backend.List(ctx)
	if err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.items = items
	c.loading = false
	c.mu.Unlock()
	return nil
}

// Add creates a record and prepends it to the list. On failure the
// list is left unchanged.
func (c *Collection[T, D, P]) Add(ctx context.Context, draft D) (T, error) {
	c.begin()
	rec, err := c.backend.Create(ctx, draft)
	if err != nil {
		c.fail(err)
		return rec, err
	}

	c.mu.Lock()
	c.items = append([]T{rec}, c.items...)
	c.loading = false
	c.mu.Unlock()
	return rec, nil
}

// Update patches a record and replaces it in the list on success.
func (c *Collection[T, D, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	c.begin()
	rec, err := c.backend.Update(ctx, id, patch)
	if err != nil {
		c.fail(err)
		return rec, err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.h.id(c.items[i]) == id {
			c.items[i] = rec
			break
		}
	}
	c.loading = false
	c.mu.Unlock()
	return rec, nil
}

// Delete removes a record; the list only changes on success.
func (c *Collection[T, D, P]) Delete(ctx context.Context, id string) error {
	c.begin()
	if err := c.backend.Delete(ctx, id); err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.h.id(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.loading = false
	c.mu.Unlock()
	return nil
}

// Clear empties the list and wipes local persistence. Used after a
// successful sync.
func (c *Collection[T, D, P]) Clear() error {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
	return c.backend.Clear()
}

// ExportForSync returns the local records as drafts, identifiers
// stripped; the server assigns new ones during import.
func (c *Collection[T, D, P]) ExportForSync() []D {
	c.mu.Lock()
	defer c.mu.Unlock()
	drafts := make([]D, 0, len(c.items))
	for _, rec := range c.items {
		drafts = append(drafts, c.h.toDraft(rec))
	}
	return drafts
}

func (c *Collection[T, D, P]) begin() {
	c.mu.Lock()
	c.lastErr = nil
	if !c.guest {
		c.loading = true
	}
	c.mu.Unlock()
}

func (c *Collection[T, D, P]) fail(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.loading = false
	c.mu.Unlock()
}

// localBackend persists the list as one JSON file per content type.
// Ids are synthesized locally and replaced server-side on sync.
type localBackend[T, D, P any] struct {
	files *localstore.Store
	h     hooks[T, D, P]
}

func (b *localBackend[T, D, P]) load() ([]T, error) {
	var list []T
	if err := b.files.Load(b.h.key, &list); err != nil {
		if errors.Is(err, localstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (b *localBackend[T, D, P]) List(_ context.Context) ([]T, error) {
	return b.load()
}

func (b *localBackend[T, D, P]) Create(_ context.Context, draft D) (T, error) {
	var zero T
	list, err := b.load()
	if err != nil {
		return zero, err
	}

	rec := b.h.fromDraft(draft, localID(), time.Now().UTC())
	list = append([]T{rec}, list...)
	if err := b.files.Save(b.h.key, list); err != nil {
		return zero, err
	}
	return rec, nil
}

func (b *localBackend[T, D, P]) Update(_ context.Context, id string, patch P) (T, error) {
	var zero T
	list, err := b.load()
	if err != nil {
		return zero, err
	}

	for i := range list {
		if b.h.id(list[i]) != id {
			continue
		}
		b.h.applyPatch(&list[i], patch, time.Now().UTC())
		if err := b.files.Save(b.h.key, list); err != nil {
			return zero, err
		}
		return list[i], nil
	}
	return zero, ErrNotFound
}

func (b *localBackend[T, D, P]) Delete(_ context.Context, id string) error {
	list, err := b.load()
	if err != nil {
		return err
	}

	for i := range list {
		if b.h.id(list[i]) == id {
			list = append(list[:i], list[i+1:]...)
			return b.files.Save(b.h.key, list)
		}
	}
	return ErrNotFound
}

func (b *localBackend[T, D, P]) Clear() error {
	return b.files.Save(b.h.key, []T{})
}

// remoteBackend delegates every call to the REST client.
type remoteBackend[T, D, P any] struct {
	list   func(ctx context.Context) ([]T, error)
	create func(ctx context.Context, draft D) (T, error)
	update func(ctx context.Context, id string, patch P) (T, error)
	remove func(ctx context.Context, id string) error
}

func (b *remoteBackend[T, D, P]) List(ctx context.Context) ([]T, error) {
	return b.list(ctx)
}

func (b *remoteBackend[T, D, P]) Create(ctx context.Context, draft D) (T, error) {
	return b.create(ctx, draft)
}

func (b *remoteBackend[T, D, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	return b.update(ctx, id, patch)
}

func (b *remoteBackend[T, D, P]) Delete(ctx context.Context, id string) error {
	return b.remove(ctx, id)
}

func (b *remoteBackend[T, D, P]) Clear() error {
	return nil
}

// localID builds a non-cryptographic guest identifier: creation time
// in unix milliseconds plus a random suffix.
func localID() string {
	return fmt.Sprintf("%d-%06x", time.Now().UnixMilli(), rand.IntN(1<<24))
}
