package store

import (
	"time"

	"github.com/trovehq/trove/pkg/client"
	"github.com/trovehq/trove/pkg/localstore"
)

// DefaultNoteColor mirrors the server-side default for guest notes.
const DefaultNoteColor = "#ffd966"

// Notes is the dual-mode note collection.
type Notes = Collection[client.Note, client.NoteDraft, client.NotePatch]

// NewNotes builds the note collection. With authenticated=false the
// local file backend is used and the list is hydrated from disk.
func NewNotes(files *localstore.Store, cl *client.Client, authenticated bool) (*Notes, error) {
	h := hooks[client.Note, client.NoteDraft, client.NotePatch]{
		key: localstore.KeyNotes,
		id:  func(n client.Note) string { return n.ID },
		fromDraft: func(d client.NoteDraft, id string, now time.Time) client.Note {
			color := d.Color
			if color == "" {
				color = DefaultNoteColor
			}
			return client.Note{
				ID:        id,
				Title:     d.Title,
				Content:   d.Content,
				Color:     color,
				Pinned:    d.Pinned,
				CreatedAt: now,
				UpdatedAt: now,
			}
		},
		toDraft: func(n client.Note) client.NoteDraft {
			created, updated := n.CreatedAt, n.UpdatedAt
			return client.NoteDraft{
				Title:     n.Title,
				Content:   n.Content,
				Color:     n.Color,
				Pinned:    n.Pinned,
				CreatedAt: &created,
				UpdatedAt: &updated,
			}
		},
		applyPatch: func(n *client.Note, p client.NotePatch, now time.Time) {
			if p.Title != nil {
				n.Title = *p.Title
			}
			if p.Content != nil {
				n.Content = *p.Content
			}
			if p.Color != nil {
				n.Color = *p.Color
			}
			if p.Pinned != nil {
				n.Pinned = *p.Pinned
			}
			n.UpdatedAt = now
		},
	}

	var backend Backend[client.Note, client.NoteDraft, client.NotePatch]
	if authenticated {
		backend = &remoteBackend[client.Note, client.NoteDraft, client.NotePatch]{
			list:   cl.ListNotes,
			create: cl.CreateNote,
			update: cl.UpdateNote,
			remove: cl.DeleteNote,
		}
	} else {
		backend = &localBackend[client.Note, client.NoteDraft, client.NotePatch]{files: files, h: h}
	}
	return newCollection(h, backend, !authenticated)
}
