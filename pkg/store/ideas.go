package store

import (
	"context"
	"time"

	"github.com/trovehq/trove/pkg/client"
	"github.com/trovehq/trove/pkg/localstore"
)

// DefaultIdeaCategory mirrors the server-side default for guest ideas.
const DefaultIdeaCategory = "general"

// Ideas is the dual-mode idea collection.
type Ideas = Collection[client.Idea, client.IdeaDraft, client.IdeaPatch]

func NewIdeas(files *localstore.Store, cl *client.Client, authenticated bool) (*Ideas, error) {
	h := hooks[client.Idea, client.IdeaDraft, client.IdeaPatch]{
		key: localstore.KeyIdeas,
		id:  func(i client.Idea) string { return i.ID },
		fromDraft: func(d client.IdeaDraft, id string, now time.Time) client.Idea {
			category := d.Category
			if category == "" {
				category = DefaultIdeaCategory
			}
			tags := d.Tags
			if tags == nil {
				tags = []string{}
			}
			return client.Idea{
				ID:          id,
				Title:       d.Title,
				Description: d.Description,
				Category:    category,
				Tags:        tags,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
		},
		toDraft: func(i client.Idea) client.IdeaDraft {
			created, updated := i.CreatedAt, i.UpdatedAt
			return client.IdeaDraft{
				Title:       i.Title,
				Description: i.Description,
				Category:    i.Category,
				Tags:        i.Tags,
				CreatedAt:   &created,
				UpdatedAt:   &updated,
			}
		},
		applyPatch: func(i *client.Idea, p client.IdeaPatch, now time.Time) {
			if p.Title != nil {
				i.Title = *p.Title
			}
			if p.Description != nil {
				i.Description = *p.Description
			}
			if p.Category != nil {
				i.Category = *p.Category
			}
			if p.Tags != nil {
				i.Tags = *p.Tags
			}
			i.UpdatedAt = now
		},
	}

	var backend Backend[client.Idea, client.IdeaDraft, client.IdeaPatch]
	if authenticated {
		backend = &remoteBackend[client.Idea, client.IdeaDraft, client.IdeaPatch]{
			list:   func(ctx context.Context) ([]client.Idea, error) { return cl.ListIdeas(ctx, "") },
			create: cl.CreateIdea,
			update: cl.UpdateIdea,
			remove: cl.DeleteIdea,
		}
	} else {
		backend = &localBackend[client.Idea, client.IdeaDraft, client.IdeaPatch]{files: files, h: h}
	}
	return newCollection(h, backend, !authenticated)
}
