package store

import (
	"time"

	"github.com/trovehq/trove/pkg/client"
	"github.com/trovehq/trove/pkg/localstore"
)

// DefaultTaskPriority mirrors the server-side default for guest tasks.
const DefaultTaskPriority = "medium"

// Tasks is the dual-mode task collection.
type Tasks = Collection[client.Task, client.TaskDraft, client.TaskPatch]

func NewTasks(files *localstore.Store, cl *client.Client, authenticated bool) (*Tasks, error) {
	h := hooks[client.Task, client.TaskDraft, client.TaskPatch]{
		key: localstore.KeyTasks,
		id:  func(t client.Task) string { return t.ID },
		fromDraft: func(d client.TaskDraft, id string, now time.Time) client.Task {
			priority := d.Priority
			if priority == "" {
				priority = DefaultTaskPriority
			}
			return client.Task{
				ID:          id,
				Title:       d.Title,
				Description: d.Description,
				Completed:   d.Completed,
				Priority:    priority,
				DueDate:     d.DueDate,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
		},
		toDraft: func(t client.Task) client.TaskDraft {
			created, updated := t.CreatedAt, t.UpdatedAt
			return client.TaskDraft{
				Title:       t.Title,
				Description: t.Description,
				Completed:   t.Completed,
				Priority:    t.Priority,
				DueDate:     t.DueDate,
				CreatedAt:   &created,
				UpdatedAt:   &updated,
			}
		},
		applyPatch: func(t *client.Task, p client.TaskPatch, now time.Time) {
			if p.Title != nil {
				t.Title = *p.Title
			}
			if p.Description != nil {
				t.Description = *p.Description
			}
			if p.Completed != nil {
				t.Completed = *p.Completed
			}
			if p.Priority != nil {
				t.Priority = *p.Priority
			}
			if p.DueDate != nil {
				t.DueDate = p.DueDate
			}
			t.UpdatedAt = now
		},
	}

	var backend Backend[client.Task, client.TaskDraft, client.TaskPatch]
	if authenticated {
		backend = &remoteBackend[client.Task, client.TaskDraft, client.TaskPatch]{
			list:   cl.ListTasks,
			create: cl.CreateTask,
			update: cl.UpdateTask,
			remove: cl.DeleteTask,
		}
	} else {
		backend = &localBackend[client.Task, client.TaskDraft, client.TaskPatch]{files: files, h: h}
	}
	return newCollection(h, backend, !authenticated)
}
