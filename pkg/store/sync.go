package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/trovehq/trove/pkg/client"
)

// Syncer performs the one-time transfer of guest-held records into the
// server at registration time.
type Syncer struct {
	Client *client.Client
	Notes  *Notes
	Tasks  *Tasks
	Ideas  *Ideas
}

// SyncResult reports how many records each bulk import inserted.
type SyncResult struct {
	NotesImported int
	TasksImported int
	IdeasImported int
}

// RegisterAndSync registers the account, then bulk-imports every
// non-empty local list and clears it on per-type success.
//
// Registration is not rolled back when an import fails, and a failed
// type keeps its local records; the combined import errors come back
// alongside the successful counts. There is no retry and no
// checkpoint between the three imports.
func (s *Syncer) RegisterAndSync(ctx context.Context, email, password, name string) (*client.AuthResult, *SyncResult, error) {
	auth, err := s.Client.Register(ctx, email, password, name)
	if err != nil {
		return nil, nil, err
	}

	res := &SyncResult{}
	var importErrs []error

	if drafts := s.Notes.ExportForSync(); len(drafts) > 0 {
		count, err := s.Client.SyncNotes(ctx, drafts)
		if err != nil {
			importErrs = append(importErrs, fmt.Errorf("notes import: %w", err))
		} else {
			res.NotesImported = count
			if err := s.Notes.Clear(); err != nil {
				importErrs = append(importErrs, fmt.Errorf("notes clear: %w", err))
			}
		}
	}

	if drafts := s.Tasks.ExportForSync(); len(drafts) > 0 {
		count, err := s.Client.SyncTasks(ctx, drafts)
		if err != nil {
			importErrs = append(importErrs, fmt.Errorf("tasks import: %w", err))
		} else {
			res.TasksImported = count
			if err := s.Tasks.Clear(); err != nil {
				importErrs = append(importErrs, fmt.Errorf("tasks clear: %w", err))
			}
		}
	}

	if drafts := s.Ideas.ExportForSync(); len(drafts) > 0 {
		count, err := s.Client.SyncIdeas(ctx, drafts)
		if err != nil {
			importErrs = append(importErrs, fmt.Errorf("ideas import: %w", err))
		} else {
			res.IdeasImported = count
			if err := s.Ideas.Clear(); err != nil {
				importErrs = append(importErrs, fmt.Errorf("ideas clear: %w", err))
			}
		}
	}

	return auth, res, errors.Join(importErrs...)
}
