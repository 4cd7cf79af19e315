package notes

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/trovehq/trove/internal/ownership"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("note not found")
	ErrMissingFields = errors.New("title and content are required")
	ErrEmptyImport   = errors.New("no notes to import")
)

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
	Pinned  bool   `json:"pinned"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Color   *string `json:"color"`
	Pinned  *bool   `json:"pinned"`
}

// ImportNoteRequest is one record of a bulk import. The id and
// timestamps are optional; a colliding id causes the record to be
// skipped, a missing one is assigned server-side.
type ImportNoteRequest struct {
	ID        *uuid.UUID `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Color     string     `json:"color"`
	Pinned    bool       `json:"pinned"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// NoteService handles owner-scoped note CRUD. Every method takes the
// owner id first and every query passes through ownership.ForOwner.
type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// List returns the owner's notes, pinned first, then newest first.
func (s *NoteService) List(ownerID uuid.UUID) ([]Note, error) {
	var list []Note
	err := s.db.Scopes(ownership.ForOwner(ownerID)).
		Order("pinned DESC, created_at DESC").
		Find(&list).Error
	return list, err
}

func (s *NoteService) Get(ownerID, noteID uuid.UUID) (*Note, error) {
	var note Note
	if err := s.db.Scopes(ownership.ForOwner(ownerID)).Where("id = ?", noteID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) Create(ownerID uuid.UUID, req *CreateNoteRequest) (*Note, error) {
	if req.Title == "" || req.Content == "" {
		return nil, ErrMissingFields
	}

	note := &Note{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
		Pinned:  req.Pinned,
	}
	if note.Color == "" {
		note.Color = DefaultColor
	}

	if err := s.db.Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

// Update merges only the supplied fields. Owner and id never change.
func (s *NoteService) Update(ownerID, noteID uuid.UUID, req *UpdateNoteRequest) (*Note, error) {
	note, err := s.Get(ownerID, noteID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Color != nil {
		note.Color = *req.Color
	}
	if req.Pinned != nil {
		note.Pinned = *req.Pinned
	}

	if err := s.db.Save(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes the note permanently. A second delete of the same id
// fails with ErrNotFound.
func (s *NoteService) Delete(ownerID, noteID uuid.UUID) error {
	note, err := s.Get(ownerID, noteID)
	if err != nil {
		return err
	}
	return s.db.Delete(note).Error
}

// BulkImport inserts the given records in one batch, stamping the
// owner id and applying the same defaults as Create. Records whose id
// collides with an existing row are skipped. Returns the count inserted.
func (s *NoteService) BulkImport(ownerID uuid.UUID, reqs []ImportNoteRequest) (int, error) {
	if len(reqs) == 0 {
		return 0, ErrEmptyImport
	}

	var ids []uuid.UUID
	for _, r := range reqs {
		if r.ID != nil {
			ids = append(ids, *r.ID)
		}
	}
	taken := make(map[uuid.UUID]bool)
	if len(ids) > 0 {
		var existing []uuid.UUID
		if err := s.db.Model(&Note{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
			return 0, err
		}
		for _, id := range existing {
			taken[id] = true
		}
	}

	batch := make([]Note, 0, len(reqs))
	for _, r := range reqs {
		if r.Title == "" || r.Content == "" {
			return 0, ErrMissingFields
		}
		if r.ID != nil && taken[*r.ID] {
			continue
		}

		note := Note{
			ID:      uuid.New(),
			OwnerID: ownerID,
			Title:   r.Title,
			Content: r.Content,
			Color:   r.Color,
			Pinned:  r.Pinned,
		}
		if r.ID != nil {
			note.ID = *r.ID
		}
		if note.Color == "" {
			note.Color = DefaultColor
		}
		if r.CreatedAt != nil {
			note.CreatedAt = *r.CreatedAt
		}
		if r.UpdatedAt != nil {
			note.UpdatedAt = *r.UpdatedAt
		}
		batch = append(batch, note)
	}

	if len(batch) == 0 {
		return 0, nil
	}
	if err := s.db.Create(&batch).Error; err != nil {
		return 0, err
	}
	return len(batch), nil
}
