package ideas

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/trovehq/trove/internal/ownership"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("idea not found")
	ErrMissingFields = errors.New("title and description are required")
	ErrMissingQuery  = errors.New("search query is required")
	ErrEmptyImport   = errors.New("no ideas to import")
)

type CreateIdeaRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

type UpdateIdeaRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
}

// ImportIdeaRequest is one record of a bulk import.
type ImportIdeaRequest struct {
	ID          *uuid.UUID `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// IdeaService handles owner-scoped idea CRUD and search.
type IdeaService struct {
	db *gorm.DB
}

func NewIdeaService(db *gorm.DB) *IdeaService {
	return &IdeaService{db: db}
}

// List returns the owner's ideas newest first, optionally filtered by
// category.
func (s *IdeaService) List(ownerID uuid.UUID, category string) ([]Idea, error) {
	query := s.db.Scopes(ownership.ForOwner(ownerID)).Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var list []Idea
	err := query.Find(&list).Error
	return list, err
}

func (s *IdeaService) Get(ownerID, ideaID uuid.UUID) (*Idea, error) {
	var idea Idea
	if err := s.db.Scopes(ownership.ForOwner(ownerID)).Where("id = ?", ideaID).First(&idea).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &idea, nil
}

func (s *IdeaService) Create(ownerID uuid.UUID, req *CreateIdeaRequest) (*Idea, error) {
	if req.Title == "" || req.Description == "" {
		return nil, ErrMissingFields
	}

	idea := &Idea{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        tagsOrEmpty(req.Tags),
	}
	if idea.Category == "" {
		idea.Category = DefaultCategory
	}

	if err := s.db.Create(idea).Error; err != nil {
		return nil, err
	}
	return idea, nil
}

// Update merges only the supplied fields. Owner and id never change.
func (s *IdeaService) Update(ownerID, ideaID uuid.UUID, req *UpdateIdeaRequest) (*Idea, error) {
	idea, err := s.Get(ownerID, ideaID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		idea.Title = *req.Title
	}
	if req.Description != nil {
		idea.Description = *req.Description
	}
	if req.Category != nil {
		idea.Category = *req.Category
	}
	if req.Tags != nil {
		idea.Tags = tagsOrEmpty(*req.Tags)
	}

	if err := s.db.Save(idea).Error; err != nil {
		return nil, err
	}
	return idea, nil
}

// Delete removes the idea permanently; a second delete fails.
func (s *IdeaService) Delete(ownerID, ideaID uuid.UUID) error {
	idea, err := s.Get(ownerID, ideaID)
	if err != nil {
		return err
	}
	return s.db.Delete(idea).Error
}

// Search matches the query case-insensitively as a substring of title
// or description, or as an exact member of the tag list. Results come
// back newest first. Tag matching happens in Go so it behaves the same
// on every SQL dialect.
func (s *IdeaService) Search(ownerID uuid.UUID, query string) ([]Idea, error) {
	if query == "" {
		return nil, ErrMissingQuery
	}

	all, err := s.List(ownerID, "")
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]Idea, 0)
	for _, idea := range all {
		if ideaMatches(&idea, needle) {
			matches = append(matches, idea)
		}
	}
	return matches, nil
}

func ideaMatches(idea *Idea, needle string) bool {
	if strings.Contains(strings.ToLower(idea.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(idea.Description), needle) {
		return true
	}
	for _, tag := range idea.Tags {
		if strings.EqualFold(tag, needle) {
			return true
		}
	}
	return false
}

// BulkImport inserts the given records in one batch, stamping the
// owner id, applying Create defaults and skipping colliding ids.
func (s *IdeaService) BulkImport(ownerID uuid.UUID, reqs []ImportIdeaRequest) (int, error) {
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
		if err := s.db.Model(&Idea{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
			return 0, err
		}
		for _, id := range existing {
			taken[id] = true
		}
	}

	batch := make([]Idea, 0, len(reqs))
	for _, r := range reqs {
		if r.Title == "" || r.Description == "" {
			return 0, ErrMissingFields
		}
		if r.ID != nil && taken[*r.ID] {
			continue
		}

		idea := Idea{
			ID:          uuid.New(),
			OwnerID:     ownerID,
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			Tags:        tagsOrEmpty(r.Tags),
		}
		if r.ID != nil {
			idea.ID = *r.ID
		}
		if idea.Category == "" {
			idea.Category = DefaultCategory
		}
		if r.CreatedAt != nil {
			idea.CreatedAt = *r.CreatedAt
		}
		if r.UpdatedAt != nil {
			idea.UpdatedAt = *r.UpdatedAt
		}
		batch = append(batch, idea)
	}

	if len(batch) == 0 {
		return 0, nil
	}
	if err := s.db.Create(&batch).Error; err != nil {
		return 0, err
	}
	return len(batch), nil
}

func tagsOrEmpty(tags []string) datatypes.JSONSlice[string] {
	if tags == nil {
		tags = []string{}
	}
	return datatypes.NewJSONSlice(tags)
}
