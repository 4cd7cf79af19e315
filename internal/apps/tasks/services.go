package tasks

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/trovehq/trove/internal/ownership"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("task not found")
	ErrMissingFields   = errors.New("title is required")
	ErrInvalidPriority = errors.New("priority must be low, medium or high")
	ErrEmptyImport     = errors.New("no tasks to import")
)

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// ImportTaskRequest is one record of a bulk import.
type ImportTaskRequest struct {
	ID          *uuid.UUID `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// TaskService handles owner-scoped task CRUD.
type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// List returns the owner's tasks: incomplete first, then soonest due
// (tasks without a due date last), then newest first.
func (s *TaskService) List(ownerID uuid.UUID) ([]Task, error) {
	var list []Task
	err := s.db.Scopes(ownership.ForOwner(ownerID)).
		Order("completed ASC, due_date ASC NULLS LAST, created_at DESC").
		Find(&list).Error
	return list, err
}

func (s *TaskService) Get(ownerID, taskID uuid.UUID) (*Task, error) {
	var task Task
	if err := s.db.Scopes(ownership.ForOwner(ownerID)).Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Create(ownerID uuid.UUID, req *CreateTaskRequest) (*Task, error) {
	if req.Title == "" {
		return nil, ErrMissingFields
	}
	if req.Priority != "" && !validPriority(req.Priority) {
		return nil, ErrInvalidPriority
	}

	task := &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}

	if err := s.db.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// Update merges only the supplied fields. Owner and id never change.
func (s *TaskService) Update(ownerID, taskID uuid.UUID, req *UpdateTaskRequest) (*Task, error) {
	task, err := s.Get(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task permanently; a second delete fails.
func (s *TaskService) Delete(ownerID, taskID uuid.UUID) error {
	task, err := s.Get(ownerID, taskID)
	if err != nil {
		return err
	}
	return s.db.Delete(task).Error
}

// BulkImport inserts the given records in one batch, stamping the
// owner id, applying Create defaults and skipping colliding ids.
func (s *TaskService) BulkImport(ownerID uuid.UUID, reqs []ImportTaskRequest) (int, error) {
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
		if err := s.db.Model(&Task{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
			return 0, err
		}
		for _, id := range existing {
			taken[id] = true
		}
	}

	batch := make([]Task, 0, len(reqs))
	for _, r := range reqs {
		if r.Title == "" {
			return 0, ErrMissingFields
		}
		if r.Priority != "" && !validPriority(r.Priority) {
			return 0, ErrInvalidPriority
		}
		if r.ID != nil && taken[*r.ID] {
			continue
		}

		task := Task{
			ID:          uuid.New(),
			OwnerID:     ownerID,
			Title:       r.Title,
			Description: r.Description,
			Completed:   r.Completed,
			Priority:    r.Priority,
			DueDate:     r.DueDate,
		}
		if r.ID != nil {
			task.ID = *r.ID
		}
		if task.Priority == "" {
			task.Priority = PriorityMedium
		}
		if r.CreatedAt != nil {
			task.CreatedAt = *r.CreatedAt
		}
		if r.UpdatedAt != nil {
			task.UpdatedAt = *r.UpdatedAt
		}
		batch = append(batch, task)
	}

	if len(batch) == 0 {
		return 0, nil
	}
	if err := s.db.Create(&batch).Error; err != nil {
		return 0, err
	}
	return len(batch), nil
}
