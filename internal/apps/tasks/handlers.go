package tasks

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trovehq/trove/internal/dto"
	"github.com/trovehq/trove/internal/ownership"
)

type TaskHandler struct {
	service *TaskService
}

func NewTaskHandler(service *TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	list, err := h.service.List(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch tasks"})
	}

	return c.JSON(fiber.Map{"tasks": list})
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: ErrNotFound.Error()})
	}

	task, err := h.service.Get(ownerID, taskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch task"})
	}

	return c.JSON(fiber.Map{"task": task})
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	task, err := h.service.Create(ownerID, &req)
	if err != nil {
		if errors.Is(err, ErrMissingFields) || errors.Is(err, ErrInvalidPriority) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to create task"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"task": task})
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: ErrNotFound.Error()})
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	task, err := h.service.Update(ownerID, taskID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidPriority):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to update task"})
	}

	return c.JSON(fiber.Map{"task": task})
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: ErrNotFound.Error()})
	}

	if err := h.service.Delete(ownerID, taskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to delete task"})
	}

	return c.JSON(dto.MessageResponse{Message: "Task deleted"})
}

func (h *TaskHandler) Sync(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var reqs []ImportTaskRequest
	if err := c.BodyParser(&reqs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	count, err := h.service.BulkImport(ownerID, reqs)
	if err != nil {
		if errors.Is(err, ErrEmptyImport) || errors.Is(err, ErrMissingFields) || errors.Is(err, ErrInvalidPriority) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to import tasks"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CountResponse{Count: count})
}
