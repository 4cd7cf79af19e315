package ideas

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trovehq/trove/internal/dto"
	"github.com/trovehq/trove/internal/ownership"
)

type IdeaHandler struct {
	service *IdeaService
}

func NewIdeaHandler(service *IdeaService) *IdeaHandler {
	return &IdeaHandler{service: service}
}

func (h *IdeaHandler) List(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	list, err := h.service.List(ownerID, c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch ideas"})
	}

	return c.JSON(fiber.Map{"ideas": list})
}

func (h *IdeaHandler) Search(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	list, err := h.service.Search(ownerID, c.Query("query"))
	if err != nil {
		if errors.Is(err, ErrMissingQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to search ideas"})
	}

	return c.JSON(fiber.Map{"ideas": list})
}

func (h *IdeaHandler) Get(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	ideaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: ErrNotFound.Error()})
	}

	idea, err := h.service.Get(ownerID, ideaID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch idea"})
	}

	return c.JSON(fiber.Map{"idea": idea})
}

func (h *IdeaHandler) Create(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req CreateIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	idea, err := h.service.Create(ownerID, &req)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to create idea"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"idea": idea})
}

func (h *IdeaHandler) Update(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	ideaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: ErrNotFound.Error()})
	}

	var req UpdateIdeaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	idea, err := h.service.Update(ownerID, ideaID, &req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to update idea"})
	}

	return c.JSON(fiber.Map{"idea": idea})
}

func (h *IdeaHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	ideaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: ErrNotFound.Error()})
	}

	if err := h.service.Delete(ownerID, ideaID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to delete idea"})
	}

	return c.JSON(dto.MessageResponse{Message: "Idea deleted"})
}

func (h *IdeaHandler) Sync(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var reqs []ImportIdeaRequest
	if err := c.BodyParser(&reqs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	count, err := h.service.BulkImport(ownerID, reqs)
	if err != nil {
		if errors.Is(err, ErrEmptyImport) || errors.Is(err, ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to import ideas"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CountResponse{Count: count})
}
