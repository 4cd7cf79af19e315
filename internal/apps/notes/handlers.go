package notes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trovehq/trove/internal/dto"
	"github.com/trovehq/trove/internal/ownership"
)

type NoteHandler struct {
	service *NoteService
}

func NewNoteHandler(service *NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	list, err := h.service.List(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch notes"})
	}

	return c.JSON(fiber.Map{"notes": list})
}

func (h *NoteHandler) Get(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: ErrNotFound.Error()})
	}

	note, err := h.service.Get(ownerID, noteID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to fetch note"})
	}

	return c.JSON(fiber.Map{"note": note})
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var req CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	note, err := h.service.Create(ownerID, &req)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to create note"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"note": note})
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: ErrNotFound.Error()})
	}

	var req UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	note, err := h.service.Update(ownerID, noteID, &req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to update note"})
	}

	return c.JSON(fiber.Map{"note": note})
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: ErrNotFound.Error()})
	}

	if err := h.service.Delete(ownerID, noteID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to delete note"})
	}

	return c.JSON(dto.MessageResponse{Message: "Note deleted"})
}

func (h *NoteHandler) Sync(c *fiber.Ctx) error {
	ownerID, err := ownership.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var reqs []ImportNoteRequest
	if err := c.BodyParser(&reqs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	count, err := h.service.BulkImport(ownerID, reqs)
	if err != nil {
		if errors.Is(err, ErrEmptyImport) || errors.Is(err, ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Failed to import notes"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CountResponse{Count: count})
}
