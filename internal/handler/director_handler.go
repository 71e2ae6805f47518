package handler

import (
	"github.com/gofiber/fiber/v3"

	"filmorate-service/internal/models"
	"filmorate-service/internal/service"
)

// DirectorHandler handles HTTP requests for directors.
type DirectorHandler struct {
	directors *service.DirectorService
}

// NewDirectorHandler creates a new DirectorHandler.
func NewDirectorHandler(directors *service.DirectorService) *DirectorHandler {
	return &DirectorHandler{directors: directors}
}

// ListDirectors returns all directors.
func (h *DirectorHandler) ListDirectors(c fiber.Ctx) error {
	directors, err := h.directors.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(directors)
}

// GetDirector returns a director by id.
func (h *DirectorHandler) GetDirector(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	director, err := h.directors.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(director)
}

// CreateDirector creates a new director.
func (h *DirectorHandler) CreateDirector(c fiber.Ctx) error {
	var director models.Director
	if err := c.Bind().JSON(&director); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	created, err := h.directors.Create(director)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateDirector renames a director identified by the body id.
func (h *DirectorHandler) UpdateDirector(c fiber.Ctx) error {
	var director models.Director
	if err := c.Bind().JSON(&director); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	updated, err := h.directors.Update(director)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteDirector removes a director.
func (h *DirectorHandler) DeleteDirector(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.directors.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
