package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"filmorate-service/internal/service"
)

// ReferenceHandler handles HTTP requests for the fixed genre and mpa
// enumerations.
type ReferenceHandler struct {
	genres *service.GenreService
	mpa    *service.MpaService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(genres *service.GenreService, mpa *service.MpaService) *ReferenceHandler {
	return &ReferenceHandler{genres: genres, mpa: mpa}
}

// ListGenres returns all genres.
func (h *ReferenceHandler) ListGenres(c fiber.Ctx) error {
	genres, err := h.genres.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(genres)
}

// GetGenre returns a genre by id.
func (h *ReferenceHandler) GetGenre(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid genre ID"})
	}
	genre, err := h.genres.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(genre)
}

// ListMpa returns all rating classifications.
func (h *ReferenceHandler) ListMpa(c fiber.Ctx) error {
	ratings, err := h.mpa.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ratings)
}

// GetMpa returns a rating classification by id.
func (h *ReferenceHandler) GetMpa(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid mpa ID"})
	}
	mpa, err := h.mpa.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(mpa)
}
