package handler

import (
	"github.com/gofiber/fiber/v3"

	"filmorate-service/internal/models"
	"filmorate-service/internal/service"
)

// FilmHandler handles HTTP requests for films, likes and film queries.
type FilmHandler struct {
	films *service.FilmService
}

// NewFilmHandler creates a new FilmHandler.
func NewFilmHandler(films *service.FilmService) *FilmHandler {
	return &FilmHandler{films: films}
}

// Health returns service health status.
func (h *FilmHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "filmorate-service",
	})
}

// ListFilms returns all films.
func (h *FilmHandler) ListFilms(c fiber.Ctx) error {
	films, err := h.films.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(films)
}

// GetFilm returns a film by id.
func (h *FilmHandler) GetFilm(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	film, err := h.films.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(film)
}

// CreateFilm creates a new film.
func (h *FilmHandler) CreateFilm(c fiber.Ctx) error {
	var film models.Film
	if err := c.Bind().JSON(&film); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	created, err := h.films.Create(film)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateFilm rewrites a film identified by the body id.
func (h *FilmHandler) UpdateFilm(c fiber.Ctx) error {
	var film models.Film
	if err := c.Bind().JSON(&film); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	updated, err := h.films.Update(film)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteFilm removes a film.
func (h *FilmHandler) DeleteFilm(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.films.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Like records a like from a user.
func (h *FilmHandler) Like(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	film, err := h.films.Like(c.Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(film)
}

// Unlike removes a user's like.
func (h *FilmHandler) Unlike(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	film, err := h.films.Unlike(c.Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(film)
}

// Popular returns the most liked films, optionally filtered by genre
// and release year.
func (h *FilmHandler) Popular(c fiber.Ctx) error {
	count := fiber.Query(c, "count", 10)
	genreID := fiber.Query(c, "genreId", 0)
	year := fiber.Query(c, "year", 0)

	films, err := h.films.Popular(c.Context(), count, genreID, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(films)
}

// Common returns films liked by both users.
func (h *FilmHandler) Common(c fiber.Ctx) error {
	userID := fiber.Query(c, "userId", int64(0))
	friendID := fiber.Query(c, "friendId", int64(0))
	films, err := h.films.Common(userID, friendID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(films)
}

// ByDirector returns a director's films sorted by year or likes.
func (h *FilmHandler) ByDirector(c fiber.Ctx) error {
	directorID, err := pathID(c, "directorId")
	if err != nil {
		return respondError(c, err)
	}
	films, err := h.films.ByDirector(directorID, c.Query("sortBy", "year"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(films)
}

// Search finds films by title and/or director name substring.
func (h *FilmHandler) Search(c fiber.Ctx) error {
	films, err := h.films.Search(c.Query("query"), c.Query("by"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(films)
}
