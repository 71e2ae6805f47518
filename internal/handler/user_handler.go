package handler

import (
	"github.com/gofiber/fiber/v3"

	"filmorate-service/internal/models"
	"filmorate-service/internal/service"
)

// UserHandler handles HTTP requests for users, friendships, feeds and
// recommendations.
type UserHandler struct {
	users *service.UserService
	films *service.FilmService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, films *service.FilmService) *UserHandler {
	return &UserHandler{users: users, films: films}
}

// ListUsers returns all users.
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	users, err := h.users.FindAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetUser returns a user by id.
func (h *UserHandler) GetUser(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.users.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// CreateUser creates a new user.
func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var user models.User
	if err := c.Bind().JSON(&user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	created, err := h.users.Create(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateUser rewrites a user identified by the body id.
func (h *UserHandler) UpdateUser(c fiber.Ctx) error {
	var user models.User
	if err := c.Bind().JSON(&user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	updated, err := h.users.Update(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteUser removes a user and all their social traces.
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.users.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddFriend runs the friend-request flow between two users.
func (h *UserHandler) AddFriend(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.users.AddFriend(id, friendID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RemoveFriend deletes the directed friendship edge.
func (h *UserHandler) RemoveFriend(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.users.RemoveFriend(id, friendID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// ListFriends returns the confirmed friends of a user.
func (h *UserHandler) ListFriends(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	friends, err := h.users.Friends(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(friends)
}

// CommonFriends returns the friends two users share.
func (h *UserHandler) CommonFriends(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	otherID, err := pathID(c, "otherId")
	if err != nil {
		return respondError(c, err)
	}
	common, err := h.users.CommonFriends(id, otherID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(common)
}

// Feed returns the activity feed of a user.
func (h *UserHandler) Feed(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	events, err := h.users.Feed(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(events)
}

// Recommendations returns personalized film recommendations.
func (h *UserHandler) Recommendations(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	films, err := h.films.Recommendations(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(films)
}
