package handler

import (
	"github.com/gofiber/fiber/v3"

	"filmorate-service/internal/models"
	"filmorate-service/internal/service"
)

// ReviewHandler handles HTTP requests for reviews and reactions.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// ListReviews returns the most useful reviews, per film when filmId is
// given.
func (h *ReviewHandler) ListReviews(c fiber.Ctx) error {
	filmID := fiber.Query(c, "filmId", int64(0))
	count := fiber.Query(c, "count", 10)
	reviews, err := h.reviews.FindByParameter(filmID, count)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

// GetReview returns a review by id.
func (h *ReviewHandler) GetReview(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	review, err := h.reviews.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// CreateReview creates a new review.
func (h *ReviewHandler) CreateReview(c fiber.Ctx) error {
	var review models.Review
	if err := c.Bind().JSON(&review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	created, err := h.reviews.Create(review)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateReview rewrites the content and verdict of a review.
func (h *ReviewHandler) UpdateReview(c fiber.Ctx) error {
	var review models.Review
	if err := c.Bind().JSON(&review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	updated, err := h.reviews.Update(review)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteReview removes a review and its reactions.
func (h *ReviewHandler) DeleteReview(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.reviews.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikeReview sets a +1 reaction.
func (h *ReviewHandler) LikeReview(c fiber.Ctx) error {
	return h.react(c, h.reviews.AddLike)
}

// DislikeReview sets a -1 reaction.
func (h *ReviewHandler) DislikeReview(c fiber.Ctx) error {
	return h.react(c, h.reviews.AddDislike)
}

// RemoveReaction clears the user's reaction.
func (h *ReviewHandler) RemoveReaction(c fiber.Ctx) error {
	return h.react(c, h.reviews.RemoveReaction)
}

func (h *ReviewHandler) react(c fiber.Ctx, op func(reviewID, userID int64) (*models.Review, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	review, err := op(id, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}
