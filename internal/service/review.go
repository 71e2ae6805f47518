package service

import (
	"log/slog"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
	"filmorate-service/internal/storage"
)

// ReviewService orchestrates reviews and their like/dislike reactions.
type ReviewService struct {
	reviews storage.ReviewStorage
	users   storage.UserStorage
	films   storage.FilmStorage
	feed    *FeedService
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews storage.ReviewStorage, users storage.UserStorage, films storage.FilmStorage, feed *FeedService) *ReviewService {
	return &ReviewService{reviews: reviews, users: users, films: films, feed: feed}
}

// FindByParameter returns the most useful reviews, for one film when
// filmID is set, across all films otherwise.
func (s *ReviewService) FindByParameter(filmID int64, count int) ([]models.Review, error) {
	if count <= 0 {
		count = 10
	}
	if filmID == 0 {
		return s.reviews.FindLimited(count)
	}
	return s.reviews.FindByFilm(filmID, count)
}

// FindByID returns a review by id.
func (s *ReviewService) FindByID(id int64) (*models.Review, error) {
	return s.reviews.FindByID(id)
}

// Create validates a review, checks the film and author exist, stores
// it and emits a feed event for the author.
func (s *ReviewService) Create(review models.Review) (*models.Review, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.films.FindByID(review.FilmID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(review.UserID); err != nil {
		return nil, err
	}
	created, err := s.reviews.Create(review)
	if err != nil {
		return nil, err
	}
	s.record(created.UserID, created.ReviewID, models.OperationAdd)
	return created, nil
}

// Update rewrites the review content and verdict. The feed event is
// attributed to the original author.
func (s *ReviewService) Update(review models.Review) (*models.Review, error) {
	if review.ReviewID == 0 {
		return nil, apperr.Validation("review id must be set")
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.reviews.FindByID(review.ReviewID)
	if err != nil {
		return nil, err
	}
	updated, err := s.reviews.Update(review)
	if err != nil {
		return nil, err
	}
	s.record(existing.UserID, existing.ReviewID, models.OperationUpdate)
	return updated, nil
}

// Delete removes a review and its reactions.
func (s *ReviewService) Delete(id int64) (*models.Review, error) {
	review, err := s.reviews.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.reviews.Delete(id); err != nil {
		return nil, err
	}
	s.record(review.UserID, review.ReviewID, models.OperationRemove)
	return review, nil
}

// AddLike sets a +1 reaction from the user, replacing any previous one.
func (s *ReviewService) AddLike(reviewID, userID int64) (*models.Review, error) {
	return s.react(reviewID, userID, 1)
}

// AddDislike sets a -1 reaction from the user, replacing any previous one.
func (s *ReviewService) AddDislike(reviewID, userID int64) (*models.Review, error) {
	return s.react(reviewID, userID, -1)
}

// RemoveReaction clears the user's reaction.
func (s *ReviewService) RemoveReaction(reviewID, userID int64) (*models.Review, error) {
	return s.react(reviewID, userID, 0)
}

func (s *ReviewService) react(reviewID, userID int64, value int) (*models.Review, error) {
	if _, err := s.reviews.FindByID(reviewID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, err
	}
	if err := s.reviews.SetReaction(reviewID, userID, value); err != nil {
		return nil, err
	}
	return s.reviews.FindByID(reviewID)
}

func (s *ReviewService) record(userID, reviewID int64, operation string) {
	if _, err := s.feed.Record(userID, reviewID, models.EventTypeReview, operation); err != nil {
		slog.Warn("failed to record feed event", "user_id", userID, "type", models.EventTypeReview, "error", err)
	}
}
