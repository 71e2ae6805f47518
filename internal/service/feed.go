package service

import (
	"time"

	"filmorate-service/internal/models"
	"filmorate-service/internal/storage"
)

// FeedService appends and reads activity feed events.
type FeedService struct {
	feed storage.FeedStorage
}

// NewFeedService creates a new FeedService.
func NewFeedService(feed storage.FeedStorage) *FeedService {
	return &FeedService{feed: feed}
}

// Record appends an event with the current timestamp.
func (s *FeedService) Record(userID, entityID int64, eventType, operation string) (*models.Event, error) {
	return s.feed.Append(models.Event{
		UserID:    userID,
		EntityID:  entityID,
		EventType: eventType,
		Operation: operation,
		Timestamp: time.Now().UnixMilli(),
	})
}

// ForUser returns the feed of a user, oldest event first.
func (s *FeedService) ForUser(userID int64) ([]models.Event, error) {
	return s.feed.ForUser(userID)
}
