package memory

import (
	"sync"

	"filmorate-service/internal/models"
)

// FeedStorage stores the activity feed in memory.
type FeedStorage struct {
	mu     sync.Mutex
	events []models.Event
	nextID int64
}

// NewFeedStorage creates an empty FeedStorage.
func NewFeedStorage() *FeedStorage {
	return &FeedStorage{}
}

func (s *FeedStorage) Append(event models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	event.EventID = s.nextID
	s.events = append(s.events, event)
	return &event, nil
}

func (s *FeedStorage) ForUser(userID int64) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]models.Event, 0)
	for _, event := range s.events {
		if event.UserID == userID {
			events = append(events, event)
		}
	}
	return events, nil
}
