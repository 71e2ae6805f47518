package postgres

import (
	"database/sql"
	"fmt"

	"filmorate-service/internal/models"
)

// FeedStorage handles database operations for the activity feed.
type FeedStorage struct {
	db *sql.DB
}

// NewFeedStorage creates a new FeedStorage.
func NewFeedStorage(db *sql.DB) *FeedStorage {
	return &FeedStorage{db: db}
}

// Append inserts an event and returns it with the generated id.
func (s *FeedStorage) Append(event models.Event) (*models.Event, error) {
	err := s.db.QueryRow(`
		INSERT INTO events (user_id, entity_id, event_type, operation, event_ts)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING event_id
	`, event.UserID, event.EntityID, event.EventType, event.Operation,
		event.Timestamp).Scan(&event.EventID)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &event, nil
}

// ForUser returns all events with the given actor, oldest first.
func (s *FeedStorage) ForUser(userID int64) ([]models.Event, error) {
	rows, err := s.db.Query(`
		SELECT event_id, user_id, entity_id, event_type, operation, event_ts
		FROM events WHERE user_id = $1
		ORDER BY event_ts ASC, event_id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var event models.Event
		err := rows.Scan(&event.EventID, &event.UserID, &event.EntityID,
			&event.EventType, &event.Operation, &event.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
