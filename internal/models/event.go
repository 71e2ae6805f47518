package models

// Event types recorded in the activity feed.
const (
	EventTypeLike   = "LIKE"
	EventTypeFriend = "FRIEND"
	EventTypeReview = "REVIEW"
)

// Event operations.
const (
	OperationAdd    = "ADD"
	OperationRemove = "REMOVE"
	OperationUpdate = "UPDATE"
)

// Event is an append-only activity feed entry. Timestamp is epoch
// milliseconds.
type Event struct {
	EventID   int64  `json:"eventId"`
	UserID    int64  `json:"userId"`
	EntityID  int64  `json:"entityId"`
	EventType string `json:"eventType"`
	Operation string `json:"operation"`
	Timestamp int64  `json:"timestamp"`
}
