package postgres

import (
	"database/sql"
	"fmt"
)

// FriendshipStorage handles database operations for friendship edges.
type FriendshipStorage struct {
	db *sql.DB
}

// NewFriendshipStorage creates a new FriendshipStorage.
func NewFriendshipStorage(db *sql.DB) *FriendshipStorage {
	return &FriendshipStorage{db: db}
}

// Request creates a pending edge user->friend, keeping an existing edge
// (pending or confirmed) untouched.
func (s *FriendshipStorage) Request(userID, friendID int64) error {
	_, err := s.db.Exec(`
		INSERT INTO friendships (user_id, friend_id, status)
		VALUES ($1, $2, 'pending')
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`, userID, friendID)
	if err != nil {
		return fmt.Errorf("request friend: %w", err)
	}
	return nil
}

// Confirm flips the directed edge to confirmed. No-op if absent.
func (s *FriendshipStorage) Confirm(userID, friendID int64) error {
	_, err := s.db.Exec(`
		UPDATE friendships SET status = 'confirmed'
		WHERE user_id = $1 AND friend_id = $2
	`, userID, friendID)
	if err != nil {
		return fmt.Errorf("confirm friend: %w", err)
	}
	return nil
}

// Remove deletes the directed edge. Absence is not an error.
func (s *FriendshipStorage) Remove(userID, friendID int64) error {
	_, err := s.db.Exec(`
		DELETE FROM friendships WHERE user_id = $1 AND friend_id = $2
	`, userID, friendID)
	if err != nil {
		return fmt.Errorf("remove friend: %w", err)
	}
	return nil
}

// RemoveUser deletes every edge touching the user, in both directions.
func (s *FriendshipStorage) RemoveUser(userID int64) error {
	_, err := s.db.Exec(`
		DELETE FROM friendships WHERE user_id = $1 OR friend_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("remove user edges: %w", err)
	}
	return nil
}

// Friends returns the ids of all confirmed friends of a user.
func (s *FriendshipStorage) Friends(userID int64) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT friend_id FROM friendships
		WHERE user_id = $1 AND status = 'confirmed'
		ORDER BY friend_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query friends: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan friend id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
