package memory

import (
	"sort"
	"sync"
)

const (
	statusPending   = "pending"
	statusConfirmed = "confirmed"
)

// FriendshipStorage stores directed friendship edges in memory.
type FriendshipStorage struct {
	mu    sync.Mutex
	edges map[int64]map[int64]string // user -> friend -> status
}

// NewFriendshipStorage creates an empty FriendshipStorage.
func NewFriendshipStorage() *FriendshipStorage {
	return &FriendshipStorage{edges: make(map[int64]map[int64]string)}
}

func (s *FriendshipStorage) Request(userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edges[userID] == nil {
		s.edges[userID] = make(map[int64]string)
	}
	if _, ok := s.edges[userID][friendID]; !ok {
		s.edges[userID][friendID] = statusPending
	}
	return nil
}

func (s *FriendshipStorage) Confirm(userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.edges[userID][friendID]; ok {
		s.edges[userID][friendID] = statusConfirmed
	}
	return nil
}

func (s *FriendshipStorage) Remove(userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edges[userID], friendID)
	return nil
}

func (s *FriendshipStorage) RemoveUser(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edges, userID)
	for _, targets := range s.edges {
		delete(targets, userID)
	}
	return nil
}

func (s *FriendshipStorage) Friends(userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0)
	for friendID, status := range s.edges[userID] {
		if status == statusConfirmed {
			ids = append(ids, friendID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
