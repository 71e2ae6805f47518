// Package memory provides map-backed implementations of the storage
// interfaces. It backs the unit tests and can substitute for Postgres
// in lightweight deployments.
package memory

import (
	"sort"
	"sync"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

// UserStorage stores users in memory.
type UserStorage struct {
	mu     sync.Mutex
	users  map[int64]models.User
	nextID int64
}

// NewUserStorage creates an empty UserStorage.
func NewUserStorage() *UserStorage {
	return &UserStorage{users: make(map[int64]models.User)}
}

func (s *UserStorage) Create(user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	return &user, nil
}

func (s *UserStorage) Update(user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return nil, apperr.NotFound("user", user.ID)
	}
	s.users[user.ID] = user
	return &user, nil
}

func (s *UserStorage) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *UserStorage) FindByID(id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("user", id)
	}
	return &user, nil
}

func (s *UserStorage) FindAll() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
