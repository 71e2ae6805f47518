package memory

import (
	"sort"
	"sync"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

// DirectorStorage stores directors in memory.
type DirectorStorage struct {
	mu        sync.Mutex
	directors map[int64]models.Director
	nextID    int64
}

// NewDirectorStorage creates an empty DirectorStorage.
func NewDirectorStorage() *DirectorStorage {
	return &DirectorStorage{directors: make(map[int64]models.Director)}
}

func (s *DirectorStorage) Create(director models.Director) (*models.Director, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	director.ID = s.nextID
	s.directors[director.ID] = director
	return &director, nil
}

func (s *DirectorStorage) Update(director models.Director) (*models.Director, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.directors[director.ID]; !ok {
		return nil, apperr.NotFound("director", director.ID)
	}
	s.directors[director.ID] = director
	return &director, nil
}

func (s *DirectorStorage) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.directors, id)
	return nil
}

func (s *DirectorStorage) FindByID(id int64) (*models.Director, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	director, ok := s.directors[id]
	if !ok {
		return nil, apperr.NotFound("director", id)
	}
	return &director, nil
}

func (s *DirectorStorage) FindAll() ([]models.Director, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	directors := make([]models.Director, 0, len(s.directors))
	for _, director := range s.directors {
		directors = append(directors, director)
	}
	sort.Slice(directors, func(i, j int) bool { return directors[i].ID < directors[j].ID })
	return directors, nil
}
