package service

import (
	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
	"filmorate-service/internal/storage"
)

// DirectorService orchestrates director CRUD.
type DirectorService struct {
	directors storage.DirectorStorage
}

// NewDirectorService creates a new DirectorService.
func NewDirectorService(directors storage.DirectorStorage) *DirectorService {
	return &DirectorService{directors: directors}
}

func (s *DirectorService) FindAll() ([]models.Director, error) {
	return s.directors.FindAll()
}

func (s *DirectorService) FindByID(id int64) (*models.Director, error) {
	return s.directors.FindByID(id)
}

func (s *DirectorService) Create(director models.Director) (*models.Director, error) {
	if err := director.Validate(); err != nil {
		return nil, err
	}
	return s.directors.Create(director)
}

func (s *DirectorService) Update(director models.Director) (*models.Director, error) {
	if director.ID == 0 {
		return nil, apperr.Validation("director id must be set")
	}
	if err := director.Validate(); err != nil {
		return nil, err
	}
	return s.directors.Update(director)
}

func (s *DirectorService) Delete(id int64) error {
	if _, err := s.directors.FindByID(id); err != nil {
		return err
	}
	return s.directors.Delete(id)
}
