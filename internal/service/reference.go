package service

import (
	"filmorate-service/internal/models"
	"filmorate-service/internal/storage"
)

// GenreService exposes the fixed genre enumeration.
type GenreService struct {
	genres storage.GenreStorage
}

// NewGenreService creates a new GenreService.
func NewGenreService(genres storage.GenreStorage) *GenreService {
	return &GenreService{genres: genres}
}

func (s *GenreService) FindAll() ([]models.Genre, error) {
	return s.genres.FindAll()
}

func (s *GenreService) FindByID(id int) (*models.Genre, error) {
	return s.genres.FindByID(id)
}

// MpaService exposes the fixed rating classification enumeration.
type MpaService struct {
	mpa storage.MpaStorage
}

// NewMpaService creates a new MpaService.
func NewMpaService(mpa storage.MpaStorage) *MpaService {
	return &MpaService{mpa: mpa}
}

func (s *MpaService) FindAll() ([]models.Mpa, error) {
	return s.mpa.FindAll()
}

func (s *MpaService) FindByID(id int) (*models.Mpa, error) {
	return s.mpa.FindByID(id)
}
