package memory

import (
	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

// GenreStorage holds the fixed genre enumeration.
type GenreStorage struct {
	genres []models.Genre
}

// NewGenreStorage creates a GenreStorage seeded with the standard set.
func NewGenreStorage() *GenreStorage {
	return &GenreStorage{genres: []models.Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Animation"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}}
}

func (s *GenreStorage) FindByID(id int) (*models.Genre, error) {
	for _, genre := range s.genres {
		if genre.ID == id {
			return &genre, nil
		}
	}
	return nil, apperr.NotFound("genre", int64(id))
}

func (s *GenreStorage) FindAll() ([]models.Genre, error) {
	return append([]models.Genre(nil), s.genres...), nil
}

// MpaStorage holds the fixed rating classification enumeration.
type MpaStorage struct {
	ratings []models.Mpa
}

// NewMpaStorage creates an MpaStorage seeded with the standard set.
func NewMpaStorage() *MpaStorage {
	return &MpaStorage{ratings: []models.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}}
}

func (s *MpaStorage) FindByID(id int) (*models.Mpa, error) {
	for _, mpa := range s.ratings {
		if mpa.ID == id {
			return &mpa, nil
		}
	}
	return nil, apperr.NotFound("mpa rating", int64(id))
}

func (s *MpaStorage) FindAll() ([]models.Mpa, error) {
	return append([]models.Mpa(nil), s.ratings...), nil
}
