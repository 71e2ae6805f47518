package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

// GenreStorage reads the fixed genre enumeration.
type GenreStorage struct {
	db *sql.DB
}

// NewGenreStorage creates a new GenreStorage.
func NewGenreStorage(db *sql.DB) *GenreStorage {
	return &GenreStorage{db: db}
}

// FindByID returns a genre by id.
func (s *GenreStorage) FindByID(id int) (*models.Genre, error) {
	var genre models.Genre
	err := s.db.QueryRow(`
		SELECT genre_id, name FROM genres WHERE genre_id = $1
	`, id).Scan(&genre.ID, &genre.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("genre", int64(id))
	}
	if err != nil {
		return nil, fmt.Errorf("query genre: %w", err)
	}
	return &genre, nil
}

// FindAll returns all genres ordered by id.
func (s *GenreStorage) FindAll() ([]models.Genre, error) {
	rows, err := s.db.Query(`SELECT genre_id, name FROM genres ORDER BY genre_id`)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	genres := make([]models.Genre, 0)
	for rows.Next() {
		var genre models.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, genre)
	}
	return genres, rows.Err()
}

// MpaStorage reads the fixed rating classification enumeration.
type MpaStorage struct {
	db *sql.DB
}

// NewMpaStorage creates a new MpaStorage.
func NewMpaStorage(db *sql.DB) *MpaStorage {
	return &MpaStorage{db: db}
}

// FindByID returns a rating classification by id.
func (s *MpaStorage) FindByID(id int) (*models.Mpa, error) {
	var mpa models.Mpa
	err := s.db.QueryRow(`
		SELECT rating_id, name FROM mpa_ratings WHERE rating_id = $1
	`, id).Scan(&mpa.ID, &mpa.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("mpa rating", int64(id))
	}
	if err != nil {
		return nil, fmt.Errorf("query mpa rating: %w", err)
	}
	return &mpa, nil
}

// FindAll returns all rating classifications ordered by id.
func (s *MpaStorage) FindAll() ([]models.Mpa, error) {
	rows, err := s.db.Query(`SELECT rating_id, name FROM mpa_ratings ORDER BY rating_id`)
	if err != nil {
		return nil, fmt.Errorf("query mpa ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]models.Mpa, 0)
	for rows.Next() {
		var mpa models.Mpa
		if err := rows.Scan(&mpa.ID, &mpa.Name); err != nil {
			return nil, fmt.Errorf("scan mpa rating: %w", err)
		}
		ratings = append(ratings, mpa)
	}
	return ratings, rows.Err()
}
