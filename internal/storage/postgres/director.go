package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

// DirectorStorage handles database operations for directors.
type DirectorStorage struct {
	db *sql.DB
}

// NewDirectorStorage creates a new DirectorStorage.
func NewDirectorStorage(db *sql.DB) *DirectorStorage {
	return &DirectorStorage{db: db}
}

// Create inserts a director and returns it with the generated id.
func (s *DirectorStorage) Create(director models.Director) (*models.Director, error) {
	err := s.db.QueryRow(`
		INSERT INTO directors (name) VALUES ($1) RETURNING director_id
	`, director.Name).Scan(&director.ID)
	if err != nil {
		return nil, fmt.Errorf("insert director: %w", err)
	}
	return &director, nil
}

// Update renames a director.
func (s *DirectorStorage) Update(director models.Director) (*models.Director, error) {
	res, err := s.db.Exec(`
		UPDATE directors SET name = $1 WHERE director_id = $2
	`, director.Name, director.ID)
	if err != nil {
		return nil, fmt.Errorf("update director: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, apperr.NotFound("director", director.ID)
	}
	return &director, nil
}

// Delete removes a director. Film associations are removed by the
// cascading foreign key.
func (s *DirectorStorage) Delete(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM directors WHERE director_id = $1`, id); err != nil {
		return fmt.Errorf("delete director: %w", err)
	}
	return nil
}

// FindByID returns a director by id.
func (s *DirectorStorage) FindByID(id int64) (*models.Director, error) {
	var director models.Director
	err := s.db.QueryRow(`
		SELECT director_id, name FROM directors WHERE director_id = $1
	`, id).Scan(&director.ID, &director.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("director", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query director: %w", err)
	}
	return &director, nil
}

// FindAll returns all directors ordered by id.
func (s *DirectorStorage) FindAll() ([]models.Director, error) {
	rows, err := s.db.Query(`SELECT director_id, name FROM directors ORDER BY director_id`)
	if err != nil {
		return nil, fmt.Errorf("query directors: %w", err)
	}
	defer rows.Close()

	directors := make([]models.Director, 0)
	for rows.Next() {
		var director models.Director
		if err := rows.Scan(&director.ID, &director.Name); err != nil {
			return nil, fmt.Errorf("scan director: %w", err)
		}
		directors = append(directors, director)
	}
	return directors, rows.Err()
}
