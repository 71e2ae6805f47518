package models

import (
	"strings"
	"time"

	"filmorate-service/internal/apperr"
)

// EarliestReleaseDate is the date of the first public film screening.
// Films cannot have been released before it.
var EarliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Film represents a film with its genre, director and rating associations.
type Film struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate string     `json:"releaseDate" validate:"required"`
	Duration    int        `json:"duration" validate:"gt=0"`
	Mpa         *Mpa       `json:"mpa,omitempty"`
	Genres      []Genre    `json:"genres"`
	Directors   []Director `json:"directors"`
}

// Mpa is a fixed film rating classification.
type Mpa struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Genre is a fixed film genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Director represents a film director.
type Director struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}

// Validate checks field constraints.
func (f *Film) Validate() error {
	if err := checkStruct(f); err != nil {
		return err
	}
	if strings.TrimSpace(f.Name) == "" {
		return apperr.Validation("name must not be blank")
	}
	releaseDate, err := time.Parse(dateLayout, f.ReleaseDate)
	if err != nil {
		return apperr.Validation("releaseDate must be a date in YYYY-MM-DD format")
	}
	if releaseDate.Before(EarliestReleaseDate) {
		return apperr.Validation("releaseDate must not be earlier than 1895-12-28")
	}
	return nil
}

// ReleaseYear returns the release year, or 0 if the date is unset.
func (f *Film) ReleaseYear() int {
	t, err := time.Parse(dateLayout, f.ReleaseDate)
	if err != nil {
		return 0
	}
	return t.Year()
}

// Validate checks director field constraints.
func (d *Director) Validate() error {
	return checkStruct(d)
}
