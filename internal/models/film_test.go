package models

import (
	"strings"
	"testing"

	"filmorate-service/internal/apperr"
)

func validFilm() Film {
	return Film{
		Name:        "The General",
		Description: "A train chase",
		ReleaseDate: "1926-12-31",
		Duration:    79,
	}
}

func TestFilmValidateAcceptsDescriptionAtLimit(t *testing.T) {
	film := validFilm()
	film.Description = strings.Repeat("a", 200)
	if err := film.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestFilmValidateRejectsBlankName(t *testing.T) {
	film := validFilm()
	film.Name = "   "
	if err := film.Validate(); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFilmValidateRejectsDescriptionOverLimit(t *testing.T) {
	film := validFilm()
	film.Description = strings.Repeat("a", 201)
	if err := film.Validate(); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFilmValidateAcceptsEarliestReleaseDate(t *testing.T) {
	film := validFilm()
	film.ReleaseDate = "1895-12-28"
	if err := film.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestFilmValidateRejectsReleaseBeforeCinema(t *testing.T) {
	film := validFilm()
	film.ReleaseDate = "1895-12-27"
	if err := film.Validate(); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFilmValidateRejectsNonPositiveDuration(t *testing.T) {
	film := validFilm()
	film.Duration = 0
	if err := film.Validate(); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFilmReleaseYear(t *testing.T) {
	film := validFilm()
	if year := film.ReleaseYear(); year != 1926 {
		t.Fatalf("expected release year 1926, got %d", year)
	}
}
