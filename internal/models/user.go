package models

import (
	"strings"
	"time"

	"filmorate-service/internal/apperr"
)

// User represents a registered user.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" validate:"required"`
}

// Validate checks field constraints and defaults a blank display name
// to the login.
func (u *User) Validate() error {
	if err := checkStruct(u); err != nil {
		return err
	}
	if strings.ContainsAny(u.Login, " \t") {
		return apperr.Validation("login must not contain whitespace")
	}
	birthday, err := time.Parse(dateLayout, u.Birthday)
	if err != nil {
		return apperr.Validation("birthday must be a date in YYYY-MM-DD format")
	}
	if birthday.After(time.Now()) {
		return apperr.Validation("birthday must not be in the future")
	}
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	return nil
}
