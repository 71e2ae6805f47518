package models

import (
	"strings"

	"filmorate-service/internal/apperr"
)

// Review is a user-authored film review. Useful is the signed sum of
// per-user like/dislike reactions.
type Review struct {
	ReviewID   int64  `json:"reviewId"`
	Content    string `json:"content"`
	IsPositive *bool  `json:"isPositive"`
	UserID     int64  `json:"userId"`
	FilmID     int64  `json:"filmId"`
	Useful     int    `json:"useful"`
}

// Validate checks field constraints.
func (r *Review) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return apperr.Validation("review content must not be blank")
	}
	if r.IsPositive == nil {
		return apperr.Validation("isPositive must be set")
	}
	if r.UserID == 0 || r.FilmID == 0 {
		return apperr.Validation("review must reference a user and a film")
	}
	return nil
}
