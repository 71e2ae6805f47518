package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

// ReviewStorage handles database operations for reviews and reactions.
type ReviewStorage struct {
	db *sql.DB
}

// NewReviewStorage creates a new ReviewStorage.
func NewReviewStorage(db *sql.DB) *ReviewStorage {
	return &ReviewStorage{db: db}
}

// Create inserts a review with zero usefulness.
func (s *ReviewStorage) Create(review models.Review) (*models.Review, error) {
	err := s.db.QueryRow(`
		INSERT INTO reviews (film_id, user_id, content, is_positive, useful)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING review_id
	`, review.FilmID, review.UserID, review.Content, *review.IsPositive).Scan(&review.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return s.FindByID(review.ReviewID)
}

// Update changes the review content and verdict. Author, film and
// usefulness are immutable through update.
func (s *ReviewStorage) Update(review models.Review) (*models.Review, error) {
	res, err := s.db.Exec(`
		UPDATE reviews SET content = $1, is_positive = $2 WHERE review_id = $3
	`, review.Content, *review.IsPositive, review.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, apperr.NotFound("review", review.ReviewID)
	}
	return s.FindByID(review.ReviewID)
}

// Delete removes a review. Reactions are removed by the cascading
// foreign key.
func (s *ReviewStorage) Delete(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM reviews WHERE review_id = $1`, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// FindByID returns a review by id.
func (s *ReviewStorage) FindByID(id int64) (*models.Review, error) {
	review, err := s.scanOne(s.db.QueryRow(`
		SELECT review_id, content, is_positive, user_id, film_id, useful
		FROM reviews WHERE review_id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("review", id)
	}
	return review, err
}

// FindLimited returns the most useful reviews across all films.
func (s *ReviewStorage) FindLimited(count int) ([]models.Review, error) {
	return s.queryReviews(`
		SELECT review_id, content, is_positive, user_id, film_id, useful
		FROM reviews ORDER BY useful DESC, review_id ASC LIMIT $1
	`, count)
}

// FindByFilm returns the most useful reviews for one film.
func (s *ReviewStorage) FindByFilm(filmID int64, count int) ([]models.Review, error) {
	return s.queryReviews(`
		SELECT review_id, content, is_positive, user_id, film_id, useful
		FROM reviews WHERE film_id = $1
		ORDER BY useful DESC, review_id ASC LIMIT $2
	`, filmID, count)
}

// SetReaction upserts the (review, user) reaction and recomputes the
// review's usefulness as the sum of all reaction values. A zero value
// clears the reaction.
func (s *ReviewStorage) SetReaction(reviewID, userID int64, value int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if value == 0 {
		_, err = tx.Exec(`
			DELETE FROM review_reactions WHERE review_id = $1 AND user_id = $2
		`, reviewID, userID)
	} else {
		_, err = tx.Exec(`
			INSERT INTO review_reactions (review_id, user_id, value)
			VALUES ($1, $2, $3)
			ON CONFLICT (review_id, user_id) DO UPDATE SET value = EXCLUDED.value
		`, reviewID, userID, value)
	}
	if err != nil {
		return fmt.Errorf("set reaction: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE reviews
		SET useful = COALESCE((SELECT SUM(value) FROM review_reactions WHERE review_id = $1), 0)
		WHERE review_id = $1
	`, reviewID)
	if err != nil {
		return fmt.Errorf("recompute useful: %w", err)
	}
	return tx.Commit()
}

func (s *ReviewStorage) queryReviews(query string, args ...any) ([]models.Review, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var review models.Review
		var isPositive bool
		err := rows.Scan(&review.ReviewID, &review.Content, &isPositive,
			&review.UserID, &review.FilmID, &review.Useful)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		review.IsPositive = &isPositive
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (s *ReviewStorage) scanOne(row *sql.Row) (*models.Review, error) {
	var review models.Review
	var isPositive bool
	err := row.Scan(&review.ReviewID, &review.Content, &isPositive,
		&review.UserID, &review.FilmID, &review.Useful)
	if err != nil {
		return nil, err
	}
	review.IsPositive = &isPositive
	return &review, nil
}
