package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

// UserStorage handles database operations for users.
type UserStorage struct {
	db *sql.DB
}

// NewUserStorage creates a new UserStorage.
func NewUserStorage(db *sql.DB) *UserStorage {
	return &UserStorage{db: db}
}

// Create inserts a user and returns it with the generated id.
func (s *UserStorage) Create(user models.User) (*models.User, error) {
	err := s.db.QueryRow(`
		INSERT INTO users (email, login, name, birthday)
		VALUES ($1, $2, $3, $4::date)
		RETURNING user_id
	`, user.Email, user.Login, user.Name, user.Birthday).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

// Update rewrites all mutable user fields.
func (s *UserStorage) Update(user models.User) (*models.User, error) {
	res, err := s.db.Exec(`
		UPDATE users SET email = $1, login = $2, name = $3, birthday = $4::date
		WHERE user_id = $5
	`, user.Email, user.Login, user.Name, user.Birthday, user.ID)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, apperr.NotFound("user", user.ID)
	}
	return &user, nil
}

// Delete removes a user. Friendships, likes, reviews and events are
// removed by the cascading foreign keys.
func (s *UserStorage) Delete(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM users WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// FindByID returns a user by id.
func (s *UserStorage) FindByID(id int64) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(`
		SELECT user_id, email, login, name,
			COALESCE(TO_CHAR(birthday, 'YYYY-MM-DD'), '')
		FROM users WHERE user_id = $1
	`, id).Scan(&user.ID, &user.Email, &user.Login, &user.Name, &user.Birthday)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// FindAll returns all users.
func (s *UserStorage) FindAll() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT user_id, email, login, name,
			COALESCE(TO_CHAR(birthday, 'YYYY-MM-DD'), '')
		FROM users ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Login, &user.Name, &user.Birthday); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
