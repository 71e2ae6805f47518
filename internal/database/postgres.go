package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"filmorate-service/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGSERIAL PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			login VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL DEFAULT '',
			birthday DATE
		)`,
		`CREATE TABLE IF NOT EXISTS friendships (
			user_id BIGINT REFERENCES users(user_id) ON DELETE CASCADE,
			friend_id BIGINT REFERENCES users(user_id) ON DELETE CASCADE,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			PRIMARY KEY (user_id, friend_id)
		)`,
		`CREATE TABLE IF NOT EXISTS mpa_ratings (
			rating_id SERIAL PRIMARY KEY,
			name VARCHAR(20) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS genres (
			genre_id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS directors (
			director_id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS films (
			film_id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description VARCHAR(200) DEFAULT '',
			release_date DATE,
			duration INTEGER NOT NULL,
			rating_id INTEGER REFERENCES mpa_ratings(rating_id)
		)`,
		`CREATE TABLE IF NOT EXISTS film_genres (
			film_id BIGINT REFERENCES films(film_id) ON DELETE CASCADE,
			genre_id INTEGER REFERENCES genres(genre_id) ON DELETE CASCADE,
			PRIMARY KEY (film_id, genre_id)
		)`,
		`CREATE TABLE IF NOT EXISTS film_directors (
			film_id BIGINT REFERENCES films(film_id) ON DELETE CASCADE,
			director_id BIGINT REFERENCES directors(director_id) ON DELETE CASCADE,
			PRIMARY KEY (film_id, director_id)
		)`,
		`CREATE TABLE IF NOT EXISTS film_likes (
			film_id BIGINT REFERENCES films(film_id) ON DELETE CASCADE,
			user_id BIGINT REFERENCES users(user_id) ON DELETE CASCADE,
			PRIMARY KEY (film_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			review_id BIGSERIAL PRIMARY KEY,
			film_id BIGINT NOT NULL REFERENCES films(film_id) ON DELETE CASCADE,
			user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			is_positive BOOLEAN NOT NULL,
			useful INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS review_reactions (
			review_id BIGINT REFERENCES reviews(review_id) ON DELETE CASCADE,
			user_id BIGINT REFERENCES users(user_id) ON DELETE CASCADE,
			value INTEGER NOT NULL,
			PRIMARY KEY (review_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id BIGSERIAL PRIMARY KEY,
			user_id BIGINT REFERENCES users(user_id) ON DELETE CASCADE,
			entity_id BIGINT NOT NULL,
			event_type VARCHAR(20) NOT NULL,
			operation VARCHAR(20) NOT NULL,
			event_ts BIGINT NOT NULL
		)`,
		// Indexes for common query patterns
		`CREATE INDEX IF NOT EXISTS idx_film_likes_user ON film_likes(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_friendships_status ON friendships(user_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user ON events(user_id, event_ts)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_film ON reviews(film_id)`,
		// Reference data
		`INSERT INTO mpa_ratings (rating_id, name) VALUES
			(1, 'G'), (2, 'PG'), (3, 'PG-13'), (4, 'R'), (5, 'NC-17')
			ON CONFLICT (rating_id) DO NOTHING`,
		`INSERT INTO genres (genre_id, name) VALUES
			(1, 'Comedy'), (2, 'Drama'), (3, 'Animation'),
			(4, 'Thriller'), (5, 'Documentary'), (6, 'Action')
			ON CONFLICT (genre_id) DO NOTHING`,
		`SELECT setval('mpa_ratings_rating_id_seq', (SELECT MAX(rating_id) FROM mpa_ratings))`,
		`SELECT setval('genres_genre_id_seq', (SELECT MAX(genre_id) FROM genres))`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
