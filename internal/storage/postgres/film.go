package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

// filmColumns is the shared select list for film queries. The rating is
// joined as a nullable pair.
const filmColumns = `f.film_id, f.name, COALESCE(f.description, ''),
	COALESCE(TO_CHAR(f.release_date, 'YYYY-MM-DD'), ''), f.duration,
	r.rating_id, r.name`

const filmFrom = `FROM films f LEFT JOIN mpa_ratings r ON r.rating_id = f.rating_id`

// FilmStorage handles database operations for films and the like relation.
type FilmStorage struct {
	db *sql.DB
}

// NewFilmStorage creates a new FilmStorage.
func NewFilmStorage(db *sql.DB) *FilmStorage {
	return &FilmStorage{db: db}
}

// Create inserts a film with its genre and director associations in one
// transaction and returns the stored film.
func (s *FilmStorage) Create(film models.Film) (*models.Film, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var ratingID any
	if film.Mpa != nil {
		ratingID = film.Mpa.ID
	}
	err = tx.QueryRow(`
		INSERT INTO films (name, description, release_date, duration, rating_id)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING film_id
	`, film.Name, film.Description, film.ReleaseDate, film.Duration, ratingID).Scan(&film.ID)
	if err != nil {
		return nil, refError(err, "mpa rating", int64(mpaID(film.Mpa)))
	}

	if err := insertAssociations(tx, &film); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return s.FindByID(film.ID)
}

// Update rewrites the film row and replaces its genre and director
// associations atomically.
func (s *FilmStorage) Update(film models.Film) (*models.Film, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var ratingID any
	if film.Mpa != nil {
		ratingID = film.Mpa.ID
	}
	res, err := tx.Exec(`
		UPDATE films SET name = $1, description = $2, release_date = $3::date,
			duration = $4, rating_id = $5
		WHERE film_id = $6
	`, film.Name, film.Description, film.ReleaseDate, film.Duration, ratingID, film.ID)
	if err != nil {
		return nil, refError(err, "mpa rating", int64(mpaID(film.Mpa)))
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, apperr.NotFound("film", film.ID)
	}

	if _, err := tx.Exec(`DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
		return nil, fmt.Errorf("clear film genres: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM film_directors WHERE film_id = $1`, film.ID); err != nil {
		return nil, fmt.Errorf("clear film directors: %w", err)
	}
	if err := insertAssociations(tx, &film); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return s.FindByID(film.ID)
}

// Delete removes a film. Associations and likes are removed by the
// cascading foreign keys.
func (s *FilmStorage) Delete(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM films WHERE film_id = $1`, id); err != nil {
		return fmt.Errorf("delete film: %w", err)
	}
	return nil
}

// FindByID returns a film with its genres and directors.
func (s *FilmStorage) FindByID(id int64) (*models.Film, error) {
	films, err := s.queryFilms(
		"SELECT "+filmColumns+" "+filmFrom+" WHERE f.film_id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, apperr.NotFound("film", id)
	}
	return &films[0], nil
}

// FindAll returns all films with their genres and directors.
func (s *FilmStorage) FindAll() ([]models.Film, error) {
	return s.queryFilms("SELECT " + filmColumns + " " + filmFrom + " ORDER BY f.film_id")
}

// AddLike records a like, idempotently.
func (s *FilmStorage) AddLike(filmID, userID int64) error {
	_, err := s.db.Exec(`
		INSERT INTO film_likes (film_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, filmID, userID)
	if err != nil {
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

// RemoveLike removes a like, idempotently.
func (s *FilmStorage) RemoveLike(filmID, userID int64) error {
	_, err := s.db.Exec(`
		DELETE FROM film_likes WHERE film_id = $1 AND user_id = $2
	`, filmID, userID)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	return nil
}

// RemoveUserLikes deletes every like placed by the user.
func (s *FilmStorage) RemoveUserLikes(userID int64) error {
	_, err := s.db.Exec(`
		DELETE FROM film_likes WHERE user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("remove user likes: %w", err)
	}
	return nil
}

// Popular returns the most liked films, optionally filtered by genre and
// release year. Films without likes are excluded.
func (s *FilmStorage) Popular(limit int, genreID int, year int) ([]models.Film, error) {
	join := ""
	conditions := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if genreID > 0 {
		join = fmt.Sprintf(" JOIN film_genres fg ON fg.film_id = f.film_id AND fg.genre_id = $%d", argIdx)
		args = append(args, genreID)
		argIdx++
	}
	if year > 0 {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM f.release_date) = $%d", argIdx))
		args = append(args, year)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(DISTINCT fl.user_id) AS likes
		%s
		JOIN film_likes fl ON fl.film_id = f.film_id%s
		WHERE %s
		GROUP BY f.film_id, r.rating_id, r.name
		ORDER BY likes DESC, f.film_id ASC
		LIMIT $%d
	`, filmColumns, filmFrom, join, strings.Join(conditions, " AND "), argIdx)
	args = append(args, limit)

	return s.queryRankedFilms(query, args...)
}

// Common returns films liked by both users, most liked first.
func (s *FilmStorage) Common(userID, friendID int64) ([]models.Film, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(DISTINCT fl.user_id) AS likes
		%s
		JOIN film_likes fl ON fl.film_id = f.film_id
		WHERE f.film_id IN (SELECT film_id FROM film_likes WHERE user_id = $1)
			AND f.film_id IN (SELECT film_id FROM film_likes WHERE user_id = $2)
		GROUP BY f.film_id, r.rating_id, r.name
		ORDER BY likes DESC, f.film_id ASC
	`, filmColumns, filmFrom)
	return s.queryRankedFilms(query, userID, friendID)
}

// Recommendations finds users with overlapping likes and returns the
// films they liked that the given user has not, ranked by the strongest
// overlap among the likers.
func (s *FilmStorage) Recommendations(userID int64) ([]models.Film, error) {
	query := fmt.Sprintf(`
		WITH neighbors AS (
			SELECT fl2.user_id, COUNT(*) AS shared
			FROM film_likes fl1
			JOIN film_likes fl2 ON fl2.film_id = fl1.film_id
				AND fl2.user_id <> fl1.user_id
			WHERE fl1.user_id = $1
			GROUP BY fl2.user_id
		)
		SELECT %s, MAX(n.shared) AS weight
		FROM neighbors n
		JOIN film_likes fl ON fl.user_id = n.user_id
		JOIN films f ON f.film_id = fl.film_id
		LEFT JOIN mpa_ratings r ON r.rating_id = f.rating_id
		WHERE fl.film_id NOT IN (SELECT film_id FROM film_likes WHERE user_id = $1)
		GROUP BY f.film_id, r.rating_id, r.name
		ORDER BY weight DESC, f.film_id ASC
	`, filmColumns)
	return s.queryRankedFilms(query, userID)
}

// ByDirector returns the director's films sorted by release year or by
// like count.
func (s *FilmStorage) ByDirector(directorID int64, sortBy string) ([]models.Film, error) {
	order := "f.release_date ASC NULLS LAST, f.film_id ASC"
	if sortBy == "likes" {
		order = "likes DESC, f.film_id ASC"
	}
	query := fmt.Sprintf(`
		SELECT %s, COUNT(DISTINCT fl.user_id) AS likes
		%s
		JOIN film_directors fd ON fd.film_id = f.film_id AND fd.director_id = $1
		LEFT JOIN film_likes fl ON fl.film_id = f.film_id
		GROUP BY f.film_id, r.rating_id, r.name
		ORDER BY %s
	`, filmColumns, filmFrom, order)
	return s.queryRankedFilms(query, directorID)
}

// Search finds films by title and/or director name substring, most liked
// first.
func (s *FilmStorage) Search(query string, byTitle, byDirector bool) ([]models.Film, error) {
	conditions := make([]string, 0, 2)
	if byTitle {
		conditions = append(conditions, "f.name ILIKE '%' || $1 || '%'")
	}
	if byDirector {
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM film_directors fd
			JOIN directors d ON d.director_id = fd.director_id
			WHERE fd.film_id = f.film_id AND d.name ILIKE '%' || $1 || '%')`)
	}
	if len(conditions) == 0 {
		return []models.Film{}, nil
	}

	sqlQuery := fmt.Sprintf(`
		SELECT %s, COUNT(DISTINCT fl.user_id) AS likes
		%s
		LEFT JOIN film_likes fl ON fl.film_id = f.film_id
		WHERE %s
		GROUP BY f.film_id, r.rating_id, r.name
		ORDER BY likes DESC, f.film_id ASC
	`, filmColumns, filmFrom, strings.Join(conditions, " OR "))
	return s.queryRankedFilms(sqlQuery, query)
}

// queryFilms runs a film select and loads associations.
func (s *FilmStorage) queryFilms(query string, args ...any) ([]models.Film, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query films: %w", err)
	}
	defer rows.Close()

	films := make([]models.Film, 0)
	for rows.Next() {
		film, err := scanFilm(rows.Scan)
		if err != nil {
			return nil, err
		}
		films = append(films, *film)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate films: %w", err)
	}
	return films, s.loadAssociations(films)
}

// queryRankedFilms is queryFilms for selects carrying a trailing ranking
// column that is scanned and discarded.
func (s *FilmStorage) queryRankedFilms(query string, args ...any) ([]models.Film, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ranked films: %w", err)
	}
	defer rows.Close()

	films := make([]models.Film, 0)
	for rows.Next() {
		var rank int64
		film, err := scanFilm(func(dest ...any) error {
			return rows.Scan(append(dest, &rank)...)
		})
		if err != nil {
			return nil, err
		}
		films = append(films, *film)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranked films: %w", err)
	}
	return films, s.loadAssociations(films)
}

func scanFilm(scan func(dest ...any) error) (*models.Film, error) {
	var film models.Film
	var ratingID sql.NullInt64
	var ratingName sql.NullString
	err := scan(&film.ID, &film.Name, &film.Description, &film.ReleaseDate,
		&film.Duration, &ratingID, &ratingName)
	if err != nil {
		return nil, fmt.Errorf("scan film: %w", err)
	}
	if ratingID.Valid {
		film.Mpa = &models.Mpa{ID: int(ratingID.Int64), Name: ratingName.String}
	}
	film.Genres = make([]models.Genre, 0)
	film.Directors = make([]models.Director, 0)
	return &film, nil
}

// loadAssociations batch-loads genres and directors for the given films.
func (s *FilmStorage) loadAssociations(films []models.Film) error {
	if len(films) == 0 {
		return nil
	}
	byID := make(map[int64]*models.Film, len(films))
	ids := make([]int64, 0, len(films))
	for i := range films {
		byID[films[i].ID] = &films[i]
		ids = append(ids, films[i].ID)
	}

	rows, err := s.db.Query(`
		SELECT fg.film_id, g.genre_id, g.name
		FROM film_genres fg
		JOIN genres g ON g.genre_id = fg.genre_id
		WHERE fg.film_id = ANY($1)
		ORDER BY g.genre_id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load genres: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var filmID int64
		var genre models.Genre
		if err := rows.Scan(&filmID, &genre.ID, &genre.Name); err != nil {
			return fmt.Errorf("scan film genre: %w", err)
		}
		if film, ok := byID[filmID]; ok {
			film.Genres = append(film.Genres, genre)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate film genres: %w", err)
	}

	dirRows, err := s.db.Query(`
		SELECT fd.film_id, d.director_id, d.name
		FROM film_directors fd
		JOIN directors d ON d.director_id = fd.director_id
		WHERE fd.film_id = ANY($1)
		ORDER BY d.director_id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load directors: %w", err)
	}
	defer dirRows.Close()
	for dirRows.Next() {
		var filmID int64
		var director models.Director
		if err := dirRows.Scan(&filmID, &director.ID, &director.Name); err != nil {
			return fmt.Errorf("scan film director: %w", err)
		}
		if film, ok := byID[filmID]; ok {
			film.Directors = append(film.Directors, director)
		}
	}
	return dirRows.Err()
}

func insertAssociations(tx *sql.Tx, film *models.Film) error {
	for _, genre := range film.Genres {
		_, err := tx.Exec(`
			INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, film.ID, genre.ID)
		if err != nil {
			return refError(err, "genre", int64(genre.ID))
		}
	}
	for _, director := range film.Directors {
		_, err := tx.Exec(`
			INSERT INTO film_directors (film_id, director_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, film.ID, director.ID)
		if err != nil {
			return refError(err, "director", director.ID)
		}
	}
	return nil
}

// refError converts a foreign key violation into an invalid reference
// error. Other errors are wrapped unchanged.
func refError(err error, entity string, id int64) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return apperr.InvalidReference(entity, id)
	}
	return fmt.Errorf("write film: %w", err)
}

func mpaID(mpa *models.Mpa) int {
	if mpa == nil {
		return 0
	}
	return mpa.ID
}
