package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
	"filmorate-service/internal/storage"
)

const (
	popularCacheTTL        = time.Minute
	recommendationCacheTTL = 5 * time.Minute

	popularKeyPattern        = "films:popular:*"
	recommendationKeyPattern = "recommendations:*"
)

// FilmService orchestrates the film catalog, the like relation and the
// recommendation queries. It depends only on read/write storage
// capabilities, never on other services, so there is no service cycle
// between users and films.
type FilmService struct {
	films     storage.FilmStorage
	users     storage.UserStorage
	genres    storage.GenreStorage
	mpa       storage.MpaStorage
	directors storage.DirectorStorage
	feed      *FeedService
	rdb       *redis.Client
}

// NewFilmService creates a new FilmService. rdb may be nil to run
// without a cache.
func NewFilmService(
	films storage.FilmStorage,
	users storage.UserStorage,
	genres storage.GenreStorage,
	mpa storage.MpaStorage,
	directors storage.DirectorStorage,
	feed *FeedService,
	rdb *redis.Client,
) *FilmService {
	return &FilmService{
		films:     films,
		users:     users,
		genres:    genres,
		mpa:       mpa,
		directors: directors,
		feed:      feed,
		rdb:       rdb,
	}
}

// FindAll returns all films.
func (s *FilmService) FindAll() ([]models.Film, error) {
	return s.films.FindAll()
}

// FindByID returns a film by id.
func (s *FilmService) FindByID(id int64) (*models.Film, error) {
	return s.films.FindByID(id)
}

// Create validates a film, resolves its references and stores it.
func (s *FilmService) Create(film models.Film) (*models.Film, error) {
	if err := film.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(&film); err != nil {
		return nil, err
	}
	return s.films.Create(film)
}

// Update validates a film, resolves its references and rewrites it,
// replacing genre and director associations.
func (s *FilmService) Update(film models.Film) (*models.Film, error) {
	if film.ID == 0 {
		return nil, apperr.Validation("film id must be set")
	}
	if err := film.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(&film); err != nil {
		return nil, err
	}
	return s.films.Update(film)
}

// Delete removes a film.
func (s *FilmService) Delete(id int64) error {
	if _, err := s.films.FindByID(id); err != nil {
		return err
	}
	return s.films.Delete(id)
}

// Like records a like, idempotently, and emits a feed event.
func (s *FilmService) Like(ctx context.Context, filmID, userID int64) (*models.Film, error) {
	film, err := s.films.FindByID(filmID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, err
	}
	if err := s.films.AddLike(filmID, userID); err != nil {
		return nil, err
	}
	s.recordLike(ctx, userID, filmID, models.OperationAdd)
	return film, nil
}

// Unlike removes a like, idempotently, and emits a feed event.
func (s *FilmService) Unlike(ctx context.Context, filmID, userID int64) (*models.Film, error) {
	film, err := s.films.FindByID(filmID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, err
	}
	if err := s.films.RemoveLike(filmID, userID); err != nil {
		return nil, err
	}
	s.recordLike(ctx, userID, filmID, models.OperationRemove)
	return film, nil
}

// Popular returns the most liked films. count defaults to 10; genreID
// and year of 0 mean no filter.
func (s *FilmService) Popular(ctx context.Context, count, genreID, year int) ([]models.Film, error) {
	if count <= 0 {
		count = 10
	}
	cacheKey := popularKey(count, genreID, year)
	var cached []models.Film
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	films, err := s.films.Popular(count, genreID, year)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, cacheKey, films, popularCacheTTL)
	return films, nil
}

// Common returns films liked by both users, most liked first.
func (s *FilmService) Common(userID, friendID int64) ([]models.Film, error) {
	if userID <= 0 || friendID <= 0 {
		return nil, apperr.Validation("userId and friendId are required")
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(friendID); err != nil {
		return nil, err
	}
	return s.films.Common(userID, friendID)
}

// Recommendations returns films liked by users with overlapping taste
// that the given user has not liked yet. No neighbors means an empty
// list, not an error.
func (s *FilmService) Recommendations(ctx context.Context, userID int64) ([]models.Film, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, err
	}
	cacheKey := recommendationKey(userID)
	var cached []models.Film
	if s.cacheGet(ctx, cacheKey, &cached) {
		return cached, nil
	}

	films, err := s.films.Recommendations(userID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, cacheKey, films, recommendationCacheTTL)
	return films, nil
}

// ByDirector returns the director's films sorted by year or by likes.
func (s *FilmService) ByDirector(directorID int64, sortBy string) ([]models.Film, error) {
	if sortBy != "year" && sortBy != "likes" {
		return nil, apperr.Validation("sortBy must be year or likes")
	}
	if _, err := s.directors.FindByID(directorID); err != nil {
		return nil, err
	}
	return s.films.ByDirector(directorID, sortBy)
}

// Search finds films by substring of the title and/or director name.
// by is a comma-separated subset of {title, director}; empty means both.
func (s *FilmService) Search(query, by string) ([]models.Film, error) {
	byTitle, byDirector := false, false
	if by == "" {
		byTitle, byDirector = true, true
	}
	for _, field := range strings.Split(by, ",") {
		switch strings.TrimSpace(field) {
		case "title":
			byTitle = true
		case "director":
			byDirector = true
		case "":
		default:
			return nil, apperr.Validation("search field %q is not supported", field)
		}
	}
	return s.films.Search(query, byTitle, byDirector)
}

// resolveReferences verifies that every referenced mpa, genre and
// director exists and replaces the request copies with canonical ones.
// Duplicated genre and director ids collapse to one association.
func (s *FilmService) resolveReferences(film *models.Film) error {
	if film.Mpa != nil {
		mpa, err := s.mpa.FindByID(film.Mpa.ID)
		if apperr.IsNotFound(err) {
			return apperr.InvalidReference("mpa rating", int64(film.Mpa.ID))
		}
		if err != nil {
			return err
		}
		film.Mpa = mpa
	}

	seenGenres := make(map[int]struct{}, len(film.Genres))
	genres := make([]models.Genre, 0, len(film.Genres))
	for _, genre := range film.Genres {
		if _, ok := seenGenres[genre.ID]; ok {
			continue
		}
		seenGenres[genre.ID] = struct{}{}
		resolved, err := s.genres.FindByID(genre.ID)
		if apperr.IsNotFound(err) {
			return apperr.InvalidReference("genre", int64(genre.ID))
		}
		if err != nil {
			return err
		}
		genres = append(genres, *resolved)
	}
	film.Genres = genres

	seenDirectors := make(map[int64]struct{}, len(film.Directors))
	directors := make([]models.Director, 0, len(film.Directors))
	for _, director := range film.Directors {
		if _, ok := seenDirectors[director.ID]; ok {
			continue
		}
		seenDirectors[director.ID] = struct{}{}
		resolved, err := s.directors.FindByID(director.ID)
		if apperr.IsNotFound(err) {
			return apperr.InvalidReference("director", director.ID)
		}
		if err != nil {
			return err
		}
		directors = append(directors, *resolved)
	}
	film.Directors = directors
	return nil
}

// recordLike emits the feed event and drops every cached popularity
// ranking and recommendation list, which the like just invalidated.
// A like shifts rankings for all users, not only the acting one.
func (s *FilmService) recordLike(ctx context.Context, userID, filmID int64, operation string) {
	if _, err := s.feed.Record(userID, filmID, models.EventTypeLike, operation); err != nil {
		slog.Warn("failed to record feed event", "user_id", userID, "type", models.EventTypeLike, "error", err)
	}
	s.cacheDelPattern(ctx, popularKeyPattern)
	s.cacheDelPattern(ctx, recommendationKeyPattern)
}

func popularKey(count, genreID, year int) string {
	return fmt.Sprintf("films:popular:%d:%d:%d", count, genreID, year)
}

func recommendationKey(userID int64) string {
	return fmt.Sprintf("recommendations:%d", userID)
}

func (s *FilmService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.rdb == nil {
		return false
	}
	cached, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		return false
	}
	slog.Debug("cache hit", "key", key)
	return true
}

func (s *FilmService) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.rdb == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		s.rdb.Set(ctx, key, data, ttl)
	}
}

func (s *FilmService) cacheDelPattern(ctx context.Context, pattern string) {
	if s.rdb == nil {
		return
	}
	iter := s.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		s.rdb.Del(ctx, iter.Val())
	}
}
