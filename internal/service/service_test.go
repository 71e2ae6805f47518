package service

import (
	"fmt"
	"testing"

	"filmorate-service/internal/models"
	"filmorate-service/internal/storage/memory"
)

// fixture wires every service against in-memory storage. No cache.
type fixture struct {
	users   *UserService
	films   *FilmService
	reviews *ReviewService
	feed    *FeedService
}

func newFixture() *fixture {
	userStorage := memory.NewUserStorage()
	filmStorage := memory.NewFilmStorage()
	feed := NewFeedService(memory.NewFeedStorage())
	return &fixture{
		users:   NewUserService(userStorage, memory.NewFriendshipStorage(), filmStorage, feed),
		films:   NewFilmService(filmStorage, userStorage, memory.NewGenreStorage(), memory.NewMpaStorage(), memory.NewDirectorStorage(), feed, nil),
		reviews: NewReviewService(memory.NewReviewStorage(), userStorage, filmStorage, feed),
		feed:    feed,
	}
}

func (f *fixture) mustUser(t *testing.T, login string) *models.User {
	t.Helper()
	user, err := f.users.Create(models.User{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: "1990-01-01",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", login, err)
	}
	return user
}

func (f *fixture) mustFilm(t *testing.T, name string) *models.Film {
	t.Helper()
	film, err := f.films.Create(models.Film{
		Name:        name,
		Description: fmt.Sprintf("about %s", name),
		ReleaseDate: "2005-06-01",
		Duration:    120,
	})
	if err != nil {
		t.Fatalf("create film %s: %v", name, err)
	}
	return film
}

func filmIDs(films []models.Film) []int64 {
	ids := make([]int64, 0, len(films))
	for _, film := range films {
		ids = append(ids, film.ID)
	}
	return ids
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
