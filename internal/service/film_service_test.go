package service

import (
	"context"
	"path"
	"testing"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

func TestCreateFilmResolvesReferenceNames(t *testing.T) {
	f := newFixture()
	director, err := f.films.directors.Create(models.Director{Name: "Sofia Coppola"})
	if err != nil {
		t.Fatalf("create director: %v", err)
	}

	film, err := f.films.Create(models.Film{
		Name:        "Lost in Translation",
		ReleaseDate: "2003-09-12",
		Duration:    102,
		Mpa:         &models.Mpa{ID: 4},
		Genres:      []models.Genre{{ID: 2}, {ID: 2}},
		Directors:   []models.Director{{ID: director.ID}},
	})
	if err != nil {
		t.Fatalf("create film: %v", err)
	}
	if film.Mpa == nil || film.Mpa.Name != "R" {
		t.Fatalf("expected mpa resolved to R, got %+v", film.Mpa)
	}
	if len(film.Genres) != 1 || film.Genres[0].Name != "Drama" {
		t.Fatalf("expected duplicate genres collapsed and named, got %+v", film.Genres)
	}
	if len(film.Directors) != 1 || film.Directors[0].Name != "Sofia Coppola" {
		t.Fatalf("expected director resolved, got %+v", film.Directors)
	}
}

func TestCreateFilmRejectsUnknownGenre(t *testing.T) {
	f := newFixture()
	_, err := f.films.Create(models.Film{
		Name:        "Nowhere",
		ReleaseDate: "2001-01-01",
		Duration:    90,
		Genres:      []models.Genre{{ID: 999}},
	})
	if !apperr.IsInvalidReference(err) {
		t.Fatalf("expected invalid reference, got %v", err)
	}
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustUser(t, "alice")
	film := f.mustFilm(t, "Heat")

	if _, err := f.films.Like(ctx, film.ID, alice.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	// Liking twice is idempotent.
	if _, err := f.films.Like(ctx, film.ID, alice.ID); err != nil {
		t.Fatalf("like twice: %v", err)
	}

	popular, err := f.films.Popular(ctx, 10, 0, 0)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if len(popular) != 1 || popular[0].ID != film.ID {
		t.Fatalf("expected the liked film in popular, got %+v", popular)
	}

	if _, err := f.films.Unlike(ctx, film.ID, alice.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	popular, err = f.films.Popular(ctx, 10, 0, 0)
	if err != nil {
		t.Fatalf("popular after unlike: %v", err)
	}
	if len(popular) != 0 {
		t.Fatalf("expected no popular films after unlike, got %+v", popular)
	}
}

func TestPopularOrdersByLikesAndExcludesUnliked(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	users := make([]*models.User, 3)
	for i, login := range []string{"alice", "bob", "carol"} {
		users[i] = f.mustUser(t, login)
	}
	quiet := f.mustFilm(t, "Quiet One")
	modest := f.mustFilm(t, "Modest Hit")
	smash := f.mustFilm(t, "Smash Hit")

	for _, user := range users {
		if _, err := f.films.Like(ctx, smash.ID, user.ID); err != nil {
			t.Fatalf("like smash: %v", err)
		}
	}
	if _, err := f.films.Like(ctx, modest.ID, users[0].ID); err != nil {
		t.Fatalf("like modest: %v", err)
	}

	popular, err := f.films.Popular(ctx, 10, 0, 0)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	ids := filmIDs(popular)
	if len(ids) != 2 || ids[0] != smash.ID || ids[1] != modest.ID {
		t.Fatalf("expected [smash modest], got %v", ids)
	}
	if containsID(ids, quiet.ID) {
		t.Fatalf("film without likes must not appear in popular")
	}

	// Limit applies after ordering.
	popular, err = f.films.Popular(ctx, 1, 0, 0)
	if err != nil {
		t.Fatalf("popular limit 1: %v", err)
	}
	if len(popular) != 1 || popular[0].ID != smash.ID {
		t.Fatalf("expected only smash with limit 1, got %+v", popular)
	}
}

func TestCommonFilmsLikedByBothUsers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")
	shared := f.mustFilm(t, "Shared Taste")
	solo := f.mustFilm(t, "Solo Pick")

	for _, pair := range []struct{ filmID, userID int64 }{
		{shared.ID, alice.ID},
		{shared.ID, bob.ID},
		{solo.ID, alice.ID},
	} {
		if _, err := f.films.Like(ctx, pair.filmID, pair.userID); err != nil {
			t.Fatalf("like: %v", err)
		}
	}

	common, err := f.films.Common(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("common: %v", err)
	}
	if len(common) != 1 || common[0].ID != shared.ID {
		t.Fatalf("expected only the shared film, got %+v", common)
	}
}

func TestCommonFilmsRequireBothUserIDs(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")

	if _, err := f.films.Common(0, alice.ID); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for missing userId, got %v", err)
	}
	if _, err := f.films.Common(alice.ID, 0); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for missing friendId, got %v", err)
	}
}

func TestCacheKeysMatchInvalidationPatterns(t *testing.T) {
	if ok, err := path.Match(popularKeyPattern, popularKey(10, 2, 1999)); err != nil || !ok {
		t.Fatalf("popular key %q escapes pattern %q", popularKey(10, 2, 1999), popularKeyPattern)
	}
	if ok, err := path.Match(recommendationKeyPattern, recommendationKey(7)); err != nil || !ok {
		t.Fatalf("recommendation key %q escapes pattern %q", recommendationKey(7), recommendationKeyPattern)
	}
}

func TestRecommendationsFollowNeighborTaste(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")
	overlap := f.mustFilm(t, "Overlap")
	novel := f.mustFilm(t, "Novel Pick")

	// Alice and Bob share a like; Bob also liked another film.
	if _, err := f.films.Like(ctx, overlap.ID, alice.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := f.films.Like(ctx, overlap.ID, bob.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := f.films.Like(ctx, novel.ID, bob.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	recommended, err := f.films.Recommendations(ctx, alice.ID)
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	ids := filmIDs(recommended)
	if !containsID(ids, novel.ID) {
		t.Fatalf("expected the neighbor's film to be recommended, got %v", ids)
	}
	if containsID(ids, overlap.ID) {
		t.Fatalf("films the user already liked must not be recommended")
	}
}

func TestRecommendationsWithoutNeighborsIsEmpty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustUser(t, "alice")
	f.mustFilm(t, "Unseen")

	recommended, err := f.films.Recommendations(ctx, alice.ID)
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if len(recommended) != 0 {
		t.Fatalf("expected empty recommendations, got %+v", recommended)
	}
}

func TestByDirectorSortsByYearAndLikes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustUser(t, "alice")
	director, err := f.films.directors.Create(models.Director{Name: "Kelly Reichardt"})
	if err != nil {
		t.Fatalf("create director: %v", err)
	}

	older, err := f.films.Create(models.Film{
		Name:        "Old Joy",
		ReleaseDate: "2006-09-20",
		Duration:    73,
		Directors:   []models.Director{{ID: director.ID}},
	})
	if err != nil {
		t.Fatalf("create film: %v", err)
	}
	newer, err := f.films.Create(models.Film{
		Name:        "First Cow",
		ReleaseDate: "2020-03-06",
		Duration:    122,
		Directors:   []models.Director{{ID: director.ID}},
	})
	if err != nil {
		t.Fatalf("create film: %v", err)
	}
	if _, err := f.films.Like(ctx, newer.ID, alice.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	byYear, err := f.films.ByDirector(director.ID, "year")
	if err != nil {
		t.Fatalf("by director year: %v", err)
	}
	if ids := filmIDs(byYear); len(ids) != 2 || ids[0] != older.ID {
		t.Fatalf("expected oldest first, got %v", ids)
	}

	byLikes, err := f.films.ByDirector(director.ID, "likes")
	if err != nil {
		t.Fatalf("by director likes: %v", err)
	}
	if ids := filmIDs(byLikes); len(ids) != 2 || ids[0] != newer.ID {
		t.Fatalf("expected most liked first, got %v", ids)
	}

	if _, err := f.films.ByDirector(director.ID, "rating"); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for bad sortBy, got %v", err)
	}
}

func TestSearchByTitleAndDirector(t *testing.T) {
	f := newFixture()
	director, err := f.films.directors.Create(models.Director{Name: "Greta Gerwig"})
	if err != nil {
		t.Fatalf("create director: %v", err)
	}
	byTitle := f.mustFilm(t, "Lady Bird")
	byDirector, err := f.films.Create(models.Film{
		Name:        "Little Women",
		ReleaseDate: "2019-12-25",
		Duration:    135,
		Directors:   []models.Director{{ID: director.ID}},
	})
	if err != nil {
		t.Fatalf("create film: %v", err)
	}

	found, err := f.films.Search("bird", "title")
	if err != nil {
		t.Fatalf("search title: %v", err)
	}
	if ids := filmIDs(found); len(ids) != 1 || ids[0] != byTitle.ID {
		t.Fatalf("expected title match only, got %v", ids)
	}

	found, err = f.films.Search("gerwig", "director")
	if err != nil {
		t.Fatalf("search director: %v", err)
	}
	if ids := filmIDs(found); len(ids) != 1 || ids[0] != byDirector.ID {
		t.Fatalf("expected director match only, got %v", ids)
	}

	found, err = f.films.Search("l", "title,director")
	if err != nil {
		t.Fatalf("search both: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected both films, got %+v", found)
	}

	if _, err := f.films.Search("x", "mood"); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for bad search field, got %v", err)
	}
}

func TestLikeEmitsFeedEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustUser(t, "alice")
	film := f.mustFilm(t, "Heat")

	if _, err := f.films.Like(ctx, film.ID, alice.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	events, err := f.users.Feed(alice.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0]
	if event.EventType != models.EventTypeLike || event.Operation != models.OperationAdd || event.EntityID != film.ID {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.Timestamp == 0 {
		t.Fatalf("expected non-zero timestamp")
	}
}
