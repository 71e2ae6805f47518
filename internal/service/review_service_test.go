package service

import (
	"testing"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func (f *fixture) mustReview(t *testing.T, userID, filmID int64, content string) *models.Review {
	t.Helper()
	review, err := f.reviews.Create(models.Review{
		Content:    content,
		IsPositive: boolPtr(true),
		UserID:     userID,
		FilmID:     filmID,
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	return review
}

func TestCreateReviewRequiresExistingFilmAndUser(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	film := f.mustFilm(t, "Heat")

	_, err := f.reviews.Create(models.Review{
		Content:    "great",
		IsPositive: boolPtr(true),
		UserID:     alice.ID,
		FilmID:     999,
	})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown film, got %v", err)
	}

	_, err = f.reviews.Create(models.Review{
		Content:    "great",
		IsPositive: boolPtr(true),
		UserID:     999,
		FilmID:     film.ID,
	})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

func TestCreateReviewRejectsMissingVerdict(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	film := f.mustFilm(t, "Heat")

	_, err := f.reviews.Create(models.Review{
		Content: "no verdict",
		UserID:  alice.ID,
		FilmID:  film.ID,
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReviewReactionsShiftUsefulness(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")
	film := f.mustFilm(t, "Heat")
	review := f.mustReview(t, alice.ID, film.ID, "tense and precise")

	liked, err := f.reviews.AddLike(review.ReviewID, bob.ID)
	if err != nil {
		t.Fatalf("add like: %v", err)
	}
	if liked.Useful != 1 {
		t.Fatalf("expected useful 1 after like, got %d", liked.Useful)
	}

	// Switching to a dislike replaces the reaction, a swing of two.
	disliked, err := f.reviews.AddDislike(review.ReviewID, bob.ID)
	if err != nil {
		t.Fatalf("add dislike: %v", err)
	}
	if disliked.Useful != -1 {
		t.Fatalf("expected useful -1 after switch, got %d", disliked.Useful)
	}

	cleared, err := f.reviews.RemoveReaction(review.ReviewID, bob.ID)
	if err != nil {
		t.Fatalf("remove reaction: %v", err)
	}
	if cleared.Useful != 0 {
		t.Fatalf("expected useful 0 after removal, got %d", cleared.Useful)
	}
}

func TestReviewsOrderedByUsefulness(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	bob := f.mustUser(t, "bob")
	film := f.mustFilm(t, "Heat")

	plain := f.mustReview(t, alice.ID, film.ID, "fine")
	praised := f.mustReview(t, bob.ID, film.ID, "a classic")
	if _, err := f.reviews.AddLike(praised.ReviewID, alice.ID); err != nil {
		t.Fatalf("add like: %v", err)
	}

	reviews, err := f.reviews.FindByParameter(film.ID, 10)
	if err != nil {
		t.Fatalf("find by film: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].ReviewID != praised.ReviewID || reviews[1].ReviewID != plain.ReviewID {
		t.Fatalf("expected most useful first, got %+v", reviews)
	}

	// filmID 0 spans all films; count caps the result.
	limited, err := f.reviews.FindByParameter(0, 1)
	if err != nil {
		t.Fatalf("find limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ReviewID != praised.ReviewID {
		t.Fatalf("expected only the most useful review, got %+v", limited)
	}
}

func TestReviewLifecycleEmitsFeedEvents(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	film := f.mustFilm(t, "Heat")
	review := f.mustReview(t, alice.ID, film.ID, "first take")

	updated := *review
	updated.Content = "second take"
	updated.IsPositive = boolPtr(false)
	if _, err := f.reviews.Update(updated); err != nil {
		t.Fatalf("update review: %v", err)
	}
	if _, err := f.reviews.Delete(review.ReviewID); err != nil {
		t.Fatalf("delete review: %v", err)
	}

	events, err := f.users.Feed(alice.ID)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	wantOps := []string{models.OperationAdd, models.OperationUpdate, models.OperationRemove}
	for i, event := range events {
		if event.EventType != models.EventTypeReview || event.Operation != wantOps[i] {
			t.Fatalf("unexpected event %d: %+v", i, event)
		}
		if event.EntityID != review.ReviewID {
			t.Fatalf("expected entity %d, got %d", review.ReviewID, event.EntityID)
		}
	}
}

func TestDeletedReviewIsGone(t *testing.T) {
	f := newFixture()
	alice := f.mustUser(t, "alice")
	film := f.mustFilm(t, "Heat")
	review := f.mustReview(t, alice.ID, film.ID, "short lived")

	if _, err := f.reviews.Delete(review.ReviewID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.reviews.FindByID(review.ReviewID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
