// Package storage declares the persistence capabilities the services
// depend on. Two implementations exist: postgres (production) and
// memory (tests and lightweight deployments).
package storage

import "filmorate-service/internal/models"

// UserStorage persists user records.
type UserStorage interface {
	Create(user models.User) (*models.User, error)
	Update(user models.User) (*models.User, error)
	Delete(id int64) error
	FindByID(id int64) (*models.User, error)
	FindAll() ([]models.User, error)
}

// FriendshipStorage persists directed friend-request edges with a
// pending/confirmed status.
type FriendshipStorage interface {
	// Request creates a pending edge user->friend. Re-adding is a no-op.
	Request(userID, friendID int64) error
	// Confirm flips the edge user->friend to confirmed. No-op if absent.
	Confirm(userID, friendID int64) error
	// Remove deletes the edge user->friend. Absence is not an error.
	Remove(userID, friendID int64) error
	// Friends returns the target ids of all confirmed edges from userID.
	Friends(userID int64) ([]int64, error)
	// RemoveUser deletes every edge touching userID, in both directions.
	RemoveUser(userID int64) error
}

// FilmStorage persists films, their associations and the like relation.
type FilmStorage interface {
	Create(film models.Film) (*models.Film, error)
	Update(film models.Film) (*models.Film, error)
	Delete(id int64) error
	FindByID(id int64) (*models.Film, error)
	FindAll() ([]models.Film, error)

	AddLike(filmID, userID int64) error
	RemoveLike(filmID, userID int64) error
	// RemoveUserLikes deletes every like placed by userID.
	RemoveUserLikes(userID int64) error

	// Popular returns films ordered by distinct-liker count descending,
	// film id ascending on ties. genreID and year of 0 mean no filter.
	// Films with no likes are excluded.
	Popular(limit int, genreID int, year int) ([]models.Film, error)
	// Common returns films liked by both users, most liked first.
	Common(userID, friendID int64) ([]models.Film, error)
	// Recommendations returns films liked by users with overlapping
	// likes that the given user has not liked yet, highest overlap first.
	Recommendations(userID int64) ([]models.Film, error)
	// ByDirector returns the director's films sorted by "year" or "likes".
	ByDirector(directorID int64, sortBy string) ([]models.Film, error)
	// Search finds films whose title and/or director name contains the
	// query, case-insensitively, most liked first.
	Search(query string, byTitle, byDirector bool) ([]models.Film, error)
}

// GenreStorage reads the fixed genre enumeration.
type GenreStorage interface {
	FindByID(id int) (*models.Genre, error)
	FindAll() ([]models.Genre, error)
}

// MpaStorage reads the fixed rating classification enumeration.
type MpaStorage interface {
	FindByID(id int) (*models.Mpa, error)
	FindAll() ([]models.Mpa, error)
}

// DirectorStorage persists directors.
type DirectorStorage interface {
	Create(director models.Director) (*models.Director, error)
	Update(director models.Director) (*models.Director, error)
	Delete(id int64) error
	FindByID(id int64) (*models.Director, error)
	FindAll() ([]models.Director, error)
}

// ReviewStorage persists reviews and their reactions.
type ReviewStorage interface {
	Create(review models.Review) (*models.Review, error)
	Update(review models.Review) (*models.Review, error)
	Delete(id int64) error
	FindByID(id int64) (*models.Review, error)
	// FindLimited returns reviews ordered by usefulness descending.
	FindLimited(count int) ([]models.Review, error)
	FindByFilm(filmID int64, count int) ([]models.Review, error)
	// SetReaction upserts the (review, user) reaction with the given
	// signed value and recomputes the review's usefulness. A value of 0
	// clears the reaction.
	SetReaction(reviewID, userID int64, value int) error
}

// FeedStorage persists the append-only activity feed.
type FeedStorage interface {
	Append(event models.Event) (*models.Event, error)
	// ForUser returns all events with the given actor, oldest first.
	ForUser(userID int64) ([]models.Event, error)
}
