package memory

import (
	"sort"
	"strings"
	"sync"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

// FilmStorage stores films and the like relation in memory.
type FilmStorage struct {
	mu     sync.Mutex
	films  map[int64]models.Film
	likes  map[int64]map[int64]struct{} // film -> liker set
	nextID int64
}

// NewFilmStorage creates an empty FilmStorage.
func NewFilmStorage() *FilmStorage {
	return &FilmStorage{
		films: make(map[int64]models.Film),
		likes: make(map[int64]map[int64]struct{}),
	}
}

func (s *FilmStorage) Create(film models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	film.ID = s.nextID
	s.films[film.ID] = cloneFilm(film)
	return &film, nil
}

func (s *FilmStorage) Update(film models.Film) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.films[film.ID]; !ok {
		return nil, apperr.NotFound("film", film.ID)
	}
	s.films[film.ID] = cloneFilm(film)
	return &film, nil
}

func (s *FilmStorage) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.films, id)
	delete(s.likes, id)
	return nil
}

func (s *FilmStorage) FindByID(id int64) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	film, ok := s.films[id]
	if !ok {
		return nil, apperr.NotFound("film", id)
	}
	copy := cloneFilm(film)
	return &copy, nil
}

func (s *FilmStorage) FindAll() ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	films := make([]models.Film, 0, len(s.films))
	for _, film := range s.films {
		films = append(films, cloneFilm(film))
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (s *FilmStorage) AddLike(filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likes[filmID] == nil {
		s.likes[filmID] = make(map[int64]struct{})
	}
	s.likes[filmID][userID] = struct{}{}
	return nil
}

func (s *FilmStorage) RemoveLike(filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.likes[filmID], userID)
	return nil
}

func (s *FilmStorage) RemoveUserLikes(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, likers := range s.likes {
		delete(likers, userID)
	}
	return nil
}

func (s *FilmStorage) Popular(limit int, genreID int, year int) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type ranked struct {
		film  models.Film
		likes int
	}
	candidates := make([]ranked, 0)
	for id, film := range s.films {
		likeCount := len(s.likes[id])
		if likeCount == 0 {
			continue
		}
		if genreID > 0 && !hasGenre(film, genreID) {
			continue
		}
		if year > 0 && film.ReleaseYear() != year {
			continue
		}
		candidates = append(candidates, ranked{film: cloneFilm(film), likes: likeCount})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].likes != candidates[j].likes {
			return candidates[i].likes > candidates[j].likes
		}
		return candidates[i].film.ID < candidates[j].film.ID
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	films := make([]models.Film, 0, len(candidates))
	for _, c := range candidates {
		films = append(films, c.film)
	}
	return films, nil
}

func (s *FilmStorage) Common(userID, friendID int64) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type ranked struct {
		film  models.Film
		likes int
	}
	candidates := make([]ranked, 0)
	for id, likers := range s.likes {
		_, likedByUser := likers[userID]
		_, likedByFriend := likers[friendID]
		if !likedByUser || !likedByFriend {
			continue
		}
		if film, ok := s.films[id]; ok {
			candidates = append(candidates, ranked{film: cloneFilm(film), likes: len(likers)})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].likes != candidates[j].likes {
			return candidates[i].likes > candidates[j].likes
		}
		return candidates[i].film.ID < candidates[j].film.ID
	})
	films := make([]models.Film, 0, len(candidates))
	for _, c := range candidates {
		films = append(films, c.film)
	}
	return films, nil
}

func (s *FilmStorage) Recommendations(userID int64) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Neighbor weight = number of films both users liked.
	weights := make(map[int64]int)
	for _, likers := range s.likes {
		if _, ok := likers[userID]; !ok {
			continue
		}
		for other := range likers {
			if other != userID {
				weights[other]++
			}
		}
	}

	// Candidate films: liked by a neighbor, not by the user. Ranked by
	// the strongest neighbor that liked them.
	best := make(map[int64]int)
	for filmID, likers := range s.likes {
		if _, ok := likers[userID]; ok {
			continue
		}
		for liker := range likers {
			if w, ok := weights[liker]; ok && w > best[filmID] {
				best[filmID] = w
			}
		}
	}

	films := make([]models.Film, 0, len(best))
	for filmID := range best {
		if film, ok := s.films[filmID]; ok {
			films = append(films, cloneFilm(film))
		}
	}
	sort.Slice(films, func(i, j int) bool {
		if best[films[i].ID] != best[films[j].ID] {
			return best[films[i].ID] > best[films[j].ID]
		}
		return films[i].ID < films[j].ID
	})
	return films, nil
}

func (s *FilmStorage) ByDirector(directorID int64, sortBy string) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	films := make([]models.Film, 0)
	for _, film := range s.films {
		for _, director := range film.Directors {
			if director.ID == directorID {
				films = append(films, cloneFilm(film))
				break
			}
		}
	}
	if sortBy == "likes" {
		sort.Slice(films, func(i, j int) bool {
			li, lj := len(s.likes[films[i].ID]), len(s.likes[films[j].ID])
			if li != lj {
				return li > lj
			}
			return films[i].ID < films[j].ID
		})
	} else {
		sort.Slice(films, func(i, j int) bool {
			if films[i].ReleaseDate != films[j].ReleaseDate {
				return films[i].ReleaseDate < films[j].ReleaseDate
			}
			return films[i].ID < films[j].ID
		})
	}
	return films, nil
}

func (s *FilmStorage) Search(query string, byTitle, byDirector bool) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(query)
	films := make([]models.Film, 0)
	for _, film := range s.films {
		match := byTitle && strings.Contains(strings.ToLower(film.Name), needle)
		if !match && byDirector {
			for _, director := range film.Directors {
				if strings.Contains(strings.ToLower(director.Name), needle) {
					match = true
					break
				}
			}
		}
		if match {
			films = append(films, cloneFilm(film))
		}
	}
	sort.Slice(films, func(i, j int) bool {
		li, lj := len(s.likes[films[i].ID]), len(s.likes[films[j].ID])
		if li != lj {
			return li > lj
		}
		return films[i].ID < films[j].ID
	})
	return films, nil
}

func hasGenre(film models.Film, genreID int) bool {
	for _, genre := range film.Genres {
		if genre.ID == genreID {
			return true
		}
	}
	return false
}

func cloneFilm(film models.Film) models.Film {
	copy := film
	copy.Genres = append([]models.Genre(nil), film.Genres...)
	copy.Directors = append([]models.Director(nil), film.Directors...)
	if film.Mpa != nil {
		mpa := *film.Mpa
		copy.Mpa = &mpa
	}
	return copy
}
