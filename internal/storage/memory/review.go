package memory

import (
	"sort"
	"sync"

	"filmorate-service/internal/apperr"
	"filmorate-service/internal/models"
)

// ReviewStorage stores reviews and reactions in memory.
type ReviewStorage struct {
	mu        sync.Mutex
	reviews   map[int64]models.Review
	reactions map[int64]map[int64]int // review -> user -> value
	nextID    int64
}

// NewReviewStorage creates an empty ReviewStorage.
func NewReviewStorage() *ReviewStorage {
	return &ReviewStorage{
		reviews:   make(map[int64]models.Review),
		reactions: make(map[int64]map[int64]int),
	}
}

func (s *ReviewStorage) Create(review models.Review) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	review.ReviewID = s.nextID
	review.Useful = 0
	s.reviews[review.ReviewID] = cloneReview(review)
	return &review, nil
}

func (s *ReviewStorage) Update(review models.Review) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.reviews[review.ReviewID]
	if !ok {
		return nil, apperr.NotFound("review", review.ReviewID)
	}
	stored.Content = review.Content
	isPositive := *review.IsPositive
	stored.IsPositive = &isPositive
	s.reviews[review.ReviewID] = stored
	result := cloneReview(stored)
	return &result, nil
}

func (s *ReviewStorage) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reviews, id)
	delete(s.reactions, id)
	return nil
}

func (s *ReviewStorage) FindByID(id int64) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.reviews[id]
	if !ok {
		return nil, apperr.NotFound("review", id)
	}
	result := cloneReview(review)
	return &result, nil
}

func (s *ReviewStorage) FindLimited(count int) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := make([]models.Review, 0, len(s.reviews))
	for _, review := range s.reviews {
		reviews = append(reviews, cloneReview(review))
	}
	return limitByUseful(reviews, count), nil
}

func (s *ReviewStorage) FindByFilm(filmID int64, count int) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := make([]models.Review, 0)
	for _, review := range s.reviews {
		if review.FilmID == filmID {
			reviews = append(reviews, cloneReview(review))
		}
	}
	return limitByUseful(reviews, count), nil
}

func (s *ReviewStorage) SetReaction(reviewID, userID int64, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.reviews[reviewID]
	if !ok {
		return apperr.NotFound("review", reviewID)
	}
	if value == 0 {
		delete(s.reactions[reviewID], userID)
	} else {
		if s.reactions[reviewID] == nil {
			s.reactions[reviewID] = make(map[int64]int)
		}
		s.reactions[reviewID][userID] = value
	}
	useful := 0
	for _, v := range s.reactions[reviewID] {
		useful += v
	}
	review.Useful = useful
	s.reviews[reviewID] = review
	return nil
}

func limitByUseful(reviews []models.Review, count int) []models.Review {
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].Useful != reviews[j].Useful {
			return reviews[i].Useful > reviews[j].Useful
		}
		return reviews[i].ReviewID < reviews[j].ReviewID
	})
	if len(reviews) > count {
		reviews = reviews[:count]
	}
	return reviews
}

func cloneReview(review models.Review) models.Review {
	copy := review
	if review.IsPositive != nil {
		isPositive := *review.IsPositive
		copy.IsPositive = &isPositive
	}
	return copy
}
