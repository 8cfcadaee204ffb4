package inmemdb

import (
	"context"
	"sort"

	"github.com/unihive/unihive/core/review"
)

type reviewRepository struct {
	db *reviewTable
}

var _ review.Repository = (*reviewRepository)(nil) // interface compliance check

func NewReviewRepository(db *DB) *reviewRepository {
	return &reviewRepository{db: db.review}
}

func (repo *reviewRepository) CreateReview(ctx context.Context, rev review.Review) (review.Review, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.table {
		if existing.UserID == rev.UserID && existing.EntityType == rev.EntityType && existing.EntityID == rev.EntityID {
			return review.Review{}, review.ErrAlreadyReviewed
		}
	}
	repo.db.table[rev.ID] = &rev
	return rev, nil
}

func (repo *reviewRepository) QueryReviews(ctx context.Context, entityType, entityID string) ([]review.Review, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	reviews := make([]review.Review, 0)
	for _, rev := range repo.db.table {
		if rev.EntityType == entityType && rev.EntityID == entityID {
			reviews = append(reviews, *rev)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

func (repo *reviewRepository) GetReviewByID(ctx context.Context, id string) (review.Review, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rev, ok := repo.db.table[id]; ok {
		return *rev, nil
	}
	return review.Review{}, review.ErrNotFound
}

func (repo *reviewRepository) DeleteReview(ctx context.Context, id, userID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rev, ok := repo.db.table[id]
	if !ok || rev.UserID != userID {
		return review.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *reviewRepository) EntityRatings(ctx context.Context, entityType, entityID string) ([]int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ratings := make([]int, 0)
	for _, rev := range repo.db.table {
		if rev.EntityType == entityType && rev.EntityID == entityID {
			ratings = append(ratings, rev.Rating)
		}
	}
	return ratings, nil
}
