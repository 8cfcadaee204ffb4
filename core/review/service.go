package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound = errors.New("review not found")
	// ErrAlreadyReviewed is the distinct one-review-per-(user, entity)
	// condition, translated from the store's uniqueness violation.
	ErrAlreadyReviewed = errors.New("you have already reviewed this item")
)

type (
	Repository interface {
		// CreateReview inserts a review; a duplicate (user, entity) pair
		// returns ErrAlreadyReviewed.
		CreateReview(ctx context.Context, rev Review) (Review, error)
		// QueryReviews lists an entity's reviews, newest first.
		QueryReviews(ctx context.Context, entityType, entityID string) ([]Review, error)
		GetReviewByID(ctx context.Context, id string) (Review, error)
		// DeleteReview removes a review owned by userID; ErrNotFound when the
		// review does not exist or belongs to someone else.
		DeleteReview(ctx context.Context, id, userID string) error
		// EntityRatings returns the bare rating values for an entity.
		EntityRatings(ctx context.Context, entityType, entityID string) ([]int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create submits a review on behalf of the authenticated user. The one
// review per (user, entity) invariant is enforced by the store; a second
// attempt surfaces as ErrAlreadyReviewed, never as an overwrite.
func (svc *Service) Create(ctx context.Context, userID, authorName string, nr NewReview) (Review, error) {
	rev := Review{
		ID:          uuid.New().String(),
		EntityType:  nr.EntityType,
		EntityID:    nr.EntityID,
		UserID:      userID,
		AuthorName:  authorName,
		IsAnonymous: nr.IsAnonymous,
		Rating:      nr.Rating,
		Content:     nr.Content,
		CreatedAt:   time.Now().UTC(),
	}
	rev, err := svc.repo.CreateReview(ctx, rev)
	if err != nil {
		return Review{}, err
	}
	rev.Author = rev.DisplayName()
	return rev, nil
}

// Query lists an entity's reviews newest first, with display names filled in.
func (svc *Service) Query(ctx context.Context, entityType, entityID string) ([]Review, error) {
	revs, err := svc.repo.QueryReviews(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	for i := range revs {
		revs[i].Author = revs[i].DisplayName()
	}
	return revs, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Review, error) {
	rev, err := svc.repo.GetReviewByID(ctx, id)
	if err != nil {
		return Review{}, err
	}
	rev.Author = rev.DisplayName()
	return rev, nil
}

func (svc *Service) Delete(ctx context.Context, id, userID string) error {
	return svc.repo.DeleteReview(ctx, id, userID)
}

// EntityRatings feeds the rating resolver's local-reviews source.
func (svc *Service) EntityRatings(ctx context.Context, entityType, entityID string) ([]int, error) {
	return svc.repo.EntityRatings(ctx, entityType, entityID)
}
