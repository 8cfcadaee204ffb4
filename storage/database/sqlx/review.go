package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/unihive/unihive/core/review"
)

// psql unique_violation class
const pqUniqueViolation = "23505"

type reviewRepository struct {
	db *sqlx.DB
}

var _ review.Repository = (*reviewRepository)(nil) // interface compliance check

func NewReviewRepository(db *sqlx.DB) *reviewRepository {
	return &reviewRepository{db: db}
}

func (repo reviewRepository) CreateReview(ctx context.Context, rev review.Review) (review.Review, error) {
	query := `
INSERT INTO review (id, entity_type, entity_id, user_id, author_name, is_anonymous, rating, content, created_at)
VALUES (:id, :entity_type, :entity_id, :user_id, :author_name, :is_anonymous, :rating, :content, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, query, rev); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return review.Review{}, review.ErrAlreadyReviewed
		}
		return review.Review{}, errors.Wrap(err, "inserting review")
	}
	return rev, nil
}

func (repo reviewRepository) QueryReviews(ctx context.Context, entityType, entityID string) ([]review.Review, error) {
	reviews := make([]review.Review, 0)
	query := `SELECT * FROM review WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC`
	if err := repo.db.SelectContext(ctx, &reviews, query, entityType, entityID); err != nil {
		return nil, errors.Wrap(err, "querying reviews")
	}
	return reviews, nil
}

func (repo reviewRepository) GetReviewByID(ctx context.Context, id string) (review.Review, error) {
	var rev review.Review
	if err := repo.db.GetContext(ctx, &rev, `SELECT * FROM review WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return review.Review{}, review.ErrNotFound
		}
		return review.Review{}, errors.Wrap(err, "getting review")
	}
	return rev, nil
}

func (repo reviewRepository) DeleteReview(ctx context.Context, id, userID string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM review WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errors.Wrap(err, "deleting review")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return review.ErrNotFound
	}
	return nil
}

func (repo reviewRepository) EntityRatings(ctx context.Context, entityType, entityID string) ([]int, error) {
	ratings := make([]int, 0)
	query := `SELECT rating FROM review WHERE entity_type = $1 AND entity_id = $2`
	if err := repo.db.SelectContext(ctx, &ratings, query, entityType, entityID); err != nil {
		return nil, errors.Wrap(err, "querying entity ratings")
	}
	return ratings, nil
}
