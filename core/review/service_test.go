package review_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unihive/unihive/core/review"
	inmemdb "github.com/unihive/unihive/storage/database/inmem"
)

func newTestService(t *testing.T) *review.Service {
	t.Helper()
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return review.NewService(inmemdb.NewReviewRepository(db))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	nr := review.NewReview{
		EntityType:  "course",
		EntityID:    "course-cs101",
		Rating:      5,
		Content:     "Great intro course, well paced.",
		IsAnonymous: false,
	}
	rev, err := svc.Create(ctx, "usr-1", "jdoe", nr)
	require.NoError(t, err)
	assert.NotEmpty(t, rev.ID)
	assert.Equal(t, "usr-1", rev.UserID)
	assert.Equal(t, "jdoe", rev.AuthorName)
	assert.Equal(t, "jdoe", rev.Author)
	assert.False(t, rev.CreatedAt.IsZero())

	t.Run("second review of same entity is rejected", func(t *testing.T) {
		nr.Rating = 1
		nr.Content = "Changed my mind."
		_, err = svc.Create(ctx, "usr-1", "jdoe", nr)
		assert.Equal(t, review.ErrAlreadyReviewed, err)

		// the original review is untouched
		reviews, err := svc.Query(ctx, "course", "course-cs101")
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, 5, reviews[0].Rating)
	})

	t.Run("same user can review a different entity", func(t *testing.T) {
		nr.EntityID = "course-cs205"
		_, err = svc.Create(ctx, "usr-1", "jdoe", nr)
		assert.NoError(t, err)
	})

	t.Run("other users can review the same entity", func(t *testing.T) {
		nr.EntityID = "course-cs101"
		_, err = svc.Create(ctx, "usr-2", "asmith", nr)
		assert.NoError(t, err)
	})
}

func TestQueryOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, userID := range []string{"usr-1", "usr-2", "usr-3"} {
		_, err := svc.Create(ctx, userID, userID, review.NewReview{
			EntityType: "company",
			EntityID:   "company-andela",
			Rating:     4,
			Content:    "Solid engineering culture.",
		})
		require.NoError(t, err)
	}

	reviews, err := svc.Query(ctx, "company", "company-andela")
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	for i := 1; i < len(reviews); i++ {
		assert.False(t, reviews[i].CreatedAt.After(reviews[i-1].CreatedAt))
	}
}

func TestAnonymousAuthorName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	rev, err := svc.Create(ctx, "usr-1", "jdoe", review.NewReview{
		EntityType:  "course",
		EntityID:    "course-cs101",
		Rating:      3,
		Content:     "Average at best.",
		IsAnonymous: true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "jdoe", rev.Author)
	assert.NotEmpty(t, rev.Author)

	// pseudonym is stable across reads
	reviews, err := svc.Query(ctx, "course", "course-cs101")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, rev.Author, reviews[0].Author)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	rev, err := svc.Create(ctx, "usr-1", "jdoe", review.NewReview{
		EntityType: "course",
		EntityID:   "course-cs101",
		Rating:     2,
		Content:    "Too much homework.",
	})
	require.NoError(t, err)

	t.Run("other users cannot delete it", func(t *testing.T) {
		assert.Equal(t, review.ErrNotFound, svc.Delete(ctx, rev.ID, "usr-2"))
	})

	t.Run("the author can", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, rev.ID, "usr-1"))
		_, err = svc.GetByID(ctx, rev.ID)
		assert.Equal(t, review.ErrNotFound, err)
	})
}

func TestEntityRatings(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for i, rating := range []int{5, 3, 4} {
		userID := string(rune('a' + i))
		_, err := svc.Create(ctx, userID, userID, review.NewReview{
			EntityType: "course",
			EntityID:   "course-cs101",
			Rating:     rating,
			Content:    "ok",
		})
		require.NoError(t, err)
	}

	ratings, err := svc.EntityRatings(ctx, "course", "course-cs101")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{5, 3, 4}, ratings)

	ratings, err = svc.EntityRatings(ctx, "course", "course-none")
	require.NoError(t, err)
	assert.Empty(t, ratings)
}
