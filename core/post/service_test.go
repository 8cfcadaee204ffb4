package post_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unihive/unihive/core/post"
	inmemdb "github.com/unihive/unihive/storage/database/inmem"
)

func newTestService(t *testing.T) *post.Service {
	t.Helper()
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return post.NewService(inmemdb.NewPostRepository(db))
}

func TestCreateAndQuery(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.Create(ctx, "usr-1", "jdoe", post.NewPost{Content: "Anyone up for a study group?"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "jdoe", p.Author)
	assert.Zero(t, p.LikeCount)

	anon, err := svc.Create(ctx, "usr-2", "asmith", post.NewPost{Content: "Cafeteria food has gone downhill.", IsAnonymous: true})
	require.NoError(t, err)
	assert.NotEqual(t, "asmith", anon.Author)

	posts, err := svc.Query(ctx, "usr-1")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	// newest first
	assert.Equal(t, anon.ID, posts[0].ID)
	assert.Equal(t, p.ID, posts[1].ID)
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.Create(ctx, "usr-1", "jdoe", post.NewPost{Content: "Campus wifi is finally fixed."})
	require.NoError(t, err)

	count, liked, err := svc.ToggleLike(ctx, p.ID, "usr-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, liked)

	count, liked, err = svc.ToggleLike(ctx, p.ID, "usr-3")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.True(t, liked)

	// unlike restores the exact previous count
	count, liked, err = svc.ToggleLike(ctx, p.ID, "usr-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, liked)

	count, liked, err = svc.ToggleLike(ctx, p.ID, "usr-3")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.False(t, liked)

	t.Run("unknown post", func(t *testing.T) {
		_, _, err := svc.ToggleLike(ctx, "nope", "usr-2")
		assert.Equal(t, post.ErrNotFound, err)
	})
}

func TestQueryReportsRequestingUsersLikes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.Create(ctx, "usr-1", "jdoe", post.NewPost{Content: "Library opens 24/7 during exams."})
	require.NoError(t, err)

	_, _, err = svc.ToggleLike(ctx, p.ID, "usr-2")
	require.NoError(t, err)

	posts, err := svc.Query(ctx, "usr-2")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].HasLiked)

	posts, err = svc.Query(ctx, "usr-3")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.False(t, posts[0].HasLiked)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	p, err := svc.Create(ctx, "usr-1", "jdoe", post.NewPost{Content: "Selling my textbooks, DM me."})
	require.NoError(t, err)

	assert.Equal(t, post.ErrNotFound, svc.Delete(ctx, p.ID, "usr-2"))
	require.NoError(t, svc.Delete(ctx, p.ID, "usr-1"))

	posts, err := svc.Query(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, posts)
}
