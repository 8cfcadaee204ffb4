package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("post not found")

type (
	Repository interface {
		CreatePost(ctx context.Context, p Post) (Post, error)
		// QueryPosts lists the feed newest first.
		QueryPosts(ctx context.Context) ([]Post, error)
		GetPostByID(ctx context.Context, id string) (Post, error)
		// DeletePost removes a post owned by userID; ErrNotFound otherwise.
		DeletePost(ctx context.Context, id, userID string) error
		// HasLiked reports whether userID currently likes the post.
		HasLiked(ctx context.Context, postID, userID string) (bool, error)
		// AddLike / RemoveLike adjust the single like row for (post, user)
		// and the post's like count atomically.
		AddLike(ctx context.Context, postID, userID string) error
		RemoveLike(ctx context.Context, postID, userID string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID, authorName string, np NewPost) (Post, error) {
	p := Post{
		ID:          uuid.New().String(),
		UserID:      userID,
		AuthorName:  authorName,
		IsAnonymous: np.IsAnonymous,
		Content:     np.Content,
		CreatedAt:   time.Now().UTC(),
	}
	p, err := svc.repo.CreatePost(ctx, p)
	if err != nil {
		return Post{}, err
	}
	p.Author = p.DisplayName()
	return p, nil
}

// Query lists the feed newest first. When userID is non-empty each post's
// HasLiked reflects that user.
func (svc *Service) Query(ctx context.Context, userID string) ([]Post, error) {
	posts, err := svc.repo.QueryPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Author = posts[i].DisplayName()
		if userID != "" {
			liked, err := svc.repo.HasLiked(ctx, posts[i].ID, userID)
			if err != nil {
				return nil, err
			}
			posts[i].HasLiked = liked
		}
	}
	return posts, nil
}

func (svc *Service) Delete(ctx context.Context, id, userID string) error {
	return svc.repo.DeletePost(ctx, id, userID)
}

// ToggleLike flips userID's like on a post and returns the confirmed count
// and flag. Nothing is assumed before the store confirms: toggling twice
// always lands back exactly on the prior state.
func (svc *Service) ToggleLike(ctx context.Context, postID, userID string) (count int, hasLiked bool, err error) {
	liked, err := svc.repo.HasLiked(ctx, postID, userID)
	if err != nil {
		return 0, false, err
	}
	if liked {
		err = svc.repo.RemoveLike(ctx, postID, userID)
	} else {
		err = svc.repo.AddLike(ctx, postID, userID)
	}
	if err != nil {
		return 0, false, err
	}
	p, err := svc.repo.GetPostByID(ctx, postID)
	if err != nil {
		return 0, false, err
	}
	return p.LikeCount, !liked, nil
}
