package inmemdb

import (
	"context"
	"sort"

	"github.com/unihive/unihive/core/post"
)

type postRepository struct {
	db *postTable
}

var _ post.Repository = (*postRepository)(nil) // interface compliance check

func NewPostRepository(db *DB) *postRepository {
	return &postRepository{db: db.post}
}

func (repo *postRepository) CreatePost(ctx context.Context, p post.Post) (post.Post, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[p.ID] = &p
	repo.db.likes[p.ID] = make(map[string]bool)
	return p, nil
}

func (repo *postRepository) QueryPosts(ctx context.Context) ([]post.Post, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	posts := make([]post.Post, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (repo *postRepository) GetPostByID(ctx context.Context, id string) (post.Post, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return post.Post{}, post.ErrNotFound
}

func (repo *postRepository) DeletePost(ctx context.Context, id, userID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	p, ok := repo.db.table[id]
	if !ok || p.UserID != userID {
		return post.ErrNotFound
	}
	delete(repo.db.table, id)
	delete(repo.db.likes, id)
	return nil
}

func (repo *postRepository) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if _, ok := repo.db.table[postID]; !ok {
		return false, post.ErrNotFound
	}
	return repo.db.likes[postID][userID], nil
}

func (repo *postRepository) AddLike(ctx context.Context, postID, userID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	p, ok := repo.db.table[postID]
	if !ok {
		return post.ErrNotFound
	}
	if repo.db.likes[postID][userID] {
		return nil // already liked
	}
	repo.db.likes[postID][userID] = true
	p.LikeCount++
	return nil
}

func (repo *postRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	p, ok := repo.db.table[postID]
	if !ok {
		return post.ErrNotFound
	}
	if !repo.db.likes[postID][userID] {
		return nil // was not liked
	}
	delete(repo.db.likes[postID], userID)
	if p.LikeCount > 0 {
		p.LikeCount--
	}
	return nil
}
