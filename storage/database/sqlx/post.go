package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/unihive/unihive/core/post"
)

type postRepository struct {
	db *sqlx.DB
}

var _ post.Repository = (*postRepository)(nil) // interface compliance check

func NewPostRepository(db *sqlx.DB) *postRepository {
	return &postRepository{db: db}
}

func (repo postRepository) CreatePost(ctx context.Context, p post.Post) (post.Post, error) {
	query := `
INSERT INTO post (id, user_id, author_name, is_anonymous, content, like_count, created_at)
VALUES (:id, :user_id, :author_name, :is_anonymous, :content, :like_count, :created_at)`
	if _, err := repo.db.NamedExecContext(ctx, query, p); err != nil {
		return post.Post{}, errors.Wrap(err, "inserting post")
	}
	return p, nil
}

func (repo postRepository) QueryPosts(ctx context.Context) ([]post.Post, error) {
	posts := make([]post.Post, 0)
	if err := repo.db.SelectContext(ctx, &posts, `SELECT * FROM post ORDER BY created_at DESC`); err != nil {
		return nil, errors.Wrap(err, "querying posts")
	}
	return posts, nil
}

func (repo postRepository) GetPostByID(ctx context.Context, id string) (post.Post, error) {
	var p post.Post
	if err := repo.db.GetContext(ctx, &p, `SELECT * FROM post WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, errors.Wrap(err, "getting post")
	}
	return p, nil
}

func (repo postRepository) DeletePost(ctx context.Context, id, userID string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM post WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errors.Wrap(err, "deleting post")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (repo postRepository) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	var liked bool
	query := `SELECT EXISTS (SELECT 1 FROM post_like WHERE post_id = $1 AND user_id = $2)`
	if err := repo.db.GetContext(ctx, &liked, query, postID, userID); err != nil {
		return false, errors.Wrap(err, "checking like")
	}
	return liked, nil
}

// AddLike inserts the like row and bumps the count in one transaction so the
// stored count always matches the rows.
func (repo postRepository) AddLike(ctx context.Context, postID, userID string) error {
	return repo.withTx(ctx, "adding like", func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO post_like (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, postID, userID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil // already liked
		}
		_, err = tx.ExecContext(ctx, `UPDATE post SET like_count = like_count + 1 WHERE id = $1`, postID)
		return err
	})
}

func (repo postRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return repo.withTx(ctx, "removing like", func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM post_like WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil // was not liked
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE post SET like_count = like_count - 1 WHERE id = $1 AND like_count > 0`, postID)
		return err
	})
}

func (repo postRepository) withTx(ctx context.Context, msg string, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, msg)
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, msg)
	}
	return errors.Wrap(tx.Commit(), msg)
}
