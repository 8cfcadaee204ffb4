package post

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/unihive/unihive/core"
	"github.com/unihive/unihive/core/anon"
)

// feedScope is the entity scope pseudonyms are derived under for feed posts,
// so a user keeps one stable feed identity across posts.
const feedScope = "feed"

// Post is one entry in the anonymous community feed.
type Post struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"-" db:"user_id"`
	AuthorName  string    `json:"-" db:"author_name"`
	Author      string    `json:"author" db:"-"`
	IsAnonymous bool      `json:"is_anonymous" db:"is_anonymous"`
	Content     string    `json:"content" db:"content"`
	LikeCount   int       `json:"like_count" db:"like_count"`
	HasLiked    bool      `json:"has_liked" db:"-"` // whether the requesting user liked it
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

func (p Post) DisplayName() string {
	if p.IsAnonymous {
		return anon.Pseudonym(p.UserID, feedScope, "")
	}
	return p.AuthorName
}

type NewPost struct {
	Content     string `json:"content" validate:"required,max=2000"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (np *NewPost) Validate(validate *validator.Validate) error {
	np.Content = core.CleanString(np.Content)
	return validate.Struct(np)
}
