package review

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/unihive/unihive/core"
	"github.com/unihive/unihive/core/anon"
)

// Review is one user's take on an entity. Reviews are never edited in place:
// they are created once and removable only by their author.
type Review struct {
	ID          string    `json:"id" db:"id"`
	EntityType  string    `json:"entity_type" db:"entity_type"`
	EntityID    string    `json:"entity_id" db:"entity_id"`
	UserID      string    `json:"-" db:"user_id"`
	AuthorName  string    `json:"-" db:"author_name"` // real username snapshot, never shown when anonymous
	Author      string    `json:"author" db:"-"`      // display name: username or derived pseudonym
	IsAnonymous bool      `json:"is_anonymous" db:"is_anonymous"`
	Rating      int       `json:"rating" db:"rating"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

// DisplayName is the name shown next to the review. Anonymous reviews get
// the stable per-(user, entity) pseudonym; it is recomputed, never stored.
func (r Review) DisplayName() string {
	if r.IsAnonymous {
		return anon.Pseudonym(r.UserID, r.EntityType, r.EntityID)
	}
	return r.AuthorName
}

// NewReview contains information needed to submit a Review.
type NewReview struct {
	EntityType  string `json:"entity_type" validate:"required,oneof=course company"`
	EntityID    string `json:"entity_id" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Content     string `json:"content" validate:"required"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (nr *NewReview) Validate(validate *validator.Validate) error {
	nr.EntityType = core.CleanString(nr.EntityType, true /* lower */)
	nr.EntityID = core.CleanString(nr.EntityID)
	nr.Content = core.CleanString(nr.Content)
	return validate.Struct(nr)
}
