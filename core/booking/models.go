package booking

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/unihive/unihive/core"
)

type Venue struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Type     string `json:"type" db:"type"`
	Capacity int    `json:"capacity" db:"capacity"`
	Location string `json:"location" db:"location"`
}

type Booking struct {
	ID         string    `json:"id" db:"id"`
	VenueID    string    `json:"venue_id" db:"venue_id"`
	VenueName  string    `json:"venue_name" db:"venue_name"`
	BookerName string    `json:"booker_name" db:"booker_name"`
	StartTime  time.Time `json:"start_time" db:"start_time"` // UTC
	EndTime    time.Time `json:"end_time" db:"end_time"`     // UTC
}

type NewBooking struct {
	VenueID    string    `json:"venue_id" validate:"required"`
	BookerName string    `json:"booker_name" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

func (nb *NewBooking) Validate(validate *validator.Validate) error {
	nb.BookerName = core.CleanString(nb.BookerName)
	return validate.Struct(nb)
}
