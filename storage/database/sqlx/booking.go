package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/unihive/unihive/core/booking"
)

type bookingRepository struct {
	db *sqlx.DB
}

var _ booking.Repository = (*bookingRepository)(nil) // interface compliance check

func NewBookingRepository(db *sqlx.DB) *bookingRepository {
	return &bookingRepository{db: db}
}

func (repo bookingRepository) QueryVenues(ctx context.Context) ([]booking.Venue, error) {
	venues := make([]booking.Venue, 0)
	if err := repo.db.SelectContext(ctx, &venues, `SELECT * FROM venue ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying venues")
	}
	return venues, nil
}

func (repo bookingRepository) GetVenueByID(ctx context.Context, id string) (booking.Venue, error) {
	var v booking.Venue
	if err := repo.db.GetContext(ctx, &v, `SELECT * FROM venue WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return booking.Venue{}, booking.ErrVenueNotFound
		}
		return booking.Venue{}, errors.Wrap(err, "getting venue")
	}
	return v, nil
}

func (repo bookingRepository) QueryBookings(ctx context.Context) ([]booking.Booking, error) {
	bookings := make([]booking.Booking, 0)
	query := `
SELECT b.id, b.venue_id, v.name AS venue_name, b.booker_name, b.start_time, b.end_time
FROM booking b
JOIN venue v ON v.id = b.venue_id
ORDER BY b.start_time`
	if err := repo.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, errors.Wrap(err, "querying bookings")
	}
	return bookings, nil
}

func (repo bookingRepository) QueryVenueBookingsOverlapping(ctx context.Context, venueID string, start, end time.Time) ([]booking.Booking, error) {
	bookings := make([]booking.Booking, 0)
	query := `
SELECT b.id, b.venue_id, v.name AS venue_name, b.booker_name, b.start_time, b.end_time
FROM booking b
JOIN venue v ON v.id = b.venue_id
WHERE b.venue_id = $1 AND b.start_time < $3 AND b.end_time > $2
ORDER BY b.start_time`
	if err := repo.db.SelectContext(ctx, &bookings, query, venueID, start.UTC(), end.UTC()); err != nil {
		return nil, errors.Wrap(err, "querying overlapping bookings")
	}
	return bookings, nil
}

func (repo bookingRepository) CreateBooking(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	query := `
INSERT INTO booking (id, venue_id, booker_name, start_time, end_time)
VALUES (:id, :venue_id, :booker_name, :start_time, :end_time)`
	if _, err := repo.db.NamedExecContext(ctx, query, b); err != nil {
		return booking.Booking{}, errors.Wrap(err, "inserting booking")
	}
	return b, nil
}

func (repo bookingRepository) DeleteBooking(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM booking WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting booking")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}
