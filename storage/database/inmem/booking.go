package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/unihive/unihive/core/booking"
)

type bookingRepository struct {
	db *bookingTable
}

var _ booking.Repository = (*bookingRepository)(nil) // interface compliance check

func NewBookingRepository(db *DB) *bookingRepository {
	return &bookingRepository{db: db.booking}
}

// SeedVenues loads venues into the store, replacing any with the same ID.
func (repo *bookingRepository) SeedVenues(venues ...booking.Venue) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for i := range venues {
		repo.db.venues[venues[i].ID] = &venues[i]
	}
}

func (repo *bookingRepository) QueryVenues(ctx context.Context) ([]booking.Venue, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	venues := make([]booking.Venue, 0, len(repo.db.venues))
	for _, v := range repo.db.venues {
		venues = append(venues, *v)
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].Name < venues[j].Name })
	return venues, nil
}

func (repo *bookingRepository) GetVenueByID(ctx context.Context, id string) (booking.Venue, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if v, ok := repo.db.venues[id]; ok {
		return *v, nil
	}
	return booking.Venue{}, booking.ErrVenueNotFound
}

func (repo *bookingRepository) QueryBookings(ctx context.Context) ([]booking.Booking, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	bookings := make([]booking.Booking, 0, len(repo.db.bookings))
	for _, b := range repo.db.bookings {
		bookings = append(bookings, repo.withVenueName(*b))
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].StartTime.Before(bookings[j].StartTime) })
	return bookings, nil
}

func (repo *bookingRepository) QueryVenueBookingsOverlapping(ctx context.Context, venueID string, start, end time.Time) ([]booking.Booking, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	bookings := make([]booking.Booking, 0)
	for _, b := range repo.db.bookings {
		if b.VenueID == venueID && b.StartTime.Before(end) && b.EndTime.After(start) {
			bookings = append(bookings, repo.withVenueName(*b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].StartTime.Before(bookings[j].StartTime) })
	return bookings, nil
}

func (repo *bookingRepository) CreateBooking(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.bookings[b.ID] = &b
	return repo.withVenueName(b), nil
}

func (repo *bookingRepository) DeleteBooking(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.bookings[id]; !ok {
		return booking.ErrBookingNotFound
	}
	delete(repo.db.bookings, id)
	return nil
}

func (repo *bookingRepository) withVenueName(b booking.Booking) booking.Booking {
	if v, ok := repo.db.venues[b.VenueID]; ok {
		b.VenueName = v.Name
	}
	return b
}
