package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrVenueNotFound   = errors.New("venue not found")
	ErrBookingNotFound = errors.New("booking not found")
	// ErrVenueUnavailable - an existing booking overlaps the requested slot.
	ErrVenueUnavailable = errors.New("venue is not available for the selected time")
)

type (
	Repository interface {
		QueryVenues(ctx context.Context) ([]Venue, error)
		GetVenueByID(ctx context.Context, id string) (Venue, error)
		// QueryBookings lists all bookings ordered by start time.
		QueryBookings(ctx context.Context) ([]Booking, error)
		// QueryVenueBookingsOverlapping returns the venue's bookings with
		// start < end AND end > start (half-open interval overlap).
		QueryVenueBookingsOverlapping(ctx context.Context, venueID string, start, end time.Time) ([]Booking, error)
		CreateBooking(ctx context.Context, b Booking) (Booking, error)
		DeleteBooking(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryVenues(ctx context.Context) ([]Venue, error) {
	return svc.repo.QueryVenues(ctx)
}

func (svc *Service) QueryBookings(ctx context.Context) ([]Booking, error) {
	return svc.repo.QueryBookings(ctx)
}

// IsAvailable reports whether a venue has no booking overlapping [start, end).
func (svc *Service) IsAvailable(ctx context.Context, venueID string, start, end time.Time) (bool, error) {
	overlapping, err := svc.repo.QueryVenueBookingsOverlapping(ctx, venueID, start, end)
	if err != nil {
		return false, err
	}
	return len(overlapping) == 0, nil
}

// Create books a venue, rejecting overlapping slots with ErrVenueUnavailable.
func (svc *Service) Create(ctx context.Context, nb NewBooking) (Booking, error) {
	venue, err := svc.repo.GetVenueByID(ctx, nb.VenueID)
	if err != nil {
		return Booking{}, err
	}

	available, err := svc.IsAvailable(ctx, venue.ID, nb.StartTime, nb.EndTime)
	if err != nil {
		return Booking{}, err
	}
	if !available {
		return Booking{}, ErrVenueUnavailable
	}

	b := Booking{
		ID:         uuid.New().String(),
		VenueID:    venue.ID,
		VenueName:  venue.Name,
		BookerName: nb.BookerName,
		StartTime:  nb.StartTime.UTC(),
		EndTime:    nb.EndTime.UTC(),
	}
	return svc.repo.CreateBooking(ctx, b)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteBooking(ctx, id)
}
