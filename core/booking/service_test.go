package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unihive/unihive/core/booking"
	inmemdb "github.com/unihive/unihive/storage/database/inmem"
)

var hall = booking.Venue{
	ID:       "venue-hall-a",
	Name:     "Lecture Hall A",
	Type:     "Room",
	Capacity: 50,
	Location: "Building 1, Floor 1",
}

func newTestService(t *testing.T) *booking.Service {
	t.Helper()
	db, err := inmemdb.Open()
	require.NoError(t, err)
	repo := inmemdb.NewBookingRepository(db)
	repo.SeedVenues(hall)
	return booking.NewService(repo)
}

func at(hour int) time.Time {
	return time.Date(2026, time.September, 14, hour, 0, 0, 0, time.UTC)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	b, err := svc.Create(ctx, booking.NewBooking{
		VenueID:    hall.ID,
		BookerName: "Student Council",
		StartTime:  at(10),
		EndTime:    at(12),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, hall.Name, b.VenueName)

	t.Run("unknown venue", func(t *testing.T) {
		_, err := svc.Create(ctx, booking.NewBooking{
			VenueID:    "nope",
			BookerName: "Student Council",
			StartTime:  at(10),
			EndTime:    at(12),
		})
		assert.Equal(t, booking.ErrVenueNotFound, err)
	})
}

func TestCreateRejectsOverlaps(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, booking.NewBooking{
		VenueID:    hall.ID,
		BookerName: "Chess Club",
		StartTime:  at(10),
		EndTime:    at(12),
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end time.Time
		wantErr    error
	}{
		{"same slot", at(10), at(12), booking.ErrVenueUnavailable},
		{"overlaps start", at(9), at(11), booking.ErrVenueUnavailable},
		{"overlaps end", at(11), at(13), booking.ErrVenueUnavailable},
		{"contained", at(10).Add(30 * time.Minute), at(11), booking.ErrVenueUnavailable},
		{"surrounds", at(9), at(13), booking.ErrVenueUnavailable},
		{"ends exactly at start", at(8), at(10), nil},
		{"starts exactly at end", at(12), at(14), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, booking.NewBooking{
				VenueID:    hall.ID,
				BookerName: "Debate Society",
				StartTime:  tt.start,
				EndTime:    tt.end,
			})
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestIsAvailable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	available, err := svc.IsAvailable(ctx, hall.ID, at(10), at(12))
	require.NoError(t, err)
	assert.True(t, available)

	_, err = svc.Create(ctx, booking.NewBooking{
		VenueID:    hall.ID,
		BookerName: "Film Society",
		StartTime:  at(10),
		EndTime:    at(12),
	})
	require.NoError(t, err)

	available, err = svc.IsAvailable(ctx, hall.ID, at(11), at(13))
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.IsAvailable(ctx, hall.ID, at(12), at(13))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	b, err := svc.Create(ctx, booking.NewBooking{
		VenueID:    hall.ID,
		BookerName: "Robotics Club",
		StartTime:  at(15),
		EndTime:    at(17),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.Equal(t, booking.ErrBookingNotFound, svc.Delete(ctx, b.ID))

	// slot is free again
	available, err := svc.IsAvailable(ctx, hall.ID, at(15), at(17))
	require.NoError(t, err)
	assert.True(t, available)
}
