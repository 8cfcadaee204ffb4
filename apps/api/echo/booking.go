package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unihive/unihive/core/booking"
)

type bookingApi struct {
	deps ServerDeps
}

func registerBookingAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := bookingApi{deps: deps}

	g.GET("/venues", api.queryVenues)

	bg := g.Group("/bookings")
	bg.GET("", api.queryBookings)
	bg.POST("/check-availability", api.checkAvailability)

	ag := bg.Group("", jwt)
	ag.POST("", api.create)
	ag.DELETE("/:id", api.destroy)
}

func (api *bookingApi) queryVenues(ctx echo.Context) error {
	venues, err := api.deps.BookingSvc.QueryVenues(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying venues")
	}
	if venues == nil {
		venues = []booking.Venue{}
	}
	return ctx.JSON(http.StatusOK, venues)
}

func (api *bookingApi) queryBookings(ctx echo.Context) error {
	bookings, err := api.deps.BookingSvc.QueryBookings(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying bookings")
	}
	if bookings == nil {
		bookings = []booking.Booking{}
	}
	return ctx.JSON(http.StatusOK, bookings)
}

func (api *bookingApi) checkAvailability(ctx echo.Context) error {
	var data AvailabilityRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AvailabilityRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	available, err := api.deps.BookingSvc.IsAvailable(ctx.Request().Context(), data.VenueID, data.StartTime, data.EndTime)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, AvailabilityResponse{Available: available})
}

func (api *bookingApi) create(ctx echo.Context) error {
	var data booking.NewBooking
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBooking")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	b, err := api.deps.BookingSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, b)
}

func (api *bookingApi) destroy(ctx echo.Context) error {
	if err := api.deps.BookingSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	AvailabilityRequest struct {
		VenueID   string    `json:"venue_id" validate:"required"`
		StartTime time.Time `json:"start_time" validate:"required"`
		EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	}

	AvailabilityResponse struct {
		Available bool `json:"available"`
	}
)

func (ar *AvailabilityRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(ar)
}
