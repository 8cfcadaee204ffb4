package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unihive/unihive/core/review"
)

type reviewApi struct {
	deps ServerDeps
}

func registerReviewAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := reviewApi{deps: deps}

	rg := g.Group("/reviews")
	rg.GET("", api.query)

	ag := rg.Group("", jwt)
	ag.POST("", api.create)
	ag.DELETE("/:id", api.destroy)
}

func (api *reviewApi) query(ctx echo.Context) error {
	entityType := ctx.QueryParam("entity_type")
	entityID := ctx.QueryParam("entity_id")

	reviews, err := api.deps.ReviewSvc.Query(ctx.Request().Context(), entityType, entityID)
	if err != nil {
		return errors.Wrap(err, "querying reviews")
	}
	if reviews == nil {
		reviews = []review.Review{}
	}
	return ctx.JSON(http.StatusOK, reviews)
}

func (api *reviewApi) create(ctx echo.Context) error {
	var data review.NewReview
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReview")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.deps.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	rev, err := api.deps.ReviewSvc.Create(ctx.Request().Context(), usr.ID, usr.Username, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, rev)
}

func (api *reviewApi) destroy(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.deps.UserSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if err := api.deps.ReviewSvc.Delete(ctx.Request().Context(), ctx.Param("id"), usr.ID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
