package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unihive/unihive/core/catalog"
	"github.com/unihive/unihive/core/rating"
)

type entityApi struct {
	deps ServerDeps
}

func registerEntityAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := entityApi{deps: deps}

	g.GET("/courses", api.queryCourses)
	g.GET("/courses/:id", api.retrieveCourse)
	g.GET("/companies", api.queryCompanies)
	g.GET("/companies/:id", api.retrieveCompany)

	g.POST("/ratings/refresh", api.refreshRatings, jwt)
}

type (
	CourseResponse struct {
		catalog.Course
		Rating rating.Resolved `json:"rating"`
	}

	CompanyResponse struct {
		catalog.Company
		Rating rating.Resolved `json:"rating"`
	}
)

// resolveRating combines the cached external score with local review ratings
// into the single rating shown on an entity card.
func (api *entityApi) resolveRating(ctx context.Context, entityType, entityID string) (rating.Resolved, error) {
	score := api.deps.Fetcher.Score(entityType, entityID)
	local, err := api.deps.ReviewSvc.EntityRatings(ctx, entityType, entityID)
	if err != nil {
		return rating.Resolved{}, errors.Wrap(err, "querying entity ratings")
	}
	return rating.Resolve(score, local), nil
}

func (api *entityApi) queryCourses(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	courses, err := api.deps.CatalogSvc.QueryCourses(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}

	res := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		resolved, err := api.resolveRating(reqCtx, catalog.TypeCourse, course.ID)
		if err != nil {
			return err
		}
		res = append(res, CourseResponse{Course: course, Rating: resolved})
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *entityApi) retrieveCourse(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	course, err := api.deps.CatalogSvc.GetCourseByID(reqCtx, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting course")
	}

	resolved, err := api.resolveRating(reqCtx, catalog.TypeCourse, course.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, CourseResponse{Course: course, Rating: resolved})
}

func (api *entityApi) queryCompanies(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	companies, err := api.deps.CatalogSvc.QueryCompanies(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying companies")
	}

	res := make([]CompanyResponse, 0, len(companies))
	for _, company := range companies {
		resolved, err := api.resolveRating(reqCtx, catalog.TypeCompany, company.ID)
		if err != nil {
			return err
		}
		res = append(res, CompanyResponse{Company: company, Rating: resolved})
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *entityApi) retrieveCompany(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	company, err := api.deps.CatalogSvc.GetCompanyByID(reqCtx, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting company")
	}

	resolved, err := api.resolveRating(reqCtx, catalog.TypeCompany, company.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, CompanyResponse{Company: company, Rating: resolved})
}

// refreshRatings drops all settled scores and refetches every entity in the
// background. The request returns as soon as the refetch is scheduled.
func (api *entityApi) refreshRatings(ctx echo.Context) error {
	targets, err := api.deps.CatalogSvc.ScoringTargets(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing scoring targets")
	}

	go api.deps.Fetcher.Refresh(context.Background(), targets)

	return ctx.JSON(http.StatusAccepted, SuccessResponse{Success: "Rating refresh started."})
}
