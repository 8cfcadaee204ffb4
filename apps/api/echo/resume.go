package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/unihive/unihive/core"
	scoringsvc "github.com/unihive/unihive/services/scoring"
)

type resumeApi struct {
	deps ServerDeps
}

func registerResumeAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := resumeApi{deps: deps}

	g.POST("/resume", api.upload, jwt)
}

// upload forwards the caller's resume to the scoring service. On success all
// cached scores are refetched in the background so they reflect the resume;
// every score fetched from now on is personalized.
func (api *resumeApi) upload(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("resume")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "resume", Error: "a resume file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "opening resume upload")
	}
	defer func() { _ = file.Close() }()

	result, err := api.deps.ScoringSvc.UploadResume(ctx.Request().Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		switch errors.Cause(err) {
		case scoringsvc.ErrResumeFileType, scoringsvc.ErrResumeTooLarge:
			return core.NewValidationError(nil, core.FieldError{Field: "resume", Error: err.Error()})
		}
		return errors.Wrap(err, "uploading resume")
	}

	api.deps.Fetcher.SetPersonalized(true)

	targets, err := api.deps.CatalogSvc.ScoringTargets(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing scoring targets")
	}
	go api.deps.Fetcher.Refresh(context.Background(), targets)

	return ctx.JSON(http.StatusOK, result)
}
