package catalog

import (
	"context"
	"errors"

	"github.com/unihive/unihive/core/rating"
)

var ErrNotFound = errors.New("entity not found")

type (
	Repository interface {
		QueryCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		QueryCompanies(ctx context.Context) ([]Company, error)
		GetCompanyByID(ctx context.Context, id string) (Company, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryCourses(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryCourses(ctx)
}

func (svc *Service) GetCourseByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) QueryCompanies(ctx context.Context) ([]Company, error) {
	return svc.repo.QueryCompanies(ctx)
}

func (svc *Service) GetCompanyByID(ctx context.Context, id string) (Company, error) {
	return svc.repo.GetCompanyByID(ctx, id)
}

// ScoringTargets lists one target per catalog entity, the unit the score
// fetch-all operates on.
func (svc *Service) ScoringTargets(ctx context.Context) ([]rating.Target, error) {
	courses, err := svc.repo.QueryCourses(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := svc.repo.QueryCompanies(ctx)
	if err != nil {
		return nil, err
	}
	targets := make([]rating.Target, 0, len(courses)+len(companies))
	for _, c := range courses {
		targets = append(targets, c.ScoringTarget())
	}
	for _, c := range companies {
		targets = append(targets, c.ScoringTarget())
	}
	return targets, nil
}
