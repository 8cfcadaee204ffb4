package inmemdb

import (
	"context"
	"sort"

	"github.com/unihive/unihive/core/catalog"
)

type catalogRepository struct {
	db *catalogTable
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{db: db.catalog}
}

// Seed loads courses and companies into the store, replacing same-ID entries.
func (repo *catalogRepository) Seed(courses []catalog.Course, companies []catalog.Company) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for i := range courses {
		repo.db.courses[courses[i].ID] = &courses[i]
	}
	for i := range companies {
		repo.db.companies[companies[i].ID] = &companies[i]
	}
}

func (repo *catalogRepository) QueryCourses(ctx context.Context) ([]catalog.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]catalog.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, *c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Code < courses[j].Code })
	return courses, nil
}

func (repo *catalogRepository) GetCourseByID(ctx context.Context, id string) (catalog.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.courses[id]; ok {
		return *c, nil
	}
	return catalog.Course{}, catalog.ErrNotFound
}

func (repo *catalogRepository) QueryCompanies(ctx context.Context) ([]catalog.Company, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	companies := make([]catalog.Company, 0, len(repo.db.companies))
	for _, c := range repo.db.companies {
		companies = append(companies, *c)
	}
	sort.Slice(companies, func(i, j int) bool { return companies[i].Name < companies[j].Name })
	return companies, nil
}

func (repo *catalogRepository) GetCompanyByID(ctx context.Context, id string) (catalog.Company, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.companies[id]; ok {
		return *c, nil
	}
	return catalog.Company{}, catalog.ErrNotFound
}
