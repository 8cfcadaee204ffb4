package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/unihive/unihive/core/catalog"
)

type (
	courseRow struct {
		ID            string         `db:"id"`
		Name          string         `db:"name"`
		Code          string         `db:"code"`
		Instructor    string         `db:"instructor"`
		Credits       int            `db:"credits"`
		Description   string         `db:"description"`
		Prerequisites pq.StringArray `db:"prerequisites"`
	}

	companyRow struct {
		ID          string         `db:"id"`
		Name        string         `db:"name"`
		Industry    string         `db:"industry"`
		Location    string         `db:"location"`
		Description string         `db:"description"`
		TechStack   pq.StringArray `db:"tech_stack"`
	}
)

func (r courseRow) course() catalog.Course {
	return catalog.Course{
		ID:            r.ID,
		Name:          r.Name,
		Code:          r.Code,
		Instructor:    r.Instructor,
		Credits:       r.Credits,
		Description:   r.Description,
		Prerequisites: r.Prerequisites,
	}
}

func (r companyRow) company() catalog.Company {
	return catalog.Company{
		ID:          r.ID,
		Name:        r.Name,
		Industry:    r.Industry,
		Location:    r.Location,
		Description: r.Description,
		TechStack:   r.TechStack,
	}
}

type catalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (repo catalogRepository) QueryCourses(ctx context.Context) ([]catalog.Course, error) {
	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM course ORDER BY code`); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]catalog.Course, 0, len(rows))
	for _, r := range rows {
		courses = append(courses, r.course())
	}
	return courses, nil
}

func (repo catalogRepository) GetCourseByID(ctx context.Context, id string) (catalog.Course, error) {
	var r courseRow
	if err := repo.db.GetContext(ctx, &r, `SELECT * FROM course WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Course{}, catalog.ErrNotFound
		}
		return catalog.Course{}, errors.Wrap(err, "getting course")
	}
	return r.course(), nil
}

func (repo catalogRepository) QueryCompanies(ctx context.Context) ([]catalog.Company, error) {
	var rows []companyRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM company ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying companies")
	}
	companies := make([]catalog.Company, 0, len(rows))
	for _, r := range rows {
		companies = append(companies, r.company())
	}
	return companies, nil
}

func (repo catalogRepository) GetCompanyByID(ctx context.Context, id string) (catalog.Company, error) {
	var r companyRow
	if err := repo.db.GetContext(ctx, &r, `SELECT * FROM company WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Company{}, catalog.ErrNotFound
		}
		return catalog.Company{}, errors.Wrap(err, "getting company")
	}
	return r.company(), nil
}
