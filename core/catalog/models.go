// Package catalog holds the entities being reviewed and rated: courses and
// companies.
package catalog

import (
	"github.com/unihive/unihive/core/rating"
)

// Entity type discriminators, as stored and as used in cache keys.
const (
	TypeCourse  = "course"
	TypeCompany = "company"
)

type Course struct {
	ID            string   `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	Code          string   `json:"code" db:"code"`
	Instructor    string   `json:"instructor" db:"instructor"`
	Credits       int      `json:"credits" db:"credits"`
	Description   string   `json:"description" db:"description"`
	Prerequisites []string `json:"prerequisites" db:"prerequisites"`
}

type Company struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Industry    string   `json:"industry" db:"industry"`
	Location    string   `json:"location" db:"location"`
	Description string   `json:"description" db:"description"`
	TechStack   []string `json:"tech_stack" db:"tech_stack"`
}

// ScoringTarget is the descriptive payload the compatibility service wants
// for a course.
func (c Course) ScoringTarget() rating.Target {
	return rating.Target{
		Type: TypeCourse,
		ID:   c.ID,
		Payload: map[string]interface{}{
			"id":            c.ID,
			"name":          c.Name,
			"code":          c.Code,
			"instructor":    c.Instructor,
			"credits":       c.Credits,
			"description":   c.Description,
			"prerequisites": c.Prerequisites,
		},
	}
}

func (c Company) ScoringTarget() rating.Target {
	return rating.Target{
		Type: TypeCompany,
		ID:   c.ID,
		Payload: map[string]interface{}{
			"id":          c.ID,
			"name":        c.Name,
			"industry":    c.Industry,
			"location":    c.Location,
			"description": c.Description,
			"tech_stack":  c.TechStack,
		},
	}
}
