package postgres

import (
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/database"

	"github.com/lib/pq"
)

func NewJobRepository(db database.DB) domain.JobRepository {
	return newOwnedRepo[domain.Job, *domain.Job](db, kindColumns[domain.Job, domain.JobPatch]{
		table: "jobs",
		names: []string{"title", "company_name", "location", "start_date", "end_date", "description", "skills", "company_logo"},
		dest: func(j *domain.Job) []any {
			return []any{&j.Title, &j.CompanyName, &j.Location, &j.StartDate, &j.EndDate, &j.Description, skillsDest(&j.Skills), &j.CompanyLogo}
		},
		values: func(j *domain.Job) []any {
			return []any{j.Title, j.CompanyName, j.Location, j.StartDate, j.EndDate, j.Description, skillsValue(j.Skills), j.CompanyLogo}
		},
		changes: func(p domain.JobPatch) []any {
			return []any{p.Title, p.CompanyName, p.Location, p.StartDate, p.EndDate, p.Description, skillsArg(p.Skills), p.CompanyLogo}
		},
	})
}

func skillsDest(s *domain.Skills) any {
	return pq.Array((*[]string)(s))
}

// skillsValue never writes NULL; the column is NOT NULL DEFAULT '{}'.
func skillsValue(s domain.Skills) any {
	if s == nil {
		s = domain.Skills{}
	}
	return pq.Array([]string(s))
}

func skillsArg(s *domain.Skills) any {
	if s == nil {
		return nil
	}
	return skillsValue(*s)
}
