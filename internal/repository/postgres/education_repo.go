package postgres

import (
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/database"
)

func NewEducationRepository(db database.DB) domain.EducationRepository {
	return newOwnedRepo[domain.Education, *domain.Education](db, kindColumns[domain.Education, domain.EducationPatch]{
		table: "educations",
		names: []string{"title", "institution", "location", "start_date", "end_date", "description", "grade", "proof_link", "skills"},
		dest: func(e *domain.Education) []any {
			return []any{&e.Title, &e.Institution, &e.Location, &e.StartDate, &e.EndDate, &e.Description, &e.Grade, &e.ProofLink, skillsDest(&e.Skills)}
		},
		values: func(e *domain.Education) []any {
			return []any{e.Title, e.Institution, e.Location, e.StartDate, e.EndDate, e.Description, e.Grade, e.ProofLink, skillsValue(e.Skills)}
		},
		changes: func(p domain.EducationPatch) []any {
			return []any{p.Title, p.Institution, p.Location, p.StartDate, p.EndDate, p.Description, p.Grade, p.ProofLink, skillsArg(p.Skills)}
		},
	})
}
