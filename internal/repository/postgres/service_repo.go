package postgres

import (
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/database"
)

func NewServiceRepository(db database.DB) domain.ServiceRepository {
	return newOwnedRepo[domain.Service, *domain.Service](db, kindColumns[domain.Service, domain.ServicePatch]{
		table: "services",
		names: []string{"title", "description", "icon"},
		dest: func(s *domain.Service) []any {
			return []any{&s.Title, &s.Description, &s.Icon}
		},
		values: func(s *domain.Service) []any {
			return []any{s.Title, s.Description, s.Icon}
		},
		changes: func(p domain.ServicePatch) []any {
			return []any{p.Title, p.Description, p.Icon}
		},
	})
}
