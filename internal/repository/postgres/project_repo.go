package postgres

import (
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/database"
)

func NewProjectRepository(db database.DB) domain.ProjectRepository {
	return newOwnedRepo[domain.Project, *domain.Project](db, kindColumns[domain.Project, domain.ProjectPatch]{
		table: "projects",
		names: []string{"title", "description", "skills", "icon", "live_link", "repo_link", "readme_link", "featured"},
		dest: func(p *domain.Project) []any {
			return []any{&p.Title, &p.Description, skillsDest(&p.Skills), &p.Icon, &p.LiveLink, &p.RepoLink, &p.ReadmeLink, &p.Featured}
		},
		values: func(p *domain.Project) []any {
			return []any{p.Title, p.Description, skillsValue(p.Skills), p.Icon, p.LiveLink, p.RepoLink, p.ReadmeLink, p.Featured}
		},
		changes: func(p domain.ProjectPatch) []any {
			return []any{p.Title, p.Description, skillsArg(p.Skills), p.Icon, p.LiveLink, p.RepoLink, p.ReadmeLink, p.Featured}
		},
	})
}
