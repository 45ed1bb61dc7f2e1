package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, name, email, password_hash, picture, resume, bio, github, linkedin, twitter, website, created_at, updated_at`

type userRepo struct {
	db database.DB
}

func NewUserRepository(db database.DB) domain.UserRepository {
	return &userRepo{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Picture, &u.Resume, &u.Bio,
		&u.Socials.Github, &u.Socials.Linkedin, &u.Socials.Twitter, &u.Socials.Website,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Name, strings.ToLower(user.Email), user.PasswordHash, user.Picture, user.Resume, user.Bio,
		user.Socials.Github, user.Socials.Linkedin, user.Socials.Twitter, user.Socials.Website,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
		return nil, domain.ErrNotFound
	}
	return user, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

func (r *userRepo) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	var github, linkedin, twitter, website *string
	if s := patch.Socials; s != nil {
		github, linkedin, twitter, website = &s.Github, &s.Linkedin, &s.Twitter, &s.Website
	}

	query := `UPDATE users SET
                name = COALESCE($2, name),
                picture = COALESCE($3, picture),
                resume = COALESCE($4, resume),
                bio = COALESCE($5, bio),
                github = COALESCE($6, github),
                linkedin = COALESCE($7, linkedin),
                twitter = COALESCE($8, twitter),
                website = COALESCE($9, website),
                updated_at = NOW()
              WHERE id = $1
              RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query,
		id, patch.Name, patch.Picture, patch.Resume, patch.Bio, github, linkedin, twitter, website,
	))
}
