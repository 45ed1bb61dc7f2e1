package usecase

import (
	"context"
	"errors"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type resourceUsecase[T any, PT domain.Resource[T], P any] struct {
	kind     string
	repo     domain.OwnedRepository[T, P]
	validate *validator.Validate
	audit    *security.SecurityLogger
	now      func() time.Time
}

// NewResourceUsecase builds the owner-scoped CRUD rules for one resource kind.
// kind is the singular display name used in error messages, e.g. "Job".
func NewResourceUsecase[T any, PT domain.Resource[T], P any](
	kind string,
	repo domain.OwnedRepository[T, P],
	validate *validator.Validate,
	audit *security.SecurityLogger,
) domain.ResourceUsecase[T, P] {
	if audit == nil {
		audit = security.DefaultLogger()
	}
	return &resourceUsecase[T, PT, P]{
		kind:     kind,
		repo:     repo,
		validate: validate,
		audit:    audit,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func NewJobUsecase(repo domain.JobRepository, validate *validator.Validate, audit *security.SecurityLogger) domain.JobUsecase {
	return NewResourceUsecase[domain.Job, *domain.Job]("Job", repo, validate, audit)
}

func NewEducationUsecase(repo domain.EducationRepository, validate *validator.Validate, audit *security.SecurityLogger) domain.EducationUsecase {
	return NewResourceUsecase[domain.Education, *domain.Education]("Education", repo, validate, audit)
}

func NewProjectUsecase(repo domain.ProjectRepository, validate *validator.Validate, audit *security.SecurityLogger) domain.ProjectUsecase {
	return NewResourceUsecase[domain.Project, *domain.Project]("Project", repo, validate, audit)
}

func NewServiceUsecase(repo domain.ServiceRepository, validate *validator.Validate, audit *security.SecurityLogger) domain.ServiceUsecase {
	return NewResourceUsecase[domain.Service, *domain.Service]("Service", repo, validate, audit)
}

// caller returns the authenticated owner. Every dashboard operation is filtered by it.
func caller(ctx context.Context) (string, error) {
	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return userID, nil
}

func (u *resourceUsecase[T, PT, P]) List(ctx context.Context) ([]T, error) {
	owner, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	return u.ListForOwner(ctx, owner)
}

func (u *resourceUsecase[T, PT, P]) Get(ctx context.Context, id string) (*T, error) {
	owner, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	item, err := u.repo.GetByIDAndOwner(ctx, id, owner)
	if err != nil {
		return nil, u.ownedErr(ctx, err, id, owner)
	}
	return item, nil
}

// Create discards any id, owner or timestamps sent by the client before persisting.
func (u *resourceUsecase[T, PT, P]) Create(ctx context.Context, item *T) (*T, error) {
	owner, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	now := u.now()
	*PT(item).Meta() = domain.Ownership{ID: id.String(), UserID: owner, CreatedAt: now, UpdatedAt: now}

	if err := u.validate.Struct(item); err != nil {
		return nil, apperror.Validation("invalid input", validation.FormatValidationErrors(err))
	}

	if err := u.repo.Create(ctx, item); err != nil {
		return nil, apperror.Internal(err)
	}
	return item, nil
}

func (u *resourceUsecase[T, PT, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	owner, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.Validation("invalid input", validation.FormatValidationErrors(err))
	}

	item, err := u.repo.Update(ctx, id, owner, patch)
	if err != nil {
		return nil, u.ownedErr(ctx, err, id, owner)
	}
	return item, nil
}

func (u *resourceUsecase[T, PT, P]) Delete(ctx context.Context, id string) error {
	owner, err := caller(ctx)
	if err != nil {
		return err
	}
	if err := u.repo.DeleteByIDAndOwner(ctx, id, owner); err != nil {
		return u.ownedErr(ctx, err, id, owner)
	}
	return nil
}

func (u *resourceUsecase[T, PT, P]) ListForOwner(ctx context.Context, ownerID string) ([]T, error) {
	items, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

func (u *resourceUsecase[T, PT, P]) GetForOwner(ctx context.Context, ownerID, id string) (*T, error) {
	item, err := u.repo.GetByIDAndOwner(ctx, id, ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound(u.kind + " not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return item, nil
}

// ownedErr hides whether the row is missing or belongs to someone else; both are a 404.
func (u *resourceUsecase[T, PT, P]) ownedErr(ctx context.Context, err error, id, owner string) error {
	if errors.Is(err, domain.ErrNotFound) {
		u.audit.LogOwnershipMiss(ctx, u.kind, id, owner)
		return apperror.NotFound(u.kind + " not found")
	}
	return apperror.Internal(err)
}
