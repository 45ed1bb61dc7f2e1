// Package repository assembles the storage backend selected by configuration.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository/memory"
	"portfolio-backend/internal/repository/postgres"
	"portfolio-backend/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repositories is every table the usecases need, bound to one backend.
type Repositories struct {
	Driver string

	Users      domain.UserRepository
	Passkeys   domain.PasskeyRepository
	Transactor domain.Transactor

	Jobs       domain.JobRepository
	Educations domain.EducationRepository
	Projects   domain.ProjectRepository
	Services   domain.ServiceRepository

	ping  func(ctx context.Context) error
	close func()
}

// Ping reports whether the backend is reachable. The Postgres backend connects on first use.
func (r *Repositories) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// SeedPasskey stores key as an unused registration passkey unless it already exists.
func (r *Repositories) SeedPasskey(ctx context.Context, key string) error {
	_, err := r.Passkeys.GetByKey(ctx, key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("seed passkey: %w", err)
	}
	pk := domain.Passkey{ID: uuid.NewString(), Key: key, CreatedAt: time.Now().UTC().Truncate(time.Microsecond)}
	if err := r.Passkeys.Create(ctx, &pk); err != nil {
		return fmt.Errorf("seed passkey: %w", err)
	}
	return nil
}

// Open selects the backend named by cfg.StorageDriver. It never dials the database.
func Open(cfg *config.Config, log *zap.Logger) (*Repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return NewPostgres(cfg.DBUrl, cfg.AutoMigrate, log), nil
	case config.StorageMemory:
		repos := NewMemory()
		if cfg.BootstrapPasskey != "" {
			if err := repos.SeedPasskey(context.Background(), cfg.BootstrapPasskey); err != nil {
				return nil, err
			}
			if log != nil {
				log.Info("Seeded bootstrap passkey for in-memory storage")
			}
		}
		return repos, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func NewMemory() *Repositories {
	store := memory.NewStore()
	return &Repositories{
		Driver:     config.StorageMemory,
		Users:      store.Users(),
		Passkeys:   store.Passkeys(),
		Transactor: store,
		Jobs:       memory.NewOwnedRepo[domain.Job, *domain.Job, domain.JobPatch](),
		Educations: memory.NewOwnedRepo[domain.Education, *domain.Education, domain.EducationPatch](),
		Projects:   memory.NewOwnedRepo[domain.Project, *domain.Project, domain.ProjectPatch](),
		Services:   memory.NewOwnedRepo[domain.Service, *domain.Service, domain.ServicePatch](),
	}
}

// NewPostgres binds every repository to a lazily connected pool. The first query connects
// (and migrates when autoMigrate is set); concurrent first queries share that attempt.
func NewPostgres(dsn string, autoMigrate bool, log *zap.Logger) *Repositories {
	conn := database.NewConnector(func(ctx context.Context) (database.DB, error) {
		pool, err := database.NewPostgresConnection(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if autoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return pool, nil
	}, log)

	return &Repositories{
		Driver:     config.StoragePostgres,
		Users:      postgres.NewUserRepository(conn),
		Passkeys:   postgres.NewPasskeyRepository(conn),
		Transactor: postgres.NewTransactor(conn),
		Jobs:       postgres.NewJobRepository(conn),
		Educations: postgres.NewEducationRepository(conn),
		Projects:   postgres.NewProjectRepository(conn),
		Services:   postgres.NewServiceRepository(conn),
		ping:       conn.Ping,
		close:      conn.Close,
	}
}
