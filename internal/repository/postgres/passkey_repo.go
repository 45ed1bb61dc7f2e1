package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/database"

	"github.com/jackc/pgx/v5"
)

type passkeyRepo struct {
	db database.DB
}

func NewPasskeyRepository(db database.DB) domain.PasskeyRepository {
	return &passkeyRepo{db: db}
}

func (r *passkeyRepo) Create(ctx context.Context, pk *domain.Passkey) error {
	query := `INSERT INTO passkeys (id, key, used, used_at, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.Exec(ctx, query, pk.ID, pk.Key, pk.Used, pk.UsedAt, pk.CreatedAt); err != nil {
		return fmt.Errorf("insert passkey: %w", err)
	}
	return nil
}

func (r *passkeyRepo) GetByKey(ctx context.Context, key string) (*domain.Passkey, error) {
	query := `SELECT id, key, used, used_at, created_at FROM passkeys WHERE key = $1`
	var pk domain.Passkey
	err := r.db.QueryRow(ctx, query, key).Scan(&pk.ID, &pk.Key, &pk.Used, &pk.UsedAt, &pk.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pk, nil
}

func (r *passkeyRepo) List(ctx context.Context) ([]domain.Passkey, error) {
	query := `SELECT id, key, used, used_at, created_at FROM passkeys ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passkeys := make([]domain.Passkey, 0)
	for rows.Next() {
		var pk domain.Passkey
		if err := rows.Scan(&pk.ID, &pk.Key, &pk.Used, &pk.UsedAt, &pk.CreatedAt); err != nil {
			return nil, err
		}
		passkeys = append(passkeys, pk)
	}
	return passkeys, rows.Err()
}

// Consume relies on the row lock taken by UPDATE: a concurrent consumer blocks, then re-checks used = false and matches nothing.
func (r *passkeyRepo) Consume(ctx context.Context, key string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE passkeys SET used = true, used_at = $2 WHERE key = $1 AND used = false`, key, at)
	if err != nil {
		return fmt.Errorf("consume passkey: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.GetByKey(ctx, key); err != nil {
		return err
	}
	return domain.ErrPasskeyUsed
}
