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

// PostgreSQL error codes
const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

const ownershipColumns = "id, user_id, created_at, updated_at"

// kindColumns describes how one resource kind maps onto its table.
// All three funcs return their values in the order of names.
type kindColumns[T any, P any] struct {
	table string
	names []string
	// dest returns scan destinations for the kind-specific columns.
	dest func(item *T) []any
	// values returns insert arguments.
	values func(item *T) []any
	// changes returns update arguments; nil leaves the column unchanged.
	changes func(patch P) []any
}

// ownedRepo implements domain.OwnedRepository for any kind. Every statement filters on user_id.
type ownedRepo[T any, PT domain.Resource[T], P any] struct {
	db   database.DB
	cols kindColumns[T, P]

	insertSQL string
	listSQL   string
	getSQL    string
	updateSQL string
	deleteSQL string
}

func newOwnedRepo[T any, PT domain.Resource[T], P any](db database.DB, cols kindColumns[T, P]) *ownedRepo[T, PT, P] {
	selectList := ownershipColumns + ", " + strings.Join(cols.names, ", ")

	placeholders := make([]string, 0, 4+len(cols.names))
	for i := 1; i <= 4+len(cols.names); i++ {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i))
	}

	sets := make([]string, 0, len(cols.names)+1)
	for i, name := range cols.names {
		sets = append(sets, fmt.Sprintf("%s = COALESCE($%d, %s)", name, i+3, name))
	}
	sets = append(sets, "updated_at = NOW()")

	return &ownedRepo[T, PT, P]{
		db:   db,
		cols: cols,

		insertSQL: fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			cols.table, selectList, strings.Join(placeholders, ", ")),
		listSQL: fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
			selectList, cols.table),
		getSQL: fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND user_id = $2`,
			selectList, cols.table),
		updateSQL: fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1 AND user_id = $2 RETURNING %s`,
			cols.table, strings.Join(sets, ", "), selectList),
		deleteSQL: fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, cols.table),
	}
}

func (r *ownedRepo[T, PT, P]) scanDest(item *T) []any {
	m := PT(item).Meta()
	return append([]any{&m.ID, &m.UserID, &m.CreatedAt, &m.UpdatedAt}, r.cols.dest(item)...)
}

func (r *ownedRepo[T, PT, P]) Create(ctx context.Context, item *T) error {
	m := PT(item).Meta()
	args := append([]any{m.ID, m.UserID, m.CreatedAt, m.UpdatedAt}, r.cols.values(item)...)
	if _, err := r.db.Exec(ctx, r.insertSQL, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.cols.table, err)
	}
	return nil
}

func (r *ownedRepo[T, PT, P]) ListByOwner(ctx context.Context, ownerID string) ([]T, error) {
	rows, err := r.db.Query(ctx, r.listSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.cols.table, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var item T
		if err := rows.Scan(r.scanDest(&item)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.cols.table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.cols.table, err)
	}
	return items, nil
}

func (r *ownedRepo[T, PT, P]) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*T, error) {
	var item T
	err := r.db.QueryRow(ctx, r.getSQL, id, ownerID).Scan(r.scanDest(&item)...)
	if err != nil {
		return nil, r.mapErr("get", err)
	}
	return &item, nil
}

func (r *ownedRepo[T, PT, P]) Update(ctx context.Context, id, ownerID string, patch P) (*T, error) {
	var item T
	args := append([]any{id, ownerID}, r.cols.changes(patch)...)
	if err := r.db.QueryRow(ctx, r.updateSQL, args...).Scan(r.scanDest(&item)...); err != nil {
		return nil, r.mapErr("update", err)
	}
	return &item, nil
}

func (r *ownedRepo[T, PT, P]) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	tag, err := r.db.Exec(ctx, r.deleteSQL, id, ownerID)
	if err != nil {
		return r.mapErr("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mapErr folds "no row" and "not a uuid" into ErrNotFound so callers cannot probe ids.
func (r *ownedRepo[T, PT, P]) mapErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s %s: %w", op, r.cols.table, err)
}
