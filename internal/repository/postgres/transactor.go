package postgres

import (
	"context"
	"fmt"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/database"
)

type transactor struct {
	db database.DB
}

func NewTransactor(db database.DB) domain.Transactor {
	return &transactor{db: db}
}

// WithinTx commits when fn returns nil and rolls back on error or panic.
func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.TxRepositories) error) (err error) {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = fmt.Errorf("commit transaction: %w", cerr)
		}
	}()

	return fn(ctx, domain.TxRepositories{
		Users:    NewUserRepository(tx),
		Passkeys: NewPasskeyRepository(tx),
	})
}
