package domain

import (
	"context"
	"time"
)

// Passkey is a single-use registration code. Used keys are kept as an audit trail.
type Passkey struct {
	ID        string     `json:"id"`
	Key       string     `json:"key"`
	Used      bool       `json:"used"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type PasskeyRepository interface {
	Create(ctx context.Context, passkey *Passkey) error
	GetByKey(ctx context.Context, key string) (*Passkey, error)
	List(ctx context.Context) ([]Passkey, error)
	// Consume marks an unused key as used. It returns ErrPasskeyUsed when the key was already
	// consumed (including by a concurrent registration) and ErrNotFound when it does not exist.
	Consume(ctx context.Context, key string, at time.Time) error
}

// TxRepositories are bound to a single transaction.
type TxRepositories struct {
	Users    UserRepository
	Passkeys PasskeyRepository
}

// Transactor runs fn atomically: if fn returns an error none of its writes are kept.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

type PasskeyUsecase interface {
	Mint(ctx context.Context, n int) ([]Passkey, error)
	List(ctx context.Context) ([]Passkey, error)
}
