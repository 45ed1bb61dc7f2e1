package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"portfolio-backend/internal/domain"
)

type passkeyRepo struct {
	store  *Store
	locked bool
}

func (r *passkeyRepo) Create(ctx context.Context, passkey *domain.Passkey) error {
	var err error
	r.store.with(r.locked, func() {
		if _, exists := r.store.passkeys[passkey.Key]; exists {
			err = errors.New("passkey already exists")
			return
		}
		r.store.passkeys[passkey.Key] = *passkey
	})
	return err
}

func (r *passkeyRepo) GetByKey(ctx context.Context, key string) (*domain.Passkey, error) {
	var (
		pk domain.Passkey
		ok bool
	)
	r.store.with(r.locked, func() { pk, ok = r.store.passkeys[key] })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &pk, nil
}

func (r *passkeyRepo) List(ctx context.Context) ([]domain.Passkey, error) {
	var out []domain.Passkey
	r.store.with(r.locked, func() {
		out = make([]domain.Passkey, 0, len(r.store.passkeys))
		for _, pk := range r.store.passkeys {
			out = append(out, pk)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *passkeyRepo) Consume(ctx context.Context, key string, at time.Time) error {
	var err error
	r.store.with(r.locked, func() {
		pk, ok := r.store.passkeys[key]
		switch {
		case !ok:
			err = domain.ErrNotFound
		case pk.Used:
			err = domain.ErrPasskeyUsed
		default:
			pk.Used = true
			pk.UsedAt = &at
			r.store.passkeys[key] = pk
		}
	})
	return err
}
