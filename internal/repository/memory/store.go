// Package memory keeps every table in process memory. It backs development mode and the HTTP tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"portfolio-backend/internal/domain"
)

// Store holds users and passkeys behind one lock so registration can run as a single unit.
type Store struct {
	mu       sync.Mutex
	users    map[string]domain.User
	passkeys map[string]domain.Passkey // by key
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		passkeys: make(map[string]domain.Passkey),
	}
}

func (s *Store) Users() domain.UserRepository       { return &userRepo{store: s, locked: false} }
func (s *Store) Passkeys() domain.PasskeyRepository { return &passkeyRepo{store: s, locked: false} }

// WithinTx holds the store lock for the whole of fn and restores both tables if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.TxRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := maps.Clone(s.users)
	passkeys := maps.Clone(s.passkeys)

	err := fn(ctx, domain.TxRepositories{
		Users:    &userRepo{store: s, locked: true},
		Passkeys: &passkeyRepo{store: s, locked: true},
	})
	if err != nil {
		s.users = users
		s.passkeys = passkeys
	}
	return err
}

// with runs fn under the store lock unless the caller already holds it inside WithinTx.
func (s *Store) with(locked bool, fn func()) {
	if !locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}
