package memory

import (
	"context"
	"strings"
	"time"

	"portfolio-backend/internal/domain"
)

type userRepo struct {
	store  *Store
	locked bool
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	var err error
	r.store.with(r.locked, func() {
		for _, u := range r.store.users {
			if strings.EqualFold(u.Email, user.Email) {
				err = domain.ErrEmailTaken
				return
			}
		}
		r.store.users[user.ID] = *user
	})
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var (
		user domain.User
		ok   bool
	)
	r.store.with(r.locked, func() { user, ok = r.store.users[id] })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var found *domain.User
	r.store.with(r.locked, func() {
		for _, u := range r.store.users {
			if strings.EqualFold(u.Email, email) {
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	var (
		user domain.User
		ok   bool
	)
	r.store.with(r.locked, func() {
		if user, ok = r.store.users[id]; !ok {
			return
		}
		patch.Apply(&user)
		user.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		r.store.users[id] = user
	})
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}
