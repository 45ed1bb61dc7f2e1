package memory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobs() *memory.OwnedRepo[domain.Job, *domain.Job, domain.JobPatch] {
	return memory.NewOwnedRepo[domain.Job, *domain.Job, domain.JobPatch]()
}

func job(id, owner string, created time.Time) *domain.Job {
	return &domain.Job{
		Ownership: domain.Ownership{ID: id, UserID: owner, CreatedAt: created, UpdatedAt: created},
		Title:     "Engineer " + id,
	}
}

func TestOwnedRepo(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Should list only the owner's rows newest first with id tiebreak", func(t *testing.T) {
		repo := newJobs()
		require.NoError(t, repo.Create(ctx, job("a", "alice", base)))
		require.NoError(t, repo.Create(ctx, job("b", "alice", base.Add(time.Hour))))
		require.NoError(t, repo.Create(ctx, job("c", "alice", base)))
		require.NoError(t, repo.Create(ctx, job("d", "bob", base.Add(2*time.Hour))))

		rows, err := repo.ListByOwner(ctx, "alice")
		require.NoError(t, err)
		ids := make([]string, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.ID)
		}
		assert.Equal(t, []string{"b", "c", "a"}, ids)
	})

	t.Run("Should return an empty list rather than nil", func(t *testing.T) {
		rows, err := newJobs().ListByOwner(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("Should hide other owners' rows from get, update and delete", func(t *testing.T) {
		repo := newJobs()
		require.NoError(t, repo.Create(ctx, job("a", "alice", base)))
		title := "Hijacked"

		_, err := repo.GetByIDAndOwner(ctx, "a", "bob")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = repo.Update(ctx, "a", "bob", domain.JobPatch{Title: &title})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, repo.DeleteByIDAndOwner(ctx, "a", "bob"), domain.ErrNotFound)

		got, err := repo.GetByIDAndOwner(ctx, "a", "alice")
		require.NoError(t, err)
		assert.Equal(t, "Engineer a", got.Title)
	})

	t.Run("Should apply a patch and bump updatedAt", func(t *testing.T) {
		repo := newJobs()
		require.NoError(t, repo.Create(ctx, job("a", "alice", base)))
		title := "Staff Engineer"

		got, err := repo.Update(ctx, "a", "alice", domain.JobPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Staff Engineer", got.Title)
		assert.True(t, got.UpdatedAt.After(base))
		assert.Equal(t, base, got.CreatedAt)
	})

	t.Run("Should store timestamps at database precision", func(t *testing.T) {
		repo := newJobs()
		require.NoError(t, repo.Create(ctx, job("a", "alice", base)))
		title := "Staff Engineer"

		got, err := repo.Update(ctx, "a", "alice", domain.JobPatch{Title: &title})
		require.NoError(t, err)
		assert.Zero(t, got.UpdatedAt.Nanosecond()%int(time.Microsecond))
	})

	t.Run("Should not share skills with callers", func(t *testing.T) {
		repo := newJobs()
		item := job("a", "alice", base)
		item.Skills = domain.Skills{"Go", "SQL"}
		require.NoError(t, repo.Create(ctx, item))
		item.Skills[0] = "Mutated on create"

		got, err := repo.GetByIDAndOwner(ctx, "a", "alice")
		require.NoError(t, err)
		got.Skills[0] = "Mutated on get"

		rows, err := repo.ListByOwner(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		rows[0].Skills[1] = "Mutated on list"

		got, err = repo.GetByIDAndOwner(ctx, "a", "alice")
		require.NoError(t, err)
		assert.Equal(t, domain.Skills{"Go", "SQL"}, got.Skills)

		patched := domain.Skills{"Rust"}
		updated, err := repo.Update(ctx, "a", "alice", domain.JobPatch{Skills: &patched})
		require.NoError(t, err)
		patched[0] = "Mutated patch"
		updated.Skills[0] = "Mutated on update"

		got, err = repo.GetByIDAndOwner(ctx, "a", "alice")
		require.NoError(t, err)
		assert.Equal(t, domain.Skills{"Rust"}, got.Skills)
	})
}

func TestStoreTransactions(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *memory.Store {
		store := memory.NewStore()
		require.NoError(t, store.Passkeys().Create(ctx, &domain.Passkey{ID: "p1", Key: "k1", CreatedAt: time.Now()}))
		return store
	}

	t.Run("Should roll back the passkey when user creation fails", func(t *testing.T) {
		store := seed(t)
		require.NoError(t, store.Users().Create(ctx, &domain.User{ID: "u0", Email: "taken@example.com"}))

		err := store.WithinTx(ctx, func(ctx context.Context, repos domain.TxRepositories) error {
			if err := repos.Passkeys.Consume(ctx, "k1", time.Now()); err != nil {
				return err
			}
			return repos.Users.Create(ctx, &domain.User{ID: "u1", Email: "TAKEN@example.com"})
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)

		pk, err := store.Passkeys().GetByKey(ctx, "k1")
		require.NoError(t, err)
		assert.False(t, pk.Used)
	})

	t.Run("Should consume a passkey at most once under concurrency", func(t *testing.T) {
		store := seed(t)
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.WithinTx(ctx, func(ctx context.Context, repos domain.TxRepositories) error {
					return repos.Passkeys.Consume(ctx, "k1", time.Now())
				})
				if err == nil {
					wins.Add(1)
				} else {
					assert.True(t, errors.Is(err, domain.ErrPasskeyUsed))
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})

	t.Run("Should report unknown keys as not found", func(t *testing.T) {
		store := seed(t)
		assert.ErrorIs(t, store.Passkeys().Consume(ctx, "missing", time.Now()), domain.ErrNotFound)
	})
}
