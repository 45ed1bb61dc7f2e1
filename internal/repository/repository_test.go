package repository_test

import (
	"context"
	"testing"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("Should open the memory backend without a database", func(t *testing.T) {
		repos, err := repository.Open(&config.Config{StorageDriver: config.StorageMemory}, nil)
		require.NoError(t, err)
		defer repos.Close()

		assert.Equal(t, config.StorageMemory, repos.Driver)
		assert.NoError(t, repos.Ping(context.Background()))
	})

	t.Run("Should defer the postgres connection until first use", func(t *testing.T) {
		repos, err := repository.Open(&config.Config{StorageDriver: config.StoragePostgres, DBUrl: "not a dsn"}, nil)
		require.NoError(t, err)
		defer repos.Close()

		assert.Equal(t, config.StoragePostgres, repos.Driver)
		assert.Error(t, repos.Ping(context.Background()))
	})

	t.Run("Should seed the bootstrap passkey into memory storage", func(t *testing.T) {
		repos, err := repository.Open(&config.Config{StorageDriver: config.StorageMemory, BootstrapPasskey: "dev-invite"}, nil)
		require.NoError(t, err)
		defer repos.Close()

		pk, err := repos.Passkeys.GetByKey(context.Background(), "dev-invite")
		require.NoError(t, err)
		assert.False(t, pk.Used)
	})

	t.Run("Should not duplicate or revive a seeded passkey", func(t *testing.T) {
		ctx := context.Background()
		repos := repository.NewMemory()
		require.NoError(t, repos.SeedPasskey(ctx, "dev-invite"))
		require.NoError(t, repos.Passkeys.Consume(ctx, "dev-invite", time.Now()))

		require.NoError(t, repos.SeedPasskey(ctx, "dev-invite"))
		all, err := repos.Passkeys.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.True(t, all[0].Used)
	})

	t.Run("Should reject unknown drivers", func(t *testing.T) {
		_, err := repository.Open(&config.Config{StorageDriver: "mongo"}, nil)
		assert.Error(t, err)
	})
}
