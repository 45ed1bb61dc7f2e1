package security

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTracker(t *testing.T, maxAttempts int) (*LoginTracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := DefaultLoginTrackerConfig()
	cfg.MaxAttempts = maxAttempts
	return NewLoginTracker(client, cfg, InitSecurityLogger(zap.NewNop(), "test", "test")), mr
}

func TestLoginTracker(t *testing.T) {
	ctx := context.Background()

	t.Run("Should block after the configured number of failures", func(t *testing.T) {
		lt, _ := newTracker(t, 3)

		for i := 1; i <= 2; i++ {
			blocked, count, err := lt.RecordFailedAttempt(ctx, "Me@Example.com", "10.0.0.1", "ua", "req")
			require.NoError(t, err)
			assert.False(t, blocked)
			assert.Equal(t, i, count)
		}

		blocked, count, err := lt.RecordFailedAttempt(ctx, "me@example.com", "10.0.0.1", "ua", "req")
		require.NoError(t, err)
		assert.True(t, blocked)
		assert.Equal(t, 3, count)

		isBlocked, err := lt.IsBlocked(ctx, "me@example.com", "")
		require.NoError(t, err)
		assert.True(t, isBlocked)
	})

	t.Run("Should lift the block when it expires", func(t *testing.T) {
		lt, mr := newTracker(t, 1)

		_, _, err := lt.RecordFailedAttempt(ctx, "me@example.com", "10.0.0.2", "ua", "req")
		require.NoError(t, err)

		mr.FastForward(16 * time.Minute)

		isBlocked, err := lt.IsBlocked(ctx, "me@example.com", "10.0.0.2")
		require.NoError(t, err)
		assert.False(t, isBlocked)
	})

	t.Run("Should reset the counter on success", func(t *testing.T) {
		lt, _ := newTracker(t, 5)

		_, _, err := lt.RecordFailedAttempt(ctx, "me@example.com", "10.0.0.3", "ua", "req")
		require.NoError(t, err)
		remaining, err := lt.GetRemainingAttempts(ctx, "me@example.com")
		require.NoError(t, err)
		assert.Equal(t, 4, remaining)

		require.NoError(t, lt.ClearAttempts(ctx, "me@example.com", "10.0.0.3"))
		remaining, err = lt.GetRemainingAttempts(ctx, "me@example.com")
		require.NoError(t, err)
		assert.Equal(t, 5, remaining)
	})

	t.Run("Should never block without redis", func(t *testing.T) {
		lt := NewLoginTracker(nil, DefaultLoginTrackerConfig(), InitSecurityLogger(zap.NewNop(), "test", "test"))

		blocked, _, err := lt.RecordFailedAttempt(ctx, "me@example.com", "ip", "ua", "req")
		require.NoError(t, err)
		assert.False(t, blocked)

		isBlocked, err := lt.IsBlocked(ctx, "me@example.com", "ip")
		require.NoError(t, err)
		assert.False(t, isBlocked)
	})
}
