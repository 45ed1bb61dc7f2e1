package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnector(t *testing.T) {
	t.Run("Should connect once for concurrent cold-start callers", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		var calls atomic.Int32
		release := make(chan struct{})
		c := NewConnector(func(ctx context.Context) (DB, error) {
			calls.Add(1)
			<-release
			return mock, nil
		}, nil)

		const callers = 16
		var wg sync.WaitGroup
		results := make([]DB, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				db, err := c.Get(context.Background())
				assert.NoError(t, err)
				results[i] = db
			}(i)
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, db := range results {
			assert.Same(t, mock, db)
		}

		_, err = c.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("Should retry after a failed attempt", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		var calls atomic.Int32
		c := NewConnector(func(ctx context.Context) (DB, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("connection refused")
			}
			return mock, nil
		}, nil)

		_, err = c.Get(context.Background())
		assert.ErrorContains(t, err, "connection refused")

		db, err := c.Get(context.Background())
		require.NoError(t, err)
		assert.Same(t, mock, db)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("Should surface connect errors through query methods", func(t *testing.T) {
		c := NewConnector(func(ctx context.Context) (DB, error) {
			return nil, errors.New("down")
		}, nil)

		var n int
		err := c.QueryRow(context.Background(), "SELECT 1").Scan(&n)
		assert.ErrorContains(t, err, "down")

		_, err = c.Exec(context.Background(), "SELECT 1")
		assert.ErrorContains(t, err, "down")
	})

	t.Run("Should delegate queries to the established handle", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM jobs").WillReturnResult(pgxmock.NewResult("DELETE", 1))

		c := NewConnector(func(ctx context.Context) (DB, error) { return mock, nil }, nil)
		tag, err := c.Exec(context.Background(), "DELETE FROM jobs")
		require.NoError(t, err)
		assert.Equal(t, int64(1), tag.RowsAffected())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
