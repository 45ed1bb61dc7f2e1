package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ConnectFunc opens the underlying handle. It is called again only after a failed attempt.
type ConnectFunc func(ctx context.Context) (DB, error)

// Connector establishes the database handle on first use and reuses it afterwards.
// Concurrent cold-start callers share a single connection attempt.
type Connector struct {
	connect ConnectFunc
	log     *zap.Logger

	group singleflight.Group
	mu    sync.RWMutex
	db    DB
}

func NewConnector(connect ConnectFunc, log *zap.Logger) *Connector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Connector{connect: connect, log: log}
}

// Get returns the shared handle, connecting if needed.
func (c *Connector) Get(ctx context.Context) (DB, error) {
	if db := c.current(); db != nil {
		return db, nil
	}

	v, err, shared := c.group.Do("connect", func() (interface{}, error) {
		if db := c.current(); db != nil {
			return db, nil
		}
		// Waiters share this attempt, so one caller's cancellation must not fail the rest.
		db, err := c.connect(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.db = db
		c.mu.Unlock()
		c.log.Info("database connection established")
		return db, nil
	})
	if err != nil {
		c.log.Error("database connection failed", zap.Error(err), zap.Bool("shared", shared))
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return v.(DB), nil
}

func (c *Connector) current() DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Ping connects if needed and checks the handle is alive.
func (c *Connector) Ping(ctx context.Context) error {
	db, err := c.Get(ctx)
	if err != nil {
		return err
	}
	if p, ok := db.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the handle if one was established.
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if closer, ok := c.db.(interface{ Close() }); ok {
		closer.Close()
	}
	c.db = nil
}

func (c *Connector) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	db, err := c.Get(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return db.Exec(ctx, sql, arguments...)
}

func (c *Connector) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return db.Query(ctx, sql, args...)
}

func (c *Connector) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db, err := c.Get(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return db.QueryRow(ctx, sql, args...)
}

func (c *Connector) Begin(ctx context.Context) (pgx.Tx, error) {
	db, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return db.Begin(ctx)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
