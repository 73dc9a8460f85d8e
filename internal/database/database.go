// Package database provides PostgreSQL connection management using sqlx and lib/pq.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"devevent/internal/domain"
)

// ErrMissingURL is returned when no connection string is configured.
var ErrMissingURL = errors.New("DATABASE_URL is not set")

// Provider hands out a ready database handle, connecting on first use.
type Provider interface {
	DB(ctx context.Context) (*sqlx.DB, error)
}

// Config holds PostgreSQL connection settings.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connector opens the pool lazily and reuses it afterwards. The pool is built under the lock
// without touching the network; the first successful ping marks it ready. Pings run on the
// caller's context outside the lock, and a failed ping is not cached.
type Connector struct {
	cfg  Config
	open func(driverName, dsn string) (*sqlx.DB, error)
	ping func(ctx context.Context, db *sqlx.DB) error

	mu    sync.Mutex
	db    *sqlx.DB
	ready bool
}

// NewConnector returns a Connector for cfg. No connection is made until DB is called.
func NewConnector(cfg Config) *Connector {
	return &Connector{
		cfg:  cfg,
		open: sqlx.Open,
		ping: func(ctx context.Context, db *sqlx.DB) error { return db.PingContext(ctx) },
	}
}

// DB returns the shared pool. Missing configuration and unreachable servers are reported
// as domain.ErrStoreUnavailable so callers can tell them apart from query failures.
func (c *Connector) DB(ctx context.Context) (*sqlx.DB, error) {
	db, ready, err := c.pool()
	if err != nil {
		return nil, err
	}
	if ready {
		return db, nil
	}

	if err := c.ping(ctx, db); err != nil {
		return nil, fmt.Errorf("%w: connect to postgres: %w", domain.ErrStoreUnavailable, err)
	}

	c.mu.Lock()
	if c.db == db {
		c.ready = true
	}
	c.mu.Unlock()
	return db, nil
}

// pool returns the current pool, opening it on first use.
func (c *Connector) pool() (*sqlx.DB, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, c.ready, nil
	}
	if c.cfg.URL == "" {
		return nil, false, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, ErrMissingURL)
	}

	db, err := c.open("postgres", c.cfg.URL)
	if err != nil {
		return nil, false, fmt.Errorf("%w: open postgres: %w", domain.ErrStoreUnavailable, err)
	}
	if c.cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.cfg.MaxOpenConns)
	}
	if c.cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.cfg.MaxIdleConns)
	}
	if c.cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.cfg.ConnMaxLifetime)
	}
	c.db = db
	return db, false, nil
}

// Close closes the pool if one was opened.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	c.ready = false
	return err
}

type staticProvider struct {
	db *sqlx.DB
}

// NewStatic returns a Provider that always hands out db.
func NewStatic(db *sqlx.DB) Provider {
	return &staticProvider{db: db}
}

func (s *staticProvider) DB(_ context.Context) (*sqlx.DB, error) {
	return s.db, nil
}
