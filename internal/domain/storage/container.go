// Package storage groups the per-entity repositories and runs units of work
// across them.
package storage

import (
	"context"
	"fmt"

	"bazaar/internal/domain/businesses"
	"bazaar/internal/domain/carts"
	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/users"
	"bazaar/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos is one consistent set of repositories: either pool-backed or bound to
// a single transaction.
type Repos struct {
	Users      users.Store
	Businesses businesses.Store
	Listings   listings.Store
	Carts      carts.Store
	Orders     orders.Store
}

// Store is what the engine needs from persistence.
type Store interface {
	Repos() *Repos
	// WithTx runs fn atomically. fn's error rolls everything back and is
	// returned unchanged.
	WithTx(ctx context.Context, fn func(r *Repos) error) error
}

func newRepos(q dbx.Querier) *Repos {
	return &Repos{
		Users:      users.NewRepository(q),
		Businesses: businesses.NewRepository(q),
		Listings:   listings.NewRepository(q),
		Carts:      carts.NewRepository(q),
		Orders:     orders.NewRepository(q),
	}
}

type Container struct {
	pool  *pgxpool.Pool
	repos *Repos
}

func NewContainer(pool *pgxpool.Pool) *Container {
	return &Container{pool: pool, repos: newRepos(pool)}
}

func (c *Container) Repos() *Repos { return c.repos }

func (c *Container) WithTx(ctx context.Context, fn func(r *Repos) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil")
	}

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(newRepos(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
