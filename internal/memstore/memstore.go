// Package memstore is an in-process implementation of storage.Store. Units of
// work are serialized and rolled back by restoring a snapshot, which gives the
// same atomicity and version semantics as the Postgres container. It backs
// tests and the STORAGE=memory mode of the API.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"bazaar/internal/domain/businesses"
	"bazaar/internal/domain/carts"
	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/storage"
	"bazaar/internal/domain/users"
)

type state struct {
	seq        map[string]int64
	users      map[int64]users.User
	businesses map[int64]businesses.Business
	listings   map[int64]listings.Listing
	moderation []listings.ModerationRecord
	carts      map[int64]carts.Cart // by owner
	orders     map[int64]orders.Order
}

func newState() *state {
	return &state{
		seq:        map[string]int64{},
		users:      map[int64]users.User{},
		businesses: map[int64]businesses.Business{},
		listings:   map[int64]listings.Listing{},
		carts:      map[int64]carts.Cart{},
		orders:     map[int64]orders.Order{},
	}
}

func (st *state) next(name string) int64 {
	st.seq[name]++
	return st.seq[name]
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.seq {
		c.seq[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.businesses {
		c.businesses[k] = v
	}
	for k, v := range st.listings {
		c.listings[k] = v
	}
	c.moderation = append([]listings.ModerationRecord(nil), st.moderation...)
	for k, v := range st.carts {
		v.Items = append([]carts.CartItem(nil), v.Items...)
		c.carts[k] = v
	}
	for k, v := range st.orders {
		v.Items = append([]orders.LineItem(nil), v.Items...)
		c.orders[k] = v
	}
	return c
}

type Store struct {
	mu      sync.Mutex
	st      *state
	latency time.Duration
	now     func() time.Time
}

type Option func(*Store)

// WithLatency delays every repository call by d, honouring ctx while waiting.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{st: newState(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ storage.Store = (*Store)(nil)

func (s *Store) Repos() *storage.Repos { return s.repos(false) }

func (s *Store) WithTx(ctx context.Context, fn func(r *storage.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.st.clone()
	if err := fn(s.repos(true)); err != nil {
		s.st = snap
		return err
	}
	return nil
}

func (s *Store) repos(inTx bool) *storage.Repos {
	return &storage.Repos{
		Users:      &usersRepo{s: s, tx: inTx},
		Businesses: &businessesRepo{s: s, tx: inTx},
		Listings:   &listingsRepo{s: s, tx: inTx},
		Carts:      &cartsRepo{s: s, tx: inTx},
		Orders:     &ordersRepo{s: s, tx: inTx},
	}
}

// do runs fn against the current state. Outside a unit of work it takes the
// lock itself; inside one the lock is already held by WithTx.
func (s *Store) do(ctx context.Context, inTx bool, fn func(st *state) error) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

func (s *Store) wait(ctx context.Context) error {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return ctx.Err()
}

func page[T any](items []T, limit, offset, def int) []T {
	if limit <= 0 {
		limit = def
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func sortedKeys[V any](m map[int64]V, desc bool) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if desc {
			return keys[i] > keys[j]
		}
		return keys[i] < keys[j]
	})
	return keys
}
