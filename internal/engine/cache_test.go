package engine

import (
	"context"
	"sync"
	"testing"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/orders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is a plain map cache. beforeSet, when set, runs once ahead of the
// next Set.
type memCache struct {
	mu          sync.Mutex
	entries     map[int64]listings.Listing
	invalidated []int64
	beforeSet   func()
}

func newMemCache() *memCache {
	return &memCache{entries: map[int64]listings.Listing{}}
}

func (c *memCache) Get(_ context.Context, id int64) (*listings.Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (c *memCache) Set(_ context.Context, l *listings.Listing) error {
	c.mu.Lock()
	hook := c.beforeSet
	c.beforeSet = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[l.ID] = *l
	return nil
}

func (c *memCache) Invalidate(_ context.Context, ids ...int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.entries, id)
	}
	c.invalidated = append(c.invalidated, ids...)
	return nil
}

func (c *memCache) has(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

func (c *memCache) takeInvalidated() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.invalidated
	c.invalidated = nil
	return out
}

func TestGetListingFillsCache(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	f := newFixture(t, nil, WithListingCache(cache))
	l := f.approvedListing(t, f.seller, "Lamp", 1200, 3)

	_, err := f.svc.GetListing(ctx, f.buyer, l.ID)
	require.NoError(t, err)
	assert.True(t, cache.has(l.ID))

	pending, err := f.svc.CreateListing(ctx, f.seller, CreateListingInput{Title: "Chair", PriceCents: 500, Stock: 1})
	require.NoError(t, err)
	_, err = f.svc.GetListing(ctx, f.seller, pending.ID)
	require.NoError(t, err)
	assert.False(t, cache.has(pending.ID), "only public listings are cached")
}

func TestCacheHitOnListingNoLongerPublic(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	f := newFixture(t, nil, WithListingCache(cache))
	l := f.approvedListing(t, f.seller, "Lamp", 1200, 3)

	_, err := f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionHide)
	require.NoError(t, err)

	hidden, err := f.store.Repos().Listings.Get(ctx, l.ID)
	require.NoError(t, err)
	cache.entries[l.ID] = *hidden

	_, err = f.svc.GetListing(ctx, f.buyer, l.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.False(t, cache.has(l.ID))
}

func TestTransitionsInvalidateCache(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	f := newFixture(t, nil, WithListingCache(cache))

	o, lamp := placeOrder(t, f, 2)
	assert.Contains(t, cache.takeInvalidated(), lamp.ID, "checkout")

	_, err := f.svc.UpdateOrderStatus(ctx, f.buyer, o.ID, StatusChange{To: orders.StatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, []int64{lamp.ID}, cache.takeInvalidated(), "cancel")

	_, err = f.svc.ModerateListing(ctx, f.admin, lamp.ID, listings.ActionHide)
	require.NoError(t, err)
	assert.Equal(t, []int64{lamp.ID}, cache.takeInvalidated(), "hide")

	_, err = f.svc.ModerateListing(ctx, f.admin, lamp.ID, listings.ActionDelete)
	require.NoError(t, err)
	assert.Equal(t, []int64{lamp.ID}, cache.takeInvalidated(), "delete")
}

func TestStaleCacheWriteAfterHide(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	f := newFixture(t, nil, WithListingCache(cache))
	l := f.approvedListing(t, f.seller, "Lamp", 1200, 3)

	// the hide commits after the reader loaded the listing but before its
	// cache write lands
	cache.beforeSet = func() {
		_, err := f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionHide)
		require.NoError(t, err)
	}

	first, err := f.svc.GetListing(ctx, f.buyer, l.ID)
	require.NoError(t, err)
	assert.True(t, first.Visible)

	assert.False(t, cache.has(l.ID))

	_, err = f.svc.GetListing(ctx, f.buyer2, l.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
