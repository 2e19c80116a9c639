package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/businesses"
	"bazaar/internal/domain/carts"
	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/storage"
	"bazaar/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedListing(t *testing.T, s *Store, stock int) *listings.Listing {
	t.Helper()
	ctx := context.Background()

	seller := &users.User{Email: "seller@example.com", Role: rolegate.Business, Active: true}
	require.NoError(t, s.Repos().Users.Create(ctx, seller))

	l := &listings.Listing{SellerID: seller.ID, Title: "Lamp", PriceCents: 1500, Stock: stock, Status: listings.StatusApproved, Visible: true}
	require.NoError(t, s.Repos().Listings.Create(ctx, l))
	return l
}

func TestWithTxRollsBack(t *testing.T) {
	s := New()
	ctx := context.Background()
	l := seedListing(t, s, 5)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(r *storage.Repos) error {
		require.NoError(t, r.Listings.AdjustStock(ctx, l.ID, -3))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Repos().Listings.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}

func TestListingVersionConflict(t *testing.T) {
	s := New()
	ctx := context.Background()
	l := seedListing(t, s, 1)

	a, _ := s.Repos().Listings.Get(ctx, l.ID)
	b, _ := s.Repos().Listings.Get(ctx, l.ID)

	a.Visible = false
	require.NoError(t, s.Repos().Listings.Update(ctx, a, a.Version))

	b.Status = listings.StatusRejected
	err := s.Repos().Listings.Update(ctx, b, b.Version)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	got, _ := s.Repos().Listings.Get(ctx, l.ID)
	assert.Equal(t, listings.StatusApproved, got.Status)
	assert.False(t, got.Visible)
}

func TestAdjustStockNeverNegative(t *testing.T) {
	s := New()
	ctx := context.Background()
	l := seedListing(t, s, 1)

	err := s.Repos().Listings.AdjustStock(ctx, l.ID, -2)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)

	require.NoError(t, s.Repos().Listings.Delete(ctx, l.ID))
	err = s.Repos().Listings.AdjustStock(ctx, l.ID, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCartAddItemMergesKeepingSnapshot(t *testing.T) {
	s := New()
	ctx := context.Background()
	l := seedListing(t, s, 10)

	c, err := s.Repos().Carts.GetOrCreate(ctx, 99)
	require.NoError(t, err)

	first := &carts.CartItem{ListingID: l.ID, SellerID: l.SellerID, Quantity: 1, PriceCents: 1500}
	require.NoError(t, s.Repos().Carts.AddItem(ctx, c.ID, first))

	again := &carts.CartItem{ListingID: l.ID, SellerID: l.SellerID, Quantity: 2, PriceCents: 9999}
	require.NoError(t, s.Repos().Carts.AddItem(ctx, c.ID, again))

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 3, again.Quantity)
	assert.Equal(t, int64(1500), again.PriceCents)

	removed, err := s.Repos().Carts.RemoveItem(ctx, c.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Repos().Carts.RemoveItem(ctx, c.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestBusinessDefaultsToBasicPlan(t *testing.T) {
	s := New()
	ctx := context.Background()
	l := seedListing(t, s, 1)

	b := &businesses.Business{UserID: l.SellerID, Name: "Lamps Ltd", ContactEmail: "shop@example.com"}
	require.NoError(t, s.Repos().Businesses.Create(ctx, b))
	assert.Equal(t, "basic", b.SubscriptionPlan)

	got, err := s.Repos().Businesses.Get(ctx, l.SellerID)
	require.NoError(t, err)
	assert.Equal(t, "basic", got.SubscriptionPlan)
}

func TestDeleteListingDropsCartItems(t *testing.T) {
	s := New()
	ctx := context.Background()
	lamp := seedListing(t, s, 10)
	rug := &listings.Listing{SellerID: lamp.SellerID, Title: "Rug", PriceCents: 900, Stock: 4, Status: listings.StatusApproved, Visible: true}
	require.NoError(t, s.Repos().Listings.Create(ctx, rug))

	c, err := s.Repos().Carts.GetOrCreate(ctx, 99)
	require.NoError(t, err)
	for _, l := range []*listings.Listing{lamp, rug} {
		it := &carts.CartItem{ListingID: l.ID, SellerID: l.SellerID, Quantity: 1, PriceCents: l.PriceCents}
		require.NoError(t, s.Repos().Carts.AddItem(ctx, c.ID, it))
	}

	require.NoError(t, s.Repos().Listings.Delete(ctx, lamp.ID))

	c, err = s.Repos().Carts.GetOrCreate(ctx, 99)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, rug.ID, c.Items[0].ListingID)
}

func TestDeleteListingRollbackKeepsCartItems(t *testing.T) {
	s := New()
	ctx := context.Background()
	l := seedListing(t, s, 10)

	c, err := s.Repos().Carts.GetOrCreate(ctx, 99)
	require.NoError(t, err)
	require.NoError(t, s.Repos().Carts.AddItem(ctx, c.ID, &carts.CartItem{ListingID: l.ID, SellerID: l.SellerID, Quantity: 1, PriceCents: 1500}))

	boom := errors.New("boom")
	err = s.WithTx(ctx, func(r *storage.Repos) error {
		require.NoError(t, r.Listings.Delete(ctx, l.ID))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	c, err = s.Repos().Carts.GetOrCreate(ctx, 99)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestLatencyHonoursDeadline(t *testing.T) {
	s := New(WithLatency(50 * time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := s.Repos().Listings.Get(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, apperr.KindTimeout, apperr.KindOf(err))
}
