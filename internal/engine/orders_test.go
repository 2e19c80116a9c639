package engine

import (
	"context"
	"testing"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/orders"
	"bazaar/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutSplitsBySeller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	lamp := f.approvedListing(t, f.seller, "Lamp", 1000, 5)
	chair := f.approvedListing(t, f.seller2, "Chair", 2500, 5)

	_, err := f.svc.AddCartItem(ctx, f.buyer, lamp.ID, 2)
	require.NoError(t, err)
	_, err = f.svc.AddCartItem(ctx, f.buyer, chair.ID, 1)
	require.NoError(t, err)

	res, err := f.svc.Checkout(ctx, f.buyer)
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)
	assert.Equal(t, int64(4500), res.TotalCents)

	for _, o := range res.Orders {
		assert.Equal(t, orders.StatusPending, o.Status)
		assert.Equal(t, f.buyer.ID, o.BuyerID)
		assert.Equal(t, orders.Total(o.Items), o.TotalCents)
		assert.NotEmpty(t, o.Number)
	}
	assert.Equal(t, f.seller.ID, res.Orders[0].SellerID)
	assert.Equal(t, int64(2000), res.Orders[0].TotalCents)
	assert.NotEqual(t, res.Orders[0].Number, res.Orders[1].Number)

	assert.Equal(t, 3, f.stockOf(t, lamp.ID))
	assert.Equal(t, 4, f.stockOf(t, chair.ID))

	view, err := f.svc.GetCart(ctx, f.buyer)
	require.NoError(t, err)
	assert.Empty(t, view.Groups)

	assert.Equal(t, []notify.Event{notify.ListingApproved, notify.ListingApproved, notify.OrderCreated, notify.OrderCreated}, f.sent.Events())
}

func TestPartialCheckout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	lamp := f.approvedListing(t, f.seller, "Lamp", 1000, 5)
	chair := f.approvedListing(t, f.seller2, "Chair", 2500, 5)

	_, err := f.svc.AddCartItem(ctx, f.buyer, lamp.ID, 1)
	require.NoError(t, err)
	_, err = f.svc.AddCartItem(ctx, f.buyer, chair.ID, 1)
	require.NoError(t, err)

	res, err := f.svc.Checkout(ctx, f.buyer, f.seller2.ID)
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, f.seller2.ID, res.Orders[0].SellerID)

	view, err := f.svc.GetCart(ctx, f.buyer)
	require.NoError(t, err)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, f.seller.ID, view.Groups[0].SellerID)
}

func TestCheckoutIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	lamp := f.approvedListing(t, f.seller, "Lamp", 1000, 5)
	chair := f.approvedListing(t, f.seller2, "Chair", 2500, 1)

	_, err := f.svc.AddCartItem(ctx, f.buyer, lamp.ID, 2)
	require.NoError(t, err)
	_, err = f.svc.AddCartItem(ctx, f.buyer, chair.ID, 1)
	require.NoError(t, err)

	// Another buyer takes the last chair first.
	_, err = f.svc.AddCartItem(ctx, f.buyer2, chair.ID, 1)
	require.NoError(t, err)
	_, err = f.svc.Checkout(ctx, f.buyer2)
	require.NoError(t, err)

	_, err = f.svc.Checkout(ctx, f.buyer)
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))

	assert.Equal(t, 5, f.stockOf(t, lamp.ID))
	assert.Equal(t, 0, f.stockOf(t, chair.ID))

	view, err := f.svc.GetCart(ctx, f.buyer)
	require.NoError(t, err)
	assert.Equal(t, 2, view.ItemCount)

	mine, err := f.svc.ListOrders(ctx, f.buyer, OrderQuery{Scope: ScopeBuyer})
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestCheckoutHiddenListing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	lamp := f.approvedListing(t, f.seller, "Lamp", 1000, 5)
	_, err := f.svc.AddCartItem(ctx, f.buyer, lamp.ID, 1)
	require.NoError(t, err)

	_, err = f.svc.ModerateListing(ctx, f.admin, lamp.ID, listings.ActionHide)
	require.NoError(t, err)

	_, err = f.svc.Checkout(ctx, f.buyer)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 5, f.stockOf(t, lamp.ID))
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Checkout(context.Background(), f.buyer)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func placeOrder(t *testing.T, f *fixture, qty int) (*orders.Order, *listings.Listing) {
	t.Helper()
	ctx := context.Background()
	lamp := f.approvedListing(t, f.seller, "Lamp", 1000, 5)
	_, err := f.svc.AddCartItem(ctx, f.buyer, lamp.ID, qty)
	require.NoError(t, err)
	res, err := f.svc.Checkout(ctx, f.buyer)
	require.NoError(t, err)
	return &res.Orders[0], lamp
}

func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("seller drives fulfilment", func(t *testing.T) {
		f := newFixture(t, nil)
		o, _ := placeOrder(t, f, 1)

		for _, to := range []orders.Status{orders.StatusPaid, orders.StatusShipped, orders.StatusDelivered} {
			got, err := f.svc.UpdateOrderStatus(ctx, f.seller, o.ID, StatusChange{To: to})
			require.NoError(t, err)
			assert.Equal(t, to, got.Status)
		}

		_, err := f.svc.UpdateOrderStatus(ctx, f.admin, o.ID, StatusChange{To: orders.StatusCancelled})
		assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
	})

	t.Run("cancel from pending restores stock", func(t *testing.T) {
		f := newFixture(t, nil)
		o, lamp := placeOrder(t, f, 2)
		assert.Equal(t, 3, f.stockOf(t, lamp.ID))

		reason := "changed my mind"
		got, err := f.svc.UpdateOrderStatus(ctx, f.buyer, o.ID, StatusChange{To: orders.StatusCancelled, Reason: &reason})
		require.NoError(t, err)
		assert.Equal(t, orders.StatusCancelled, got.Status)
		assert.Equal(t, 5, f.stockOf(t, lamp.ID))
	})

	t.Run("cancel from shipped is invalid and keeps stock", func(t *testing.T) {
		f := newFixture(t, nil)
		o, lamp := placeOrder(t, f, 2)
		for _, to := range []orders.Status{orders.StatusPaid, orders.StatusShipped} {
			_, err := f.svc.UpdateOrderStatus(ctx, f.seller, o.ID, StatusChange{To: to})
			require.NoError(t, err)
		}

		_, err := f.svc.UpdateOrderStatus(ctx, f.admin, o.ID, StatusChange{To: orders.StatusCancelled})
		assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
		assert.Equal(t, 3, f.stockOf(t, lamp.ID))

		got, err := f.svc.GetOrder(ctx, f.buyer, o.ID)
		require.NoError(t, err)
		assert.Equal(t, orders.StatusShipped, got.Status)
	})

	t.Run("skipping a step is invalid", func(t *testing.T) {
		f := newFixture(t, nil)
		o, _ := placeOrder(t, f, 1)
		_, err := f.svc.UpdateOrderStatus(ctx, f.seller, o.ID, StatusChange{To: orders.StatusShipped})
		assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))

		_, err = f.svc.UpdateOrderStatus(ctx, f.admin, o.ID, StatusChange{To: orders.StatusShipped})
		assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		f := newFixture(t, nil)
		o, _ := placeOrder(t, f, 1)
		_, err := f.svc.UpdateOrderStatus(ctx, f.seller, o.ID, StatusChange{To: orders.StatusPaid, Version: o.Version})
		require.NoError(t, err)

		_, err = f.svc.UpdateOrderStatus(ctx, f.seller, o.ID, StatusChange{To: orders.StatusShipped, Version: o.Version})
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})
}

func TestOrderRoleMatrix(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	o, _ := placeOrder(t, f, 1)

	_, err := f.svc.UpdateOrderStatus(ctx, f.seller2, o.ID, StatusChange{To: orders.StatusDelivered})
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))
	assert.Equal(t, "not-owner", apperr.ReasonOf(err))

	_, err = f.svc.UpdateOrderStatus(ctx, f.buyer, o.ID, StatusChange{To: orders.StatusShipped})
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))
	assert.Equal(t, "wrong-role", apperr.ReasonOf(err))

	_, err = f.svc.UpdateOrderStatus(ctx, f.buyer2, o.ID, StatusChange{To: orders.StatusCancelled})
	assert.Equal(t, "not-owner", apperr.ReasonOf(err))

	_, err = f.svc.GetOrder(ctx, f.buyer2, o.ID)
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))

	_, err = f.svc.ListOrders(ctx, f.buyer, OrderQuery{Scope: ScopeAll})
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))

	sold, err := f.svc.ListOrders(ctx, f.seller, OrderQuery{Scope: ScopeSeller})
	require.NoError(t, err)
	assert.Len(t, sold, 1)

	all, err := f.svc.ListOrders(ctx, f.admin, OrderQuery{Scope: ScopeAll})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
