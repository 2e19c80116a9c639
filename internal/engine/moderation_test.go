package engine

import (
	"context"
	"testing"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/listings"
	"bazaar/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("approve twice is a no-op success", func(t *testing.T) {
		f := newFixture(t, nil)
		l, err := f.svc.CreateListing(ctx, f.seller, CreateListingInput{Title: "Lamp", PriceCents: 1200, Stock: 3})
		require.NoError(t, err)
		assert.Equal(t, listings.StatusPending, l.Status)

		first, err := f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionApprove)
		require.NoError(t, err)
		assert.True(t, first.Changed)

		second, err := f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionApprove)
		require.NoError(t, err)
		assert.False(t, second.Changed)
		assert.Equal(t, listings.StatusApproved, second.Listing.Status)

		assert.Equal(t, []notify.Event{notify.ListingApproved}, f.sent.Events())

		log, err := f.svc.ModerationLog(ctx, f.admin, l.ID, 0, 0)
		require.NoError(t, err)
		require.Len(t, log, 2)
		assert.True(t, log[0].Changed)
		assert.False(t, log[1].Changed)
	})

	t.Run("hide keeps approval and leaves public queries", func(t *testing.T) {
		f := newFixture(t, nil)
		l := f.approvedListing(t, f.seller, "Lamp", 1200, 3)

		public, err := f.svc.ListListings(ctx, f.buyer, ListingQuery{})
		require.NoError(t, err)
		assert.Len(t, public, 1)

		res, err := f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionHide)
		require.NoError(t, err)
		assert.Equal(t, listings.StatusApproved, res.Listing.Status)
		assert.False(t, res.Listing.Visible)
		assert.Equal(t, "approved/hidden", res.Listing.DisplayStatus())

		public, err = f.svc.ListListings(ctx, f.buyer, ListingQuery{})
		require.NoError(t, err)
		assert.Empty(t, public)

		_, err = f.svc.GetListing(ctx, f.buyer, l.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		own, err := f.svc.GetListing(ctx, f.seller, l.ID)
		require.NoError(t, err)
		assert.False(t, own.Visible)
	})

	t.Run("unhide on a visible listing is a no-op", func(t *testing.T) {
		f := newFixture(t, nil)
		l := f.approvedListing(t, f.seller, "Lamp", 1200, 3)

		res, err := f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionUnhide)
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.True(t, res.Listing.Visible)
	})

	t.Run("reject then approve", func(t *testing.T) {
		f := newFixture(t, nil)
		l := f.approvedListing(t, f.seller, "Lamp", 1200, 3)

		res, err := f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionReject)
		require.NoError(t, err)
		assert.Equal(t, listings.StatusRejected, res.Listing.Status)

		res, err = f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionApprove)
		require.NoError(t, err)
		assert.Equal(t, listings.StatusApproved, res.Listing.Status)
	})

	t.Run("delete then any action is not-found", func(t *testing.T) {
		f := newFixture(t, nil)
		l := f.approvedListing(t, f.seller, "Lamp", 1200, 3)

		res, err := f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionDelete)
		require.NoError(t, err)
		assert.Nil(t, res.Listing)

		_, err = f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionApprove)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("non-admins are denied before the listing is read", func(t *testing.T) {
		f := newFixture(t, nil)
		l, err := f.svc.CreateListing(ctx, f.seller, CreateListingInput{Title: "Lamp", PriceCents: 1200, Stock: 3})
		require.NoError(t, err)

		_, err = f.svc.ModerateListing(ctx, f.seller, l.ID, listings.ActionApprove)
		assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))

		_, err = f.svc.ModerateListing(ctx, f.buyer, 999, listings.ActionHide)
		assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))
	})

	t.Run("unknown action", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.svc.ModerateListing(ctx, f.admin, 1, listings.Action("promote"))
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	})
}

func TestListingOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	l := f.approvedListing(t, f.seller, "Lamp", 1200, 3)

	title := "Brass lamp"
	_, err := f.svc.UpdateListing(ctx, f.seller2, l.ID, UpdateListingInput{Title: &title})
	assert.Equal(t, "not-owner", apperr.ReasonOf(err))

	_, err = f.svc.UpdateListing(ctx, f.seller, l.ID, UpdateListingInput{Title: &title, Version: l.Version + 5})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	stock := 10
	got, err := f.svc.UpdateListing(ctx, f.seller, l.ID, UpdateListingInput{Title: &title, Stock: &stock, Version: l.Version})
	require.NoError(t, err)
	assert.Equal(t, "Brass lamp", got.Title)
	assert.Equal(t, 10, got.Stock)
	assert.Equal(t, listings.StatusApproved, got.Status)

	_, err = f.svc.CreateListing(ctx, f.buyer, CreateListingInput{Title: "Fake", PriceCents: 1})
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))

	_, err = f.svc.CreateListing(ctx, f.seller, CreateListingInput{Title: "  ", PriceCents: 1})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	require.NoError(t, f.svc.DeleteOwnListing(ctx, f.seller, l.ID))
	_, err = f.svc.GetListing(ctx, f.seller, l.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
