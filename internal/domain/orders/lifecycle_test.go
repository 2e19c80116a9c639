package orders

import (
	"testing"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/carts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled}
	legal := map[[2]Status]bool{
		{StatusPending, StatusPaid}:      true,
		{StatusPending, StatusCancelled}: true,
		{StatusPaid, StatusShipped}:      true,
		{StatusPaid, StatusCancelled}:    true,
		{StatusShipped, StatusDelivered}: true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusShipped.Terminal())
}

func TestReleasesStock(t *testing.T) {
	assert.True(t, ReleasesStock(StatusPending, StatusCancelled))
	assert.True(t, ReleasesStock(StatusPaid, StatusCancelled))
	assert.False(t, ReleasesStock(StatusShipped, StatusCancelled))
	assert.False(t, ReleasesStock(StatusPending, StatusPaid))
}

func TestFromGroupTotals(t *testing.T) {
	g := carts.SellerGroup{
		SellerID: 7,
		Items: []carts.CartItem{
			{ListingID: 1, Title: "Mug", Quantity: 3, PriceCents: 450},
			{ListingID: 2, Title: "Plate", Quantity: 1, PriceCents: 1200},
		},
		SubtotalCents: 2550,
	}

	o := FromGroup(42, "BZR-TEST", g)

	assert.Equal(t, int64(42), o.BuyerID)
	assert.Equal(t, int64(7), o.SellerID)
	assert.Equal(t, StatusPending, o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, int64(2550), o.TotalCents)
	assert.Equal(t, Total(o.Items), o.TotalCents)
	assert.Equal(t, g.SubtotalCents, o.TotalCents)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestNumberGenerator(t *testing.T) {
	g, err := NewNumberGenerator("test-salt", "BZR")
	require.NoError(t, err)

	a, err := g.Generate(42)
	require.NoError(t, err)
	b, err := g.Generate(42)
	require.NoError(t, err)

	assert.Regexp(t, `^BZR-[A-Z0-9]{8,}$`, a)
	assert.NotEqual(t, a, b)
}
