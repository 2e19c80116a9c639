package carts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sellerA int64 = 100
	sellerB int64 = 200
)

func sampleItems() []CartItem {
	return []CartItem{
		{ID: 1, ListingID: 11, SellerID: sellerA, Quantity: 1, PriceCents: 100},
		{ID: 2, ListingID: 21, SellerID: sellerB, Quantity: 2, PriceCents: 50},
		{ID: 3, ListingID: 12, SellerID: sellerA, Quantity: 1, PriceCents: 20},
	}
}

func TestGroupBySellerFirstSeenOrder(t *testing.T) {
	groups := GroupBySeller(sampleItems())

	require.Len(t, groups, 2)
	assert.Equal(t, sellerA, groups[0].SellerID)
	assert.Equal(t, int64(120), groups[0].SubtotalCents)
	assert.Equal(t, []int64{1, 3}, itemIDs(groups[0].Items))

	assert.Equal(t, sellerB, groups[1].SellerID)
	assert.Equal(t, int64(100), groups[1].SubtotalCents)

	assert.Equal(t, int64(220), Total(groups))
	assert.Equal(t, int64(220), CartTotal(sampleItems()))
}

func TestGroupBySellerEmpty(t *testing.T) {
	groups := GroupBySeller(nil)
	assert.Empty(t, groups)
	assert.NotNil(t, groups)
	assert.Zero(t, Total(groups))
}

func TestRemoveItemDropsEmptyGroup(t *testing.T) {
	items := RemoveItem(sampleItems(), 2)
	groups := GroupBySeller(items)

	require.Len(t, groups, 1)
	assert.Equal(t, sellerA, groups[0].SellerID)
	assert.Equal(t, int64(120), Total(groups))
}

func TestRemoveItemIdempotent(t *testing.T) {
	once := RemoveItem(sampleItems(), 3)
	twice := RemoveItem(once, 3)
	assert.Equal(t, once, twice)

	assert.Equal(t, sampleItems(), RemoveItem(sampleItems(), 999))
}

func TestSelect(t *testing.T) {
	groups := GroupBySeller(sampleItems())

	assert.Len(t, Select(groups), 2)

	only := Select(groups, sellerB)
	require.Len(t, only, 1)
	assert.Equal(t, sellerB, only[0].SellerID)

	assert.Empty(t, Select(groups, 999))
}

func itemIDs(items []CartItem) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
