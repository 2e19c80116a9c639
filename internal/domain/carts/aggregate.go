package carts

import "bazaar/internal/domain/businesses"

// SellerGroup is one seller's share of a cart. A checkout turns each group
// into one order.
type SellerGroup struct {
	SellerID      int64            `json:"seller_id"`
	Seller        *businesses.Meta `json:"seller,omitempty"`
	Items         []CartItem       `json:"items"`
	SubtotalCents int64            `json:"subtotal_cents"`
}

// GroupBySeller groups items by seller in a single pass. Groups appear in the
// order their seller is first seen, items keep their cart order.
func GroupBySeller(items []CartItem) []SellerGroup {
	groups := []SellerGroup{}
	index := make(map[int64]int)

	for _, it := range items {
		i, ok := index[it.SellerID]
		if !ok {
			i = len(groups)
			index[it.SellerID] = i
			groups = append(groups, SellerGroup{SellerID: it.SellerID})
		}
		groups[i].Items = append(groups[i].Items, it)
		groups[i].SubtotalCents += it.LineTotalCents()
	}
	return groups
}

// Total sums the subtotals of groups.
func Total(groups []SellerGroup) int64 {
	var total int64
	for _, g := range groups {
		total += g.SubtotalCents
	}
	return total
}

// CartTotal is Total(GroupBySeller(items)).
func CartTotal(items []CartItem) int64 {
	return Total(GroupBySeller(items))
}

// RemoveItem returns items without itemID. Removing an absent id returns an
// equal slice.
func RemoveItem(items []CartItem, itemID int64) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.ID != itemID {
			out = append(out, it)
		}
	}
	return out
}

// Select keeps only the groups of the given sellers, in cart order. No sellers
// means every group.
func Select(groups []SellerGroup, sellerIDs ...int64) []SellerGroup {
	if len(sellerIDs) == 0 {
		return groups
	}
	want := make(map[int64]bool, len(sellerIDs))
	for _, id := range sellerIDs {
		want[id] = true
	}
	out := []SellerGroup{}
	for _, g := range groups {
		if want[g.SellerID] {
			out = append(out, g)
		}
	}
	return out
}
