package orders

import (
	"bazaar/internal/apperr"
	"bazaar/internal/domain/carts"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var edges = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", apperr.Newf(apperr.KindInvalidInput, "orders.ParseStatus", "unknown order status %q", s)
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to Status) bool {
	for _, next := range edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return len(edges[s]) == 0
}

// ReleasesStock reports whether taking the edge returns reserved stock.
func ReleasesStock(from, to Status) bool {
	return to == StatusCancelled && (from == StatusPending || from == StatusPaid)
}

// Total is the order amount for items.
func Total(items []LineItem) int64 {
	var total int64
	for _, li := range items {
		total += li.TotalCents()
	}
	return total
}

// FromGroup builds a pending order for buyerID out of one seller group.
func FromGroup(buyerID int64, number string, g carts.SellerGroup) *Order {
	items := make([]LineItem, 0, len(g.Items))
	for _, it := range g.Items {
		items = append(items, LineItem{
			ListingID:  it.ListingID,
			Title:      it.Title,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
		})
	}
	return &Order{
		Number:     number,
		BuyerID:    buyerID,
		SellerID:   g.SellerID,
		Items:      items,
		Status:     StatusPending,
		TotalCents: Total(items),
	}
}
