package carts

import (
	"context"
	"time"
)

var QueryTimeoutDuration = time.Second * 5

// Cart is a buyer's single active cart. Items are in insertion order.
type Cart struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"owner_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem snapshots the listing's seller, title and price when it is added.
// Later price edits on the listing do not reach the cart.
type CartItem struct {
	ID         int64     `json:"id"`
	CartID     int64     `json:"cart_id"`
	ListingID  int64     `json:"listing_id"`
	SellerID   int64     `json:"seller_id"`
	Title      string    `json:"title"`
	Quantity   int       `json:"quantity"`
	PriceCents int64     `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

func (it CartItem) LineTotalCents() int64 {
	return it.PriceCents * int64(it.Quantity)
}

type Store interface {
	GetOrCreate(ctx context.Context, ownerID int64) (*Cart, error)
	// Lock returns the owner's cart and holds it for the rest of the unit of
	// work, so two checkouts of one cart serialize.
	Lock(ctx context.Context, ownerID int64) (*Cart, error)
	// AddItem inserts item or, when the listing is already in the cart, adds
	// to its quantity keeping the original snapshot. item is updated in place.
	AddItem(ctx context.Context, cartID int64, item *CartItem) error
	SetQuantity(ctx context.Context, cartID, itemID int64, qty int) error
	// RemoveItem reports whether a row was removed; a missing item is not an error.
	RemoveItem(ctx context.Context, cartID, itemID int64) (bool, error)
	RemoveItems(ctx context.Context, cartID int64, itemIDs []int64) error
}
