package orders

import (
	"context"
	"time"
)

var QueryTimeoutDuration = time.Second * 5

// LineItem is copied from a cart item at checkout and never changes after.
type LineItem struct {
	ID         int64  `json:"id,omitempty"`
	ListingID  int64  `json:"listing_id"`
	Title      string `json:"title"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

func (li LineItem) TotalCents() int64 {
	return li.PriceCents * int64(li.Quantity)
}

type Order struct {
	ID              int64      `json:"id"`
	Number          string     `json:"order_number"`
	BuyerID         int64      `json:"buyer_id"`
	SellerID        int64      `json:"seller_id"`
	Items           []LineItem `json:"items"`
	Status          Status     `json:"status"`
	TotalCents      int64      `json:"total_cents"`
	CancelledReason *string    `json:"cancelled_reason,omitempty"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type UpdateStatusOpts struct {
	CancelledReason *string
}

type Filter struct {
	BuyerID  int64
	SellerID int64
	Status   Status
	Limit    int
	Offset   int
}

type Store interface {
	// Create persists o and its items, filling ids and timestamps.
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id int64) (*Order, error)
	// UpdateStatus writes o.Status if the stored version equals
	// expectedVersion, bumping o.Version on success.
	UpdateStatus(ctx context.Context, o *Order, expectedVersion int64, opts UpdateStatusOpts) error
	List(ctx context.Context, f Filter) ([]Order, error)
}
