package orders

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/apperr"
	"bazaar/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{q: q}
}

// Create inserts the order header and its line items. Call it inside a unit of
// work so the stock reservation commits with it.
func (r *Repository) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.q.QueryRow(ctx, `
INSERT INTO orders (order_number, buyer_id, seller_id, status, total_cents)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, version, created_at, updated_at`,
		o.Number, o.BuyerID, o.SellerID, o.Status, o.TotalCents,
	).Scan(&o.ID, &o.Version, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	for i := range o.Items {
		li := &o.Items[i]
		if err := r.q.QueryRow(ctx, `
INSERT INTO order_items (order_id, listing_id, title, quantity, price_cents)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
			o.ID, li.ListingID, li.Title, li.Quantity, li.PriceCents,
		).Scan(&li.ID); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var o Order
	err := r.q.QueryRow(ctx, `
SELECT id, order_number, buyer_id, seller_id, status, total_cents, cancelled_reason, version, created_at, updated_at
FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.Number, &o.BuyerID, &o.SellerID, &o.Status, &o.TotalCents,
			&o.CancelledReason, &o.Version, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.KindNotFound, "orders.Get", "order %d", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *Repository) loadItems(ctx context.Context, orderID int64) ([]LineItem, error) {
	rows, err := r.q.Query(ctx, `
SELECT id, listing_id, title, quantity, price_cents
FROM order_items
WHERE order_id = $1
ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := []LineItem{}
	for rows.Next() {
		var li LineItem
		if err := rows.Scan(&li.ID, &li.ListingID, &li.Title, &li.Quantity, &li.PriceCents); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, o *Order, expectedVersion int64, opts UpdateStatusOpts) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.q.QueryRow(ctx, `
UPDATE orders
SET status           = $3,
    cancelled_reason = CASE WHEN $3 = 'cancelled' THEN $4 ELSE NULL END,
    cancelled_at     = CASE WHEN $3 = 'cancelled' THEN now() ELSE NULL END,
    version          = version + 1,
    updated_at       = now()
WHERE id = $1 AND version = $2
RETURNING version, cancelled_reason, updated_at`,
		o.ID, expectedVersion, o.Status, opts.CancelledReason,
	).Scan(&o.Version, &o.CancelledReason, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.Newf(apperr.KindConflict, "orders.UpdateStatus", "order %d changed since version %d", o.ID, expectedVersion)
		}
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, f Filter) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.q.Query(ctx, `
SELECT id, order_number, buyer_id, seller_id, status, total_cents, cancelled_reason, version, created_at, updated_at
FROM orders
WHERE ($1 = 0 OR buyer_id = $1)
  AND ($2 = 0 OR seller_id = $2)
  AND ($3 = '' OR status = $3)
ORDER BY id DESC
LIMIT $4 OFFSET $5`,
		f.BuyerID, f.SellerID, string(f.Status), limit, f.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Number, &o.BuyerID, &o.SellerID, &o.Status, &o.TotalCents,
			&o.CancelledReason, &o.Version, &o.CreatedAt, &o.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.loadItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}
