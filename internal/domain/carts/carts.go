package carts

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/apperr"
	"bazaar/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

// GetOrCreate returns the owner's cart, creating it on first use. A
// concurrent creator wins the insert silently, which keeps the surrounding
// transaction usable.
func (r *Repository) GetOrCreate(ctx context.Context, ownerID int64) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := r.db.Exec(ctx, `
INSERT INTO carts (owner_id)
VALUES ($1)
ON CONFLICT (owner_id) DO NOTHING`, ownerID); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}

	c, err := r.selectCart(ctx, ownerID, false)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	return c, nil
}

func (r *Repository) Lock(ctx context.Context, ownerID int64) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	c, err := r.selectCart(ctx, ownerID, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.KindNotFound, "carts.Lock", "cart of user %d", ownerID)
		}
		return nil, err
	}
	return c, nil
}

func (r *Repository) selectCart(ctx context.Context, ownerID int64, forUpdate bool) (*Cart, error) {
	q := `SELECT id, owner_id, created_at, updated_at FROM carts WHERE owner_id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}

	var c Cart
	if err := r.db.QueryRow(ctx, q, ownerID).Scan(&c.ID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("select cart: %w", err)
	}

	items, err := r.loadItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (r *Repository) loadItems(ctx context.Context, cartID int64) ([]CartItem, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, cart_id, listing_id, seller_id, title, quantity, price_cents, created_at
FROM cart_items
WHERE cart_id = $1
ORDER BY id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}
	defer rows.Close()

	items := []CartItem{}
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ListingID, &it.SellerID, &it.Title,
			&it.Quantity, &it.PriceCents, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repository) AddItem(ctx context.Context, cartID int64, item *CartItem) error {
	if item.Quantity <= 0 {
		return apperr.New(apperr.KindInvalidInput, "carts.AddItem", "quantity must be > 0")
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, `
INSERT INTO cart_items (cart_id, listing_id, seller_id, title, quantity, price_cents)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (cart_id, listing_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id, seller_id, title, quantity, price_cents, created_at`,
		cartID, item.ListingID, item.SellerID, item.Title, item.Quantity, item.PriceCents,
	).Scan(&item.ID, &item.SellerID, &item.Title, &item.Quantity, &item.PriceCents, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	item.CartID = cartID

	if _, err := r.db.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("touch cart: %w", err)
	}
	return nil
}

func (r *Repository) SetQuantity(ctx context.Context, cartID, itemID int64, qty int) error {
	if qty <= 0 {
		return apperr.New(apperr.KindInvalidInput, "carts.SetQuantity", "quantity must be > 0")
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
UPDATE cart_items SET quantity = $3
WHERE id = $2 AND cart_id = $1`, cartID, itemID, qty)
	if err != nil {
		return fmt.Errorf("update qty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindNotFound, "carts.SetQuantity", "cart item %d", itemID)
	}
	return nil
}

func (r *Repository) RemoveItem(ctx context.Context, cartID, itemID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $2 AND cart_id = $1`, cartID, itemID)
	if err != nil {
		return false, fmt.Errorf("remove item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) RemoveItems(ctx context.Context, cartID int64, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = ANY($2)`, cartID, itemIDs)
	if err != nil {
		return fmt.Errorf("remove items: %w", err)
	}
	return nil
}
