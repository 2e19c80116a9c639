package engine

import (
	"context"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/carts"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/storage"
)

type CartView struct {
	CartID     int64               `json:"cart_id"`
	Groups     []carts.SellerGroup `json:"groups"`
	ItemCount  int                 `json:"item_count"`
	TotalCents int64               `json:"total_cents"`
}

func (s *Service) cartView(ctx context.Context, r *storage.Repos, c *carts.Cart) (*CartView, error) {
	groups := carts.GroupBySeller(c.Items)

	ids := make([]int64, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.SellerID)
	}
	sellers, err := r.Businesses.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if b, ok := sellers[groups[i].SellerID]; ok {
			groups[i].Seller = b.Meta()
		}
	}

	return &CartView{
		CartID:     c.ID,
		Groups:     groups,
		ItemCount:  len(c.Items),
		TotalCents: carts.Total(groups),
	}, nil
}

// GetCart returns the actor's cart grouped by seller.
func (s *Service) GetCart(ctx context.Context, actor rolegate.Actor) (*CartView, error) {
	var out *CartView
	err := s.run(ctx, "GetCart", func(ctx context.Context) error {
		r := s.store.Repos()
		c, err := r.Carts.GetOrCreate(ctx, actor.ID)
		if err != nil {
			return err
		}
		out, err = s.cartView(ctx, r, c)
		return err
	})
	return out, err
}

// AddCartItem puts qty of a public listing into the actor's cart, snapshotting
// its seller, title and current price. Adding a listing already in the cart
// raises its quantity and keeps the first snapshot.
func (s *Service) AddCartItem(ctx context.Context, actor rolegate.Actor, listingID int64, qty int) (*CartView, error) {
	const op = "AddCartItem"
	if qty < 1 {
		return nil, apperr.New(apperr.KindInvalidInput, "engine."+op, "quantity must be at least 1")
	}

	var out *CartView
	err := s.run(ctx, op, func(ctx context.Context) error {
		return s.store.WithTx(ctx, func(r *storage.Repos) error {
			l, err := r.Listings.Get(ctx, listingID)
			if err != nil {
				return err
			}
			if !l.Public() {
				return apperr.Newf(apperr.KindNotFound, op, "listing %d", listingID)
			}

			c, err := r.Carts.GetOrCreate(ctx, actor.ID)
			if err != nil {
				return err
			}
			inCart := 0
			for _, it := range c.Items {
				if it.ListingID == listingID {
					inCart = it.Quantity
				}
			}
			if inCart+qty > l.Stock {
				return apperr.Newf(apperr.KindInsufficientStock, op, "listing %d has %d in stock", listingID, l.Stock)
			}

			item := &carts.CartItem{
				ListingID:  l.ID,
				SellerID:   l.SellerID,
				Title:      l.Title,
				Quantity:   qty,
				PriceCents: l.PriceCents,
			}
			if err := r.Carts.AddItem(ctx, c.ID, item); err != nil {
				return err
			}

			c, err = r.Carts.GetOrCreate(ctx, actor.ID)
			if err != nil {
				return err
			}
			out, err = s.cartView(ctx, r, c)
			return err
		})
	})
	return out, err
}

// SetCartItemQuantity replaces the quantity of one cart line.
func (s *Service) SetCartItemQuantity(ctx context.Context, actor rolegate.Actor, itemID int64, qty int) (*CartView, error) {
	const op = "SetCartItemQuantity"
	if qty < 1 {
		return nil, apperr.New(apperr.KindInvalidInput, "engine."+op, "quantity must be at least 1")
	}

	var out *CartView
	err := s.run(ctx, op, func(ctx context.Context) error {
		return s.store.WithTx(ctx, func(r *storage.Repos) error {
			c, err := r.Carts.GetOrCreate(ctx, actor.ID)
			if err != nil {
				return err
			}
			if err := r.Carts.SetQuantity(ctx, c.ID, itemID, qty); err != nil {
				return err
			}
			c, err = r.Carts.GetOrCreate(ctx, actor.ID)
			if err != nil {
				return err
			}
			out, err = s.cartView(ctx, r, c)
			return err
		})
	})
	return out, err
}

// RemoveCartItem removes one line from the actor's cart. Removing a line that
// is not there succeeds.
func (s *Service) RemoveCartItem(ctx context.Context, actor rolegate.Actor, itemID int64) (*CartView, error) {
	var out *CartView
	err := s.run(ctx, "RemoveCartItem", func(ctx context.Context) error {
		r := s.store.Repos()
		c, err := r.Carts.GetOrCreate(ctx, actor.ID)
		if err != nil {
			return err
		}
		if _, err := r.Carts.RemoveItem(ctx, c.ID, itemID); err != nil {
			return err
		}
		c.Items = carts.RemoveItem(c.Items, itemID)
		out, err = s.cartView(ctx, r, c)
		return err
	})
	return out, err
}
