package engine

import (
	"context"
	"errors"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/carts"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/storage"
	"bazaar/internal/notify"
)

type CheckoutResult struct {
	Orders     []orders.Order `json:"orders"`
	TotalCents int64          `json:"total_cents"`
}

// Checkout turns the actor's cart into one pending order per seller group.
// sellerIDs restricts it to those sellers' groups; none means the whole cart.
//
// The whole checkout is one unit of work: for every line the listing must
// still be public and have stock, stock is reserved, the order is written with
// its price snapshot, and the consumed cart lines are removed. Any failure
// (insufficient-stock, a listing that disappeared) leaves stock, orders and
// cart exactly as they were.
func (s *Service) Checkout(ctx context.Context, actor rolegate.Actor, sellerIDs ...int64) (*CheckoutResult, error) {
	const op = "Checkout"
	res := &CheckoutResult{Orders: []orders.Order{}}
	var touched []int64

	err := s.run(ctx, op, func(ctx context.Context) error {
		return s.store.WithTx(ctx, func(r *storage.Repos) error {
			c, err := r.Carts.Lock(ctx, actor.ID)
			if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				return err
			}
			if c == nil || len(c.Items) == 0 {
				return apperr.New(apperr.KindInvalidInput, op, "cart is empty")
			}

			groups := carts.Select(carts.GroupBySeller(c.Items), sellerIDs...)
			if len(groups) == 0 {
				return apperr.New(apperr.KindInvalidInput, op, "no cart items for the selected sellers")
			}

			var consumed []int64
			for _, g := range groups {
				for _, it := range g.Items {
					l, err := r.Listings.Get(ctx, it.ListingID)
					if err != nil {
						return err
					}
					if !l.Public() {
						return apperr.Newf(apperr.KindNotFound, op, "listing %d is no longer available", it.ListingID)
					}
					if err := r.Listings.AdjustStock(ctx, it.ListingID, -it.Quantity); err != nil {
						return err
					}
					consumed = append(consumed, it.ID)
					touched = append(touched, it.ListingID)
				}

				number, err := s.numbers.Generate(actor.ID)
				if err != nil {
					return err
				}
				o := orders.FromGroup(actor.ID, number, g)
				if err := r.Orders.Create(ctx, o); err != nil {
					return err
				}
				res.Orders = append(res.Orders, *o)
				res.TotalCents += o.TotalCents
			}

			return r.Carts.RemoveItems(ctx, c.ID, consumed)
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, touched...)
	for _, o := range res.Orders {
		s.logger.Infow("order created", "order_id", o.ID, "order_number", o.Number, "buyer_id", o.BuyerID, "seller_id", o.SellerID, "total_cents", o.TotalCents)
		s.dispatch(ctx, notify.OrderCreated, notify.Payload{
			EntityID:     o.ID,
			ActorID:      actor.ID,
			RecipientIDs: recipients(actor.ID, o.SellerID),
			Status:       string(o.Status),
			Reference:    o.Number,
		})
	}
	return res, nil
}
