package engine

import (
	"context"
	"errors"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/storage"
	"bazaar/internal/notify"
)

type StatusChange struct {
	To     orders.Status
	Reason *string
	// Version, when non-zero, must equal the order's current version.
	Version int64
}

type OrderScope string

const (
	ScopeBuyer  OrderScope = "buyer"
	ScopeSeller OrderScope = "seller"
	ScopeAll    OrderScope = "all"
)

type OrderQuery struct {
	Scope  OrderScope
	Status orders.Status
	Limit  int
	Offset int
}

var orderEvents = map[orders.Status]notify.Event{
	orders.StatusPaid:      notify.OrderPaid,
	orders.StatusShipped:   notify.OrderShipped,
	orders.StatusDelivered: notify.OrderDelivered,
	orders.StatusCancelled: notify.OrderCancelled,
}

// UpdateOrderStatus moves an order along one edge of its lifecycle. The gate
// runs before the edge check so a caller without rights learns nothing about
// the order's state. Cancelling from pending or paid returns the reserved
// stock in the same unit of work as the status change.
func (s *Service) UpdateOrderStatus(ctx context.Context, actor rolegate.Actor, id int64, change StatusChange) (*orders.Order, error) {
	const op = "UpdateOrderStatus"
	var out *orders.Order
	var released []int64

	err := s.run(ctx, op, func(ctx context.Context) error {
		return s.store.WithTx(ctx, func(r *storage.Repos) error {
			o, err := r.Orders.Get(ctx, id)
			if err != nil {
				return err
			}
			from := o.Status

			if err := authorize(op, actor, rolegate.OrderUpdateStatus, rolegate.Target{
				OwnerID: o.SellerID,
				BuyerID: o.BuyerID,
				From:    string(from),
				To:      string(change.To),
			}); err != nil {
				return err
			}
			if change.Version != 0 && change.Version != o.Version {
				return apperr.Newf(apperr.KindConflict, op, "order %d is at version %d, not %d", id, o.Version, change.Version)
			}
			if !orders.CanTransition(from, change.To) {
				return apperr.Newf(apperr.KindInvalidTransition, op, "order cannot move from %s to %s", from, change.To)
			}

			if orders.ReleasesStock(from, change.To) {
				for _, li := range o.Items {
					err := r.Listings.AdjustStock(ctx, li.ListingID, li.Quantity)
					if errors.Is(err, apperr.ErrNotFound) {
						s.logger.Infow("stock not released, listing deleted", "order_id", id, "listing_id", li.ListingID)
						continue
					}
					if err != nil {
						return err
					}
					released = append(released, li.ListingID)
				}
			}

			o.Status = change.To
			if err := r.Orders.UpdateStatus(ctx, o, o.Version, orders.UpdateStatusOpts{CancelledReason: change.Reason}); err != nil {
				return err
			}
			out = o
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, released...)
	s.logger.Infow("order status updated", "order_id", id, "status", out.Status, "actor_id", actor.ID, "actor_role", actor.Role)
	s.dispatch(ctx, orderEvents[out.Status], notify.Payload{
		EntityID:     out.ID,
		ActorID:      actor.ID,
		RecipientIDs: recipients(actor.ID, out.BuyerID, out.SellerID),
		Status:       string(out.Status),
		Reference:    out.Number,
	})
	return out, nil
}

func (s *Service) GetOrder(ctx context.Context, actor rolegate.Actor, id int64) (*orders.Order, error) {
	const op = "GetOrder"
	var out *orders.Order

	err := s.run(ctx, op, func(ctx context.Context) error {
		o, err := s.store.Repos().Orders.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := authorize(op, actor, rolegate.OrderView, rolegate.Target{OwnerID: o.SellerID, BuyerID: o.BuyerID}); err != nil {
			return err
		}
		out = o
		return nil
	})
	return out, err
}

// ListOrders lists the actor's orders as buyer or as seller; ScopeAll is for
// admins.
func (s *Service) ListOrders(ctx context.Context, actor rolegate.Actor, q OrderQuery) ([]orders.Order, error) {
	const op = "ListOrders"
	var out []orders.Order

	err := s.run(ctx, op, func(ctx context.Context) error {
		f := orders.Filter{Status: q.Status, Limit: q.Limit, Offset: q.Offset}
		switch q.Scope {
		case ScopeBuyer, "":
			f.BuyerID = actor.ID
		case ScopeSeller:
			f.SellerID = actor.ID
		case ScopeAll:
			if actor.Role != rolegate.Admin {
				return apperr.New(apperr.KindDenied, op, string(rolegate.WrongRole))
			}
		default:
			return apperr.Newf(apperr.KindInvalidInput, op, "unknown scope %q", q.Scope)
		}

		var err error
		out, err = s.store.Repos().Orders.List(ctx, f)
		return err
	})
	return out, err
}
