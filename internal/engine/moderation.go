package engine

import (
	"context"

	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/storage"
	"bazaar/internal/notify"
)

type ModerationResult struct {
	// Listing is nil after a delete.
	Listing *listings.Listing         `json:"listing,omitempty"`
	Changed bool                      `json:"changed"`
	Record  listings.ModerationRecord `json:"record"`
}

var moderationEvents = map[listings.Action]notify.Event{
	listings.ActionApprove: notify.ListingApproved,
	listings.ActionReject:  notify.ListingRejected,
	listings.ActionHide:    notify.ListingHidden,
	listings.ActionUnhide:  notify.ListingUnhidden,
	listings.ActionDelete:  notify.ListingDeleted,
}

// ModerateListing applies an admin moderation action. The gate runs before the
// listing is loaded. The state change and its audit record commit together;
// an action whose target state already holds still succeeds and is audited
// with Changed=false.
func (s *Service) ModerateListing(ctx context.Context, actor rolegate.Actor, id int64, action listings.Action) (*ModerationResult, error) {
	const op = "ModerateListing"
	res := &ModerationResult{}
	var sellerID int64

	err := s.run(ctx, op, func(ctx context.Context) error {
		if _, err := listings.ParseAction(string(action)); err != nil {
			return err
		}
		if err := authorize(op, actor, action.GateAction(), rolegate.Target{}); err != nil {
			return err
		}

		return s.store.WithTx(ctx, func(r *storage.Repos) error {
			l, err := r.Listings.Get(ctx, id)
			if err != nil {
				return err
			}
			sellerID = l.SellerID

			if action == listings.ActionDelete {
				if err := r.Listings.Delete(ctx, id); err != nil {
					return err
				}
				res.Listing, res.Changed = nil, true
			} else {
				next, changed, err := listings.ApplyModeration(*l, action)
				if err != nil {
					return err
				}
				if changed {
					if err := r.Listings.Update(ctx, &next, l.Version); err != nil {
						return err
					}
				}
				res.Listing, res.Changed = &next, changed
			}

			res.Record = listings.ModerationRecord{
				ActorID:   actor.ID,
				ListingID: id,
				Action:    action,
				Changed:   res.Changed,
			}
			return r.Listings.AppendModeration(ctx, &res.Record)
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("listing moderated", "listing_id", id, "action", action, "changed", res.Changed, "actor_id", actor.ID)
	if res.Changed {
		s.invalidate(ctx, id)
		s.dispatch(ctx, moderationEvents[action], notify.Payload{
			EntityID:     id,
			ActorID:      actor.ID,
			RecipientIDs: recipients(actor.ID, sellerID),
			Status:       string(action),
		})
	}
	return res, nil
}

// ModerationLog lists audit records, oldest first. listingID 0 lists all.
func (s *Service) ModerationLog(ctx context.Context, actor rolegate.Actor, listingID int64, limit, offset int) ([]listings.ModerationRecord, error) {
	const op = "ModerationLog"
	var out []listings.ModerationRecord

	err := s.run(ctx, op, func(ctx context.Context) error {
		if err := authorize(op, actor, rolegate.ModerationLog, rolegate.Target{}); err != nil {
			return err
		}
		var err error
		out, err = s.store.Repos().Listings.ModerationLog(ctx, listingID, limit, offset)
		return err
	})
	return out, err
}
