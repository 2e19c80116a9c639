package engine

import (
	"context"
	"strings"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/storage"
)

type CreateListingInput struct {
	// SellerID defaults to the actor.
	SellerID    int64
	Title       string
	Description string
	PriceCents  int64
	Stock       int
}

// UpdateListingInput changes only the non-nil fields. A non-zero Version must
// match the stored one.
type UpdateListingInput struct {
	Title       *string
	Description *string
	PriceCents  *int64
	Stock       *int
	Version     int64
}

type ListingQuery struct {
	SellerID int64
	Status   listings.Status
	Limit    int
	Offset   int
}

func validateListing(op string, l *listings.Listing) error {
	l.Title = strings.TrimSpace(l.Title)
	switch {
	case l.Title == "":
		return apperr.New(apperr.KindInvalidInput, op, "title is required")
	case l.PriceCents < 0:
		return apperr.New(apperr.KindInvalidInput, op, "price must not be negative")
	case l.Stock < 0:
		return apperr.New(apperr.KindInvalidInput, op, "stock must not be negative")
	}
	return nil
}

// CreateListing adds a pending, visible listing for a business seller.
func (s *Service) CreateListing(ctx context.Context, actor rolegate.Actor, in CreateListingInput) (*listings.Listing, error) {
	const op = "CreateListing"
	if in.SellerID == 0 {
		in.SellerID = actor.ID
	}

	l := &listings.Listing{
		SellerID:    in.SellerID,
		Title:       in.Title,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		Status:      listings.StatusPending,
		Visible:     true,
	}

	err := s.run(ctx, op, func(ctx context.Context) error {
		if err := authorize(op, actor, rolegate.ListingCreate, rolegate.Target{OwnerID: in.SellerID}); err != nil {
			return err
		}
		if err := validateListing(op, l); err != nil {
			return err
		}

		repos := s.store.Repos()
		seller, err := repos.Users.Get(ctx, in.SellerID)
		if err != nil {
			return err
		}
		if seller.Role != rolegate.Business || !seller.CanAct() {
			return apperr.Newf(apperr.KindInvalidInput, op, "user %d is not an active business", in.SellerID)
		}
		return repos.Listings.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("listing created", "listing_id", l.ID, "seller_id", l.SellerID, "actor_id", actor.ID)
	return l, nil
}

// UpdateListing edits a listing's content and stock. Moderation state is not
// touched here.
func (s *Service) UpdateListing(ctx context.Context, actor rolegate.Actor, id int64, in UpdateListingInput) (*listings.Listing, error) {
	const op = "UpdateListing"
	var out *listings.Listing

	err := s.run(ctx, op, func(ctx context.Context) error {
		return s.store.WithTx(ctx, func(r *storage.Repos) error {
			l, err := r.Listings.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := authorize(op, actor, rolegate.ListingEdit, rolegate.Target{OwnerID: l.SellerID}); err != nil {
				return err
			}
			if in.Version != 0 && in.Version != l.Version {
				return apperr.Newf(apperr.KindConflict, op, "listing %d is at version %d, not %d", id, l.Version, in.Version)
			}

			if in.Title != nil {
				l.Title = *in.Title
			}
			if in.Description != nil {
				l.Description = *in.Description
			}
			if in.PriceCents != nil {
				l.PriceCents = *in.PriceCents
			}
			current := l.Stock
			if in.Stock != nil {
				l.Stock = *in.Stock
			}
			if err := validateListing(op, l); err != nil {
				return err
			}

			if err := r.Listings.Update(ctx, l, l.Version); err != nil {
				return err
			}
			if in.Stock != nil && *in.Stock != current {
				if err := r.Listings.AdjustStock(ctx, id, *in.Stock-current); err != nil {
					return err
				}
			}

			out, err = r.Listings.Get(ctx, id)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return out, nil
}

// DeleteOwnListing hard-deletes a listing on behalf of its seller.
func (s *Service) DeleteOwnListing(ctx context.Context, actor rolegate.Actor, id int64) error {
	const op = "DeleteOwnListing"

	err := s.run(ctx, op, func(ctx context.Context) error {
		return s.store.WithTx(ctx, func(r *storage.Repos) error {
			l, err := r.Listings.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := authorize(op, actor, rolegate.ListingDeleteOwn, rolegate.Target{OwnerID: l.SellerID}); err != nil {
				return err
			}
			return r.Listings.Delete(ctx, id)
		})
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.logger.Infow("listing deleted by owner", "listing_id", id, "actor_id", actor.ID)
	return nil
}

// canSeeAll reports whether actor sees listings regardless of moderation state
// for the given seller.
func canSeeAll(actor rolegate.Actor, sellerID int64) bool {
	return actor.Role == rolegate.Admin || (actor.Role == rolegate.Business && actor.ID == sellerID)
}

// GetListing returns a listing if actor may see it. Listings that are not
// approved and visible are reported as not-found to everyone but their seller
// and admins. The zero Actor is an anonymous buyer.
func (s *Service) GetListing(ctx context.Context, actor rolegate.Actor, id int64) (*listings.Listing, error) {
	const op = "GetListing"
	var out *listings.Listing

	err := s.run(ctx, op, func(ctx context.Context) error {
		if s.cache != nil {
			l, err := s.cache.Get(ctx, id)
			switch {
			case err != nil:
				s.logger.Warnw("listing cache read failed", "listing_id", id, "error", err)
			case l != nil && l.Public():
				out = l
				return nil
			case l != nil:
				s.invalidate(ctx, id)
			}
		}

		l, err := s.store.Repos().Listings.Get(ctx, id)
		if err != nil {
			return err
		}
		if !l.Public() && !canSeeAll(actor, l.SellerID) {
			return apperr.Newf(apperr.KindNotFound, op, "listing %d", id)
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil && out.Public() {
		s.cacheListing(ctx, out)
	}
	return out, nil
}

// cacheListing stores l, then re-reads it. A transition that committed
// between the caller's read and the write leaves a different version in the
// store, and the entry is dropped again.
func (s *Service) cacheListing(ctx context.Context, l *listings.Listing) {
	ctx = context.WithoutCancel(ctx)
	if err := s.cache.Set(ctx, l); err != nil {
		s.logger.Warnw("listing cache write failed", "listing_id", l.ID, "error", err)
		return
	}

	cur, err := s.store.Repos().Listings.Get(ctx, l.ID)
	if err == nil && cur.Version == l.Version && cur.Public() {
		return
	}
	s.invalidate(ctx, l.ID)
}

// ListListings returns public listings, or every listing of a seller when the
// seller (or an admin) asks.
func (s *Service) ListListings(ctx context.Context, actor rolegate.Actor, q ListingQuery) ([]listings.Listing, error) {
	const op = "ListListings"
	var out []listings.Listing

	err := s.run(ctx, op, func(ctx context.Context) error {
		f := listings.Filter{
			SellerID:   q.SellerID,
			Status:     q.Status,
			PublicOnly: !(actor.Role == rolegate.Admin || (q.SellerID != 0 && canSeeAll(actor, q.SellerID))),
			Limit:      q.Limit,
			Offset:     q.Offset,
		}
		var err error
		out, err = s.store.Repos().Listings.List(ctx, f)
		return err
	})
	return out, err
}
