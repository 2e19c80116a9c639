package memstore

import (
	"context"
	"strings"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/businesses"
	"bazaar/internal/domain/carts"
	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/users"
)

type usersRepo struct {
	s  *Store
	tx bool
}

func (r *usersRepo) Create(ctx context.Context, u *users.User) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		for _, other := range st.users {
			if strings.EqualFold(other.Email, u.Email) && !other.Deleted() {
				return apperr.Wrap(apperr.KindConflict, "users.Create", users.ErrDuplicateEmail)
			}
		}
		now := r.s.now()
		u.ID = st.next("users")
		u.Version = 1
		u.CreatedAt, u.UpdatedAt = now, now
		st.users[u.ID] = *u
		return nil
	})
}

func (r *usersRepo) Get(ctx context.Context, id int64) (*users.User, error) {
	var out users.User
	err := r.s.do(ctx, r.tx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "users.Get", "user %d", id)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	var out *users.User
	err := r.s.do(ctx, r.tx, func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) && !u.Deleted() {
				u := u
				out = &u
				return nil
			}
		}
		return apperr.New(apperr.KindNotFound, "users.GetByEmail", "user")
	})
	return out, err
}

func (r *usersRepo) SetState(ctx context.Context, u *users.User, expectedVersion int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		cur, ok := st.users[u.ID]
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "users.SetState", "user %d", u.ID)
		}
		if cur.Version != expectedVersion {
			return apperr.Newf(apperr.KindConflict, "users.SetState", "user %d changed since version %d", u.ID, expectedVersion)
		}
		cur.Active = u.Active
		cur.DeletedAt = u.DeletedAt
		cur.Version++
		cur.UpdatedAt = r.s.now()
		st.users[u.ID] = cur

		u.Version, u.UpdatedAt = cur.Version, cur.UpdatedAt
		return nil
	})
}

func (r *usersRepo) List(ctx context.Context, f users.Filter) ([]users.User, error) {
	var out []users.User
	err := r.s.do(ctx, r.tx, func(st *state) error {
		all := []users.User{}
		for _, id := range sortedKeys(st.users, false) {
			u := st.users[id]
			if f.Role != "" && u.Role != f.Role {
				continue
			}
			if f.Active != nil && u.Active != *f.Active {
				continue
			}
			if !f.IncludeDelete && u.Deleted() {
				continue
			}
			all = append(all, u)
		}
		out = page(all, f.Limit, f.Offset, 50)
		return nil
	})
	return out, err
}

type businessesRepo struct {
	s  *Store
	tx bool
}

func (r *businessesRepo) Create(ctx context.Context, b *businesses.Business) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		if _, ok := st.users[b.UserID]; !ok {
			return apperr.Newf(apperr.KindInvalidInput, "businesses.Create", "user %d does not exist", b.UserID)
		}
		if _, ok := st.businesses[b.UserID]; ok {
			return apperr.Newf(apperr.KindConflict, "businesses.Create", "user %d already has a business", b.UserID)
		}
		if b.SubscriptionPlan == "" {
			b.SubscriptionPlan = "basic"
		}
		b.CreatedAt = r.s.now()
		st.businesses[b.UserID] = *b
		return nil
	})
}

func (r *businessesRepo) Get(ctx context.Context, userID int64) (*businesses.Business, error) {
	var out businesses.Business
	err := r.s.do(ctx, r.tx, func(st *state) error {
		b, ok := st.businesses[userID]
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "businesses.Get", "business %d", userID)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *businessesRepo) GetMany(ctx context.Context, userIDs []int64) (map[int64]*businesses.Business, error) {
	out := make(map[int64]*businesses.Business, len(userIDs))
	err := r.s.do(ctx, r.tx, func(st *state) error {
		for _, id := range userIDs {
			if b, ok := st.businesses[id]; ok {
				b := b
				out[id] = &b
			}
		}
		return nil
	})
	return out, err
}

type listingsRepo struct {
	s  *Store
	tx bool
}

func (r *listingsRepo) Create(ctx context.Context, l *listings.Listing) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		if _, ok := st.users[l.SellerID]; !ok {
			return apperr.Newf(apperr.KindInvalidInput, "listings.Create", "seller %d does not exist", l.SellerID)
		}
		now := r.s.now()
		l.ID = st.next("listings")
		l.Version = 1
		l.CreatedAt, l.UpdatedAt = now, now
		st.listings[l.ID] = *l
		return nil
	})
}

func (r *listingsRepo) Get(ctx context.Context, id int64) (*listings.Listing, error) {
	var out listings.Listing
	err := r.s.do(ctx, r.tx, func(st *state) error {
		l, ok := st.listings[id]
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "listings.Get", "listing %d", id)
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *listingsRepo) Update(ctx context.Context, l *listings.Listing, expectedVersion int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		cur, ok := st.listings[l.ID]
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "listings.Update", "listing %d", l.ID)
		}
		if cur.Version != expectedVersion {
			return apperr.Newf(apperr.KindConflict, "listings.Update", "listing %d changed since version %d", l.ID, expectedVersion)
		}
		cur.Title = l.Title
		cur.Description = l.Description
		cur.PriceCents = l.PriceCents
		cur.Status = l.Status
		cur.Visible = l.Visible
		cur.Version++
		cur.UpdatedAt = r.s.now()
		st.listings[l.ID] = cur

		l.Version, l.Stock, l.UpdatedAt = cur.Version, cur.Stock, cur.UpdatedAt
		return nil
	})
}

func (r *listingsRepo) Delete(ctx context.Context, id int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		if _, ok := st.listings[id]; !ok {
			return apperr.Newf(apperr.KindNotFound, "listings.Delete", "listing %d", id)
		}
		delete(st.listings, id)
		// cart_items.listing_id cascades on delete
		for owner, c := range st.carts {
			kept := make([]carts.CartItem, 0, len(c.Items))
			for _, it := range c.Items {
				if it.ListingID != id {
					kept = append(kept, it)
				}
			}
			if len(kept) != len(c.Items) {
				c.Items = kept
				st.carts[owner] = c
			}
		}
		return nil
	})
}

func (r *listingsRepo) List(ctx context.Context, f listings.Filter) ([]listings.Listing, error) {
	var out []listings.Listing
	err := r.s.do(ctx, r.tx, func(st *state) error {
		all := []listings.Listing{}
		for _, id := range sortedKeys(st.listings, true) {
			l := st.listings[id]
			if f.SellerID != 0 && l.SellerID != f.SellerID {
				continue
			}
			if f.Status != "" && l.Status != f.Status {
				continue
			}
			if f.PublicOnly && !l.Public() {
				continue
			}
			all = append(all, l)
		}
		out = page(all, f.Limit, f.Offset, 20)
		return nil
	})
	return out, err
}

func (r *listingsRepo) AdjustStock(ctx context.Context, id int64, delta int) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		l, ok := st.listings[id]
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "listings.AdjustStock", "listing %d", id)
		}
		if l.Stock+delta < 0 {
			return apperr.Newf(apperr.KindInsufficientStock, "listings.AdjustStock", "listing %d has %d in stock, need %d", id, l.Stock, -delta)
		}
		l.Stock += delta
		l.Version++
		l.UpdatedAt = r.s.now()
		st.listings[id] = l
		return nil
	})
}

func (r *listingsRepo) AppendModeration(ctx context.Context, rec *listings.ModerationRecord) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		rec.ID = st.next("moderation")
		rec.CreatedAt = r.s.now()
		st.moderation = append(st.moderation, *rec)
		return nil
	})
}

func (r *listingsRepo) ModerationLog(ctx context.Context, listingID int64, limit, offset int) ([]listings.ModerationRecord, error) {
	var out []listings.ModerationRecord
	err := r.s.do(ctx, r.tx, func(st *state) error {
		all := []listings.ModerationRecord{}
		for _, rec := range st.moderation {
			if listingID == 0 || rec.ListingID == listingID {
				all = append(all, rec)
			}
		}
		out = page(all, limit, offset, 50)
		return nil
	})
	return out, err
}

type cartsRepo struct {
	s  *Store
	tx bool
}

func (r *cartsRepo) GetOrCreate(ctx context.Context, ownerID int64) (*carts.Cart, error) {
	var out carts.Cart
	err := r.s.do(ctx, r.tx, func(st *state) error {
		c, ok := st.carts[ownerID]
		if !ok {
			now := r.s.now()
			c = carts.Cart{ID: st.next("carts"), OwnerID: ownerID, Items: []carts.CartItem{}, CreatedAt: now, UpdatedAt: now}
			st.carts[ownerID] = c
		}
		out = c
		out.Items = append([]carts.CartItem{}, c.Items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cartsRepo) Lock(ctx context.Context, ownerID int64) (*carts.Cart, error) {
	var out carts.Cart
	err := r.s.do(ctx, r.tx, func(st *state) error {
		c, ok := st.carts[ownerID]
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "carts.Lock", "cart of user %d", ownerID)
		}
		out = c
		out.Items = append([]carts.CartItem{}, c.Items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// cartByID finds a cart by its id; carts are keyed by owner.
func cartByID(st *state, cartID int64) (carts.Cart, bool) {
	for _, c := range st.carts {
		if c.ID == cartID {
			return c, true
		}
	}
	return carts.Cart{}, false
}

func (r *cartsRepo) AddItem(ctx context.Context, cartID int64, item *carts.CartItem) error {
	if item.Quantity <= 0 {
		return apperr.New(apperr.KindInvalidInput, "carts.AddItem", "quantity must be > 0")
	}
	return r.s.do(ctx, r.tx, func(st *state) error {
		c, ok := cartByID(st, cartID)
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "carts.AddItem", "cart %d", cartID)
		}
		c.Items = append([]carts.CartItem(nil), c.Items...)
		for i := range c.Items {
			if c.Items[i].ListingID == item.ListingID {
				c.Items[i].Quantity += item.Quantity
				*item = c.Items[i]
				c.UpdatedAt = r.s.now()
				st.carts[c.OwnerID] = c
				return nil
			}
		}
		item.ID = st.next("cart_items")
		item.CartID = cartID
		item.CreatedAt = r.s.now()
		c.Items = append(c.Items, *item)
		c.UpdatedAt = item.CreatedAt
		st.carts[c.OwnerID] = c
		return nil
	})
}

func (r *cartsRepo) SetQuantity(ctx context.Context, cartID, itemID int64, qty int) error {
	if qty <= 0 {
		return apperr.New(apperr.KindInvalidInput, "carts.SetQuantity", "quantity must be > 0")
	}
	return r.s.do(ctx, r.tx, func(st *state) error {
		c, ok := cartByID(st, cartID)
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "carts.SetQuantity", "cart %d", cartID)
		}
		c.Items = append([]carts.CartItem(nil), c.Items...)
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items[i].Quantity = qty
				st.carts[c.OwnerID] = c
				return nil
			}
		}
		return apperr.Newf(apperr.KindNotFound, "carts.SetQuantity", "cart item %d", itemID)
	})
}

func (r *cartsRepo) RemoveItem(ctx context.Context, cartID, itemID int64) (bool, error) {
	removed := false
	err := r.s.do(ctx, r.tx, func(st *state) error {
		c, ok := cartByID(st, cartID)
		if !ok {
			return nil
		}
		kept := carts.RemoveItem(c.Items, itemID)
		removed = len(kept) != len(c.Items)
		c.Items = kept
		st.carts[c.OwnerID] = c
		return nil
	})
	return removed, err
}

func (r *cartsRepo) RemoveItems(ctx context.Context, cartID int64, itemIDs []int64) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		c, ok := cartByID(st, cartID)
		if !ok {
			return nil
		}
		for _, id := range itemIDs {
			c.Items = carts.RemoveItem(c.Items, id)
		}
		st.carts[c.OwnerID] = c
		return nil
	})
}

type ordersRepo struct {
	s  *Store
	tx bool
}

func (r *ordersRepo) Create(ctx context.Context, o *orders.Order) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		now := r.s.now()
		o.ID = st.next("orders")
		o.Version = 1
		o.CreatedAt, o.UpdatedAt = now, now
		for i := range o.Items {
			o.Items[i].ID = st.next("order_items")
		}
		stored := *o
		stored.Items = append([]orders.LineItem(nil), o.Items...)
		st.orders[o.ID] = stored
		return nil
	})
}

func (r *ordersRepo) Get(ctx context.Context, id int64) (*orders.Order, error) {
	var out orders.Order
	err := r.s.do(ctx, r.tx, func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "orders.Get", "order %d", id)
		}
		out = o
		out.Items = append([]orders.LineItem(nil), o.Items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ordersRepo) UpdateStatus(ctx context.Context, o *orders.Order, expectedVersion int64, opts orders.UpdateStatusOpts) error {
	return r.s.do(ctx, r.tx, func(st *state) error {
		cur, ok := st.orders[o.ID]
		if !ok {
			return apperr.Newf(apperr.KindNotFound, "orders.UpdateStatus", "order %d", o.ID)
		}
		if cur.Version != expectedVersion {
			return apperr.Newf(apperr.KindConflict, "orders.UpdateStatus", "order %d changed since version %d", o.ID, expectedVersion)
		}
		cur.Status = o.Status
		cur.CancelledReason = nil
		if o.Status == orders.StatusCancelled {
			cur.CancelledReason = opts.CancelledReason
		}
		cur.Version++
		cur.UpdatedAt = r.s.now()
		st.orders[o.ID] = cur

		o.Version, o.CancelledReason, o.UpdatedAt = cur.Version, cur.CancelledReason, cur.UpdatedAt
		return nil
	})
}

func (r *ordersRepo) List(ctx context.Context, f orders.Filter) ([]orders.Order, error) {
	var out []orders.Order
	err := r.s.do(ctx, r.tx, func(st *state) error {
		all := []orders.Order{}
		for _, id := range sortedKeys(st.orders, true) {
			o := st.orders[id]
			if f.BuyerID != 0 && o.BuyerID != f.BuyerID {
				continue
			}
			if f.SellerID != 0 && o.SellerID != f.SellerID {
				continue
			}
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			o.Items = append([]orders.LineItem(nil), o.Items...)
			all = append(all, o)
		}
		out = page(all, f.Limit, f.Offset, 20)
		return nil
	})
	return out, err
}
