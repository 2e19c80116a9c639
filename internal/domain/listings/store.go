package listings

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/apperr"
	"bazaar/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

const listingColumns = `id, seller_id, title, description, price_cents, stock, status, is_visible, version, created_at, updated_at`

func scanListing(row pgx.Row) (*Listing, error) {
	var l Listing
	err := row.Scan(&l.ID, &l.SellerID, &l.Title, &l.Description, &l.PriceCents, &l.Stock,
		&l.Status, &l.Visible, &l.Version, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) Create(ctx context.Context, l *Listing) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, `
INSERT INTO listings (seller_id, title, description, price_cents, stock, status, is_visible)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, version, created_at, updated_at`,
		l.SellerID, l.Title, l.Description, l.PriceCents, l.Stock, l.Status, l.Visible,
	).Scan(&l.ID, &l.Version, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperr.Newf(apperr.KindInvalidInput, "listings.Create", "seller %d does not exist", l.SellerID)
		}
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	l, err := scanListing(r.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.KindNotFound, "listings.Get", "listing %d", id)
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

func (r *Repository) Update(ctx context.Context, l *Listing, expectedVersion int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, `
UPDATE listings
SET title       = $3,
    description = $4,
    price_cents = $5,
    status      = $6,
    is_visible  = $7,
    version     = version + 1,
    updated_at  = now()
WHERE id = $1 AND version = $2
RETURNING version, stock, updated_at`,
		l.ID, expectedVersion, l.Title, l.Description, l.PriceCents, l.Status, l.Visible,
	).Scan(&l.Version, &l.Stock, &l.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update listing: %w", err)
	}
	return r.missOrConflict(ctx, "listings.Update", l.ID, expectedVersion)
}

// missOrConflict tells a deleted row apart from a stale version after a
// conditional write matched nothing.
func (r *Repository) missOrConflict(ctx context.Context, op string, id, expectedVersion int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM listings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check listing: %w", err)
	}
	if !exists {
		return apperr.Newf(apperr.KindNotFound, op, "listing %d", id)
	}
	return apperr.Newf(apperr.KindConflict, op, "listing %d changed since version %d", id, expectedVersion)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Newf(apperr.KindNotFound, "listings.Delete", "listing %d", id)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, f Filter) ([]Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.db.Query(ctx, `
SELECT `+listingColumns+`
FROM listings
WHERE ($1 = 0 OR seller_id = $1)
  AND ($2 = '' OR status = $2)
  AND (NOT $3 OR (status = 'approved' AND is_visible))
ORDER BY id DESC
LIMIT $4 OFFSET $5`,
		f.SellerID, string(f.Status), f.PublicOnly, limit, f.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	out := []Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *Repository) AdjustStock(ctx context.Context, id int64, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
UPDATE listings
SET stock      = stock + $2,
    version    = version + 1,
    updated_at = now()
WHERE id = $1 AND stock + $2 >= 0`, id, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var stock int
	err = r.db.QueryRow(ctx, `SELECT stock FROM listings WHERE id = $1`, id).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.Newf(apperr.KindNotFound, "listings.AdjustStock", "listing %d", id)
	}
	if err != nil {
		return fmt.Errorf("read stock: %w", err)
	}
	return apperr.Newf(apperr.KindInsufficientStock, "listings.AdjustStock", "listing %d has %d in stock, need %d", id, stock, -delta)
}

func (r *Repository) AppendModeration(ctx context.Context, rec *ModerationRecord) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, `
INSERT INTO moderation_records (actor_id, listing_id, action, changed)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`,
		rec.ActorID, rec.ListingID, rec.Action, rec.Changed,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("append moderation record: %w", err)
	}
	return nil
}

func (r *Repository) ModerationLog(ctx context.Context, listingID int64, limit, offset int) ([]ModerationRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
SELECT id, actor_id, listing_id, action, changed, created_at
FROM moderation_records
WHERE ($1 = 0 OR listing_id = $1)
ORDER BY id
LIMIT $2 OFFSET $3`, listingID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("moderation log: %w", err)
	}
	defer rows.Close()

	out := []ModerationRecord{}
	for rows.Next() {
		var m ModerationRecord
		if err := rows.Scan(&m.ID, &m.ActorID, &m.ListingID, &m.Action, &m.Changed, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan moderation record: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
