// Package businesses stores seller profiles. A business is keyed by the id of
// its owning business-role user, which is also the sellerId on listings,
// cart items and orders.
package businesses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bazaar/internal/apperr"
	"bazaar/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var QueryTimeoutDuration = time.Second * 5

type Business struct {
	UserID           int64     `json:"user_id"`
	Name             string    `json:"name"`
	ContactEmail     string    `json:"contact_email"`
	ContactPhone     string    `json:"contact_phone,omitempty"`
	SubscriptionPlan string    `json:"subscription_plan"`
	CreatedAt        time.Time `json:"created_at"`
}

// Meta is the part of a business shown next to a seller group in a cart.
type Meta struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

func (b *Business) Meta() *Meta {
	return &Meta{Name: b.Name, ContactEmail: b.ContactEmail}
}

type Store interface {
	Create(ctx context.Context, b *Business) error
	Get(ctx context.Context, userID int64) (*Business, error)
	GetMany(ctx context.Context, userIDs []int64) (map[int64]*Business, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

func (r *Repository) Create(ctx context.Context, b *Business) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if b.SubscriptionPlan == "" {
		b.SubscriptionPlan = "basic"
	}
	err := r.db.QueryRow(ctx, `
INSERT INTO businesses (user_id, name, contact_email, contact_phone, subscription_plan)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`,
		b.UserID, b.Name, b.ContactEmail, b.ContactPhone, b.SubscriptionPlan,
	).Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("create business: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, userID int64) (*Business, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var b Business
	err := r.db.QueryRow(ctx, `
SELECT user_id, name, contact_email, contact_phone, subscription_plan, created_at
FROM businesses WHERE user_id = $1`, userID).
		Scan(&b.UserID, &b.Name, &b.ContactEmail, &b.ContactPhone, &b.SubscriptionPlan, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Newf(apperr.KindNotFound, "businesses.Get", "business %d", userID)
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

func (r *Repository) GetMany(ctx context.Context, userIDs []int64) (map[int64]*Business, error) {
	out := make(map[int64]*Business, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
SELECT user_id, name, contact_email, contact_phone, subscription_plan, created_at
FROM businesses WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("get businesses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b Business
		if err := rows.Scan(&b.UserID, &b.Name, &b.ContactEmail, &b.ContactPhone, &b.SubscriptionPlan, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		out[b.UserID] = &b
	}
	return out, rows.Err()
}
