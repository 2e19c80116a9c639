package listings

import (
	"context"
	"fmt"
	"time"
)

var QueryTimeoutDuration = time.Second * 5

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown listing status %q", s)
	}
	return st, nil
}

type Listing struct {
	ID          int64     `json:"id"`
	SellerID    int64     `json:"seller_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	Status      Status    `json:"status"`
	Visible     bool      `json:"visible"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Public reports whether buyers and other non-owners may see the listing.
func (l *Listing) Public() bool {
	return l.Status == StatusApproved && l.Visible
}

// DisplayStatus renders the (status, visible) pair, e.g. "approved" or
// "approved/hidden". The two axes are never folded into one stored field.
func (l *Listing) DisplayStatus() string {
	if l.Visible {
		return string(l.Status)
	}
	return string(l.Status) + "/hidden"
}

// ModerationRecord is one append-only audit entry. ListingID is kept after the
// listing itself is hard-deleted.
type ModerationRecord struct {
	ID        int64     `json:"id"`
	ActorID   int64     `json:"actor_id"`
	ListingID int64     `json:"listing_id"`
	Action    Action    `json:"action"`
	Changed   bool      `json:"changed"`
	CreatedAt time.Time `json:"created_at"`
}

type Filter struct {
	SellerID   int64
	Status     Status
	PublicOnly bool
	Limit      int
	Offset     int
}

type Store interface {
	Create(ctx context.Context, l *Listing) error
	Get(ctx context.Context, id int64) (*Listing, error)
	// Update writes the editable and moderation fields if the stored version
	// equals expectedVersion; l.Version is bumped on success.
	Update(ctx context.Context, l *Listing, expectedVersion int64) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f Filter) ([]Listing, error)
	// AdjustStock adds delta to stock, failing with insufficient-stock when the
	// result would be negative. It bumps the version.
	AdjustStock(ctx context.Context, id int64, delta int) error
	AppendModeration(ctx context.Context, rec *ModerationRecord) error
	ModerationLog(ctx context.Context, listingID int64, limit, offset int) ([]ModerationRecord, error)
}
