package rolegate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanPerform(t *testing.T) {
	admin := Actor{ID: 1, Role: Admin}
	seller := Actor{ID: 10, Role: Business}
	buyer := Actor{ID: 20, Role: Customer}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		target Target
		want   Decision
	}{
		{"admin approves", admin, ListingApprove, Target{OwnerID: 10}, Decision{Allowed: true}},
		{"seller cannot moderate", seller, ListingHide, Target{OwnerID: 10}, Decision{Reason: WrongRole}},
		{"customer cannot moderate", buyer, ListingDelete, Target{}, Decision{Reason: WrongRole}},

		{"seller creates own listing", seller, ListingCreate, Target{OwnerID: 10}, Decision{Allowed: true}},
		{"seller edits foreign listing", seller, ListingEdit, Target{OwnerID: 11}, Decision{Reason: NotOwner}},
		{"admin edits any listing", admin, ListingEdit, Target{OwnerID: 11}, Decision{Allowed: true}},
		{"customer cannot create listing", buyer, ListingCreate, Target{OwnerID: 20}, Decision{Reason: WrongRole}},
		{"seller deletes own listing", seller, ListingDeleteOwn, Target{OwnerID: 10}, Decision{Allowed: true}},

		{"admin any order edge", admin, OrderUpdateStatus, Target{OwnerID: 10, From: "shipped", To: "cancelled"}, Decision{Allowed: true}},
		{"seller ships own order", seller, OrderUpdateStatus, Target{OwnerID: 10, From: "paid", To: "shipped"}, Decision{Allowed: true}},
		{"seller delivers foreign order", seller, OrderUpdateStatus, Target{OwnerID: 99, From: "shipped", To: "delivered"}, Decision{Reason: NotOwner}},
		{"seller cannot cancel", seller, OrderUpdateStatus, Target{OwnerID: 10, From: "pending", To: "cancelled"}, Decision{Reason: WrongRole}},
		{"seller cannot skip ahead", seller, OrderUpdateStatus, Target{OwnerID: 10, From: "pending", To: "delivered"}, Decision{Reason: WrongRole}},
		{"customer cancels pending", buyer, OrderUpdateStatus, Target{BuyerID: 20, From: "pending", To: "cancelled"}, Decision{Allowed: true}},
		{"customer cancels paid", buyer, OrderUpdateStatus, Target{BuyerID: 20, From: "paid", To: "cancelled"}, Decision{Allowed: true}},
		{"customer cannot ship", buyer, OrderUpdateStatus, Target{BuyerID: 20, From: "paid", To: "shipped"}, Decision{Reason: WrongRole}},
		{"customer cannot cancel shipped", buyer, OrderUpdateStatus, Target{BuyerID: 20, From: "shipped", To: "cancelled"}, Decision{Reason: WrongRole}},
		{"customer cancels foreign order", buyer, OrderUpdateStatus, Target{BuyerID: 21, From: "pending", To: "cancelled"}, Decision{Reason: NotOwner}},

		{"buyer views own order", buyer, OrderView, Target{BuyerID: 20, OwnerID: 10}, Decision{Allowed: true}},
		{"seller views own order", seller, OrderView, Target{BuyerID: 20, OwnerID: 10}, Decision{Allowed: true}},
		{"stranger views order", Actor{ID: 30, Role: Customer}, OrderView, Target{BuyerID: 20, OwnerID: 10}, Decision{Reason: NotOwner}},

		{"admin bans customer", admin, UserBan, Target{OwnerID: 20, Role: Customer}, Decision{Allowed: true}},
		{"admin bans admin", admin, UserBan, Target{OwnerID: 2, Role: Admin}, Decision{Reason: TargetProtected}},
		{"admin deletes admin", admin, UserDelete, Target{OwnerID: 2, Role: Admin}, Decision{Reason: TargetProtected}},
		{"seller bans customer", seller, UserBan, Target{OwnerID: 20, Role: Customer}, Decision{Reason: WrongRole}},
		{"customer unbans", buyer, UserUnban, Target{OwnerID: 21, Role: Customer}, Decision{Reason: WrongRole}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanPerform(tt.actor, tt.action, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanPerformMalformed(t *testing.T) {
	_, err := CanPerform(Actor{ID: 1, Role: Admin}, Action("listing.explode"), Target{})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = CanPerform(Actor{ID: 1, Role: "superuser"}, ListingApprove, Target{})
	assert.ErrorIs(t, err, ErrUnknownRole)

	assert.True(t, KnownAction(UserBan))
	assert.False(t, KnownAction("user.promote"))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("business")
	require.NoError(t, err)
	assert.Equal(t, Business, r)

	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}
