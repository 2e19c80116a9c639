// Package rolegate is the single authorization decision point for every state
// transition in the engine. CanPerform is pure: it never touches storage, so the
// caller loads whatever the Target needs first.
package rolegate

import (
	"errors"
	"fmt"
)

type Role string

const (
	Customer Role = "customer"
	Business Role = "business"
	Admin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case Customer, Business, Admin:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

type Action string

const (
	ListingCreate    Action = "listing.create"
	ListingEdit      Action = "listing.edit"
	ListingDeleteOwn Action = "listing.delete-own"

	ListingApprove Action = "listing.approve"
	ListingReject  Action = "listing.reject"
	ListingHide    Action = "listing.hide"
	ListingUnhide  Action = "listing.unhide"
	ListingDelete  Action = "listing.delete"
	ModerationLog  Action = "listing.moderation-log"

	OrderUpdateStatus Action = "order.update-status"
	OrderView         Action = "order.view"

	UserBan    Action = "user.ban"
	UserUnban  Action = "user.unban"
	UserDelete Action = "user.delete"
	UserList   Action = "user.list"

	PushTokensManage Action = "push-tokens.manage"
)

type Reason string

const (
	WrongRole       Reason = "wrong-role"
	NotOwner        Reason = "not-owner"
	TargetProtected Reason = "target-protected"
)

var (
	ErrUnknownAction = errors.New("rolegate: unknown action")
	ErrUnknownRole   = errors.New("rolegate: unknown role")
)

// Actor is the authenticated caller. It is always passed explicitly.
type Actor struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

// Target describes the entity being acted on. Only the fields relevant to the
// action are read: OwnerID is the seller for listings/orders and the user for
// user actions, BuyerID is the order's buyer, Role is the target user's role,
// From/To are order statuses.
type Target struct {
	OwnerID int64
	BuyerID int64
	Role    Role
	From    string
	To      string
}

type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
}

var allow = Decision{Allowed: true}

func deny(r Reason) Decision { return Decision{Reason: r} }

// sellerEdges is the forward subset of the order edge table a seller may drive.
var sellerEdges = map[[2]string]bool{
	{"pending", "paid"}:      true,
	{"paid", "shipped"}:      true,
	{"shipped", "delivered"}: true,
}

// CanPerform decides whether actor may perform action on target. A normal
// denial is a Decision with a Reason; only an unknown role or action is an error.
func CanPerform(actor Actor, action Action, target Target) (Decision, error) {
	if !actor.Role.Valid() {
		return Decision{}, fmt.Errorf("%w: %q", ErrUnknownRole, actor.Role)
	}

	switch action {
	case ListingApprove, ListingReject, ListingHide, ListingUnhide, ListingDelete, ModerationLog, UserList, PushTokensManage:
		if actor.Role != Admin {
			return deny(WrongRole), nil
		}
		return allow, nil

	case ListingCreate, ListingEdit, ListingDeleteOwn:
		switch actor.Role {
		case Admin:
			return allow, nil
		case Business:
			if target.OwnerID != actor.ID {
				return deny(NotOwner), nil
			}
			return allow, nil
		}
		return deny(WrongRole), nil

	case OrderUpdateStatus:
		return orderStatus(actor, target), nil

	case OrderView:
		if actor.Role == Admin || actor.ID == target.BuyerID || actor.ID == target.OwnerID {
			return allow, nil
		}
		return deny(NotOwner), nil

	case UserBan, UserUnban, UserDelete:
		if actor.Role != Admin {
			return deny(WrongRole), nil
		}
		if target.Role == Admin {
			return deny(TargetProtected), nil
		}
		return allow, nil
	}

	return Decision{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

func orderStatus(actor Actor, target Target) Decision {
	switch actor.Role {
	case Admin:
		return allow
	case Business:
		if target.OwnerID != actor.ID {
			return deny(NotOwner)
		}
		if !sellerEdges[[2]string{target.From, target.To}] {
			return deny(WrongRole)
		}
		return allow
	default:
		if target.BuyerID != actor.ID {
			return deny(NotOwner)
		}
		if target.To != "cancelled" || (target.From != "pending" && target.From != "paid") {
			return deny(WrongRole)
		}
		return allow
	}
}

// KnownAction reports whether a is one CanPerform understands.
func KnownAction(a Action) bool {
	_, err := CanPerform(Actor{Role: Admin}, a, Target{})
	return err == nil
}
