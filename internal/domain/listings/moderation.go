package listings

import (
	"fmt"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/rolegate"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionHide    Action = "hide"
	ActionUnhide  Action = "unhide"
	ActionDelete  Action = "delete"
)

var gateActions = map[Action]rolegate.Action{
	ActionApprove: rolegate.ListingApprove,
	ActionReject:  rolegate.ListingReject,
	ActionHide:    rolegate.ListingHide,
	ActionUnhide:  rolegate.ListingUnhide,
	ActionDelete:  rolegate.ListingDelete,
}

func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := gateActions[a]; !ok {
		return "", apperr.Newf(apperr.KindInvalidInput, "listings.ParseAction", "unknown moderation action %q", s)
	}
	return a, nil
}

// GateAction maps a moderation action to the permission it needs.
func (a Action) GateAction() rolegate.Action { return gateActions[a] }

// ActionFromGate is the inverse of GateAction.
func ActionFromGate(ga rolegate.Action) (Action, bool) {
	for a, g := range gateActions {
		if g == ga {
			return a, true
		}
	}
	return "", false
}

// ApplyModeration returns the listing after action and whether anything
// changed. Actions whose target state already holds are accepted unchanged.
// Every approval state accepts every action, so there is no invalid edge here;
// delete is not a state and is handled by the store.
func ApplyModeration(l Listing, action Action) (Listing, bool, error) {
	next := l
	switch action {
	case ActionApprove:
		next.Status = StatusApproved
	case ActionReject:
		next.Status = StatusRejected
	case ActionHide:
		next.Visible = false
	case ActionUnhide:
		next.Visible = true
	default:
		return l, false, fmt.Errorf("listings: %q is not a state transition", action)
	}
	changed := next.Status != l.Status || next.Visible != l.Visible
	return next, changed, nil
}
