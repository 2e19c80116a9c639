package listings

import (
	"testing"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/rolegate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyModeration(t *testing.T) {
	tests := []struct {
		name        string
		from        Listing
		action      Action
		wantStatus  Status
		wantVisible bool
		wantChanged bool
	}{
		{"approve pending", Listing{Status: StatusPending, Visible: true}, ActionApprove, StatusApproved, true, true},
		{"approve rejected", Listing{Status: StatusRejected, Visible: true}, ActionApprove, StatusApproved, true, true},
		{"approve approved is a no-op", Listing{Status: StatusApproved, Visible: true}, ActionApprove, StatusApproved, true, false},
		{"reject approved", Listing{Status: StatusApproved, Visible: true}, ActionReject, StatusRejected, true, true},
		{"reject pending", Listing{Status: StatusPending, Visible: false}, ActionReject, StatusRejected, false, true},
		{"reject rejected is a no-op", Listing{Status: StatusRejected, Visible: true}, ActionReject, StatusRejected, true, false},
		{"hide keeps approval", Listing{Status: StatusApproved, Visible: true}, ActionHide, StatusApproved, false, true},
		{"hide pending", Listing{Status: StatusPending, Visible: true}, ActionHide, StatusPending, false, true},
		{"unhide visible is a no-op", Listing{Status: StatusApproved, Visible: true}, ActionUnhide, StatusApproved, true, false},
		{"unhide rejected", Listing{Status: StatusRejected, Visible: false}, ActionUnhide, StatusRejected, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, err := ApplyModeration(tt.from, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantVisible, got.Visible)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestApplyModerationIdempotent(t *testing.T) {
	l := Listing{ID: 1, Status: StatusPending, Visible: true}

	once, _, err := ApplyModeration(l, ActionApprove)
	require.NoError(t, err)
	twice, changed, err := ApplyModeration(once, ActionApprove)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.False(t, changed)
}

func TestApplyModerationRejectsDelete(t *testing.T) {
	l := Listing{Status: StatusApproved, Visible: true}
	got, changed, err := ApplyModeration(l, ActionDelete)
	assert.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, l, got)
}

func TestDisplayStatus(t *testing.T) {
	assert.Equal(t, "pending", (&Listing{Status: StatusPending, Visible: true}).DisplayStatus())
	assert.Equal(t, "rejected", (&Listing{Status: StatusRejected, Visible: true}).DisplayStatus())
	assert.Equal(t, "approved/hidden", (&Listing{Status: StatusApproved, Visible: false}).DisplayStatus())

	assert.True(t, (&Listing{Status: StatusApproved, Visible: true}).Public())
	assert.False(t, (&Listing{Status: StatusApproved, Visible: false}).Public())
	assert.False(t, (&Listing{Status: StatusPending, Visible: true}).Public())
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("hide")
	require.NoError(t, err)
	assert.Equal(t, rolegate.ListingHide, a.GateAction())

	back, ok := ActionFromGate(rolegate.ListingDelete)
	assert.True(t, ok)
	assert.Equal(t, ActionDelete, back)

	_, ok = ActionFromGate(rolegate.UserBan)
	assert.False(t, ok)

	_, err = ParseAction("publish")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
