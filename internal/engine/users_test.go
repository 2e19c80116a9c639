package engine

import (
	"context"
	"testing"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/businesses"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	u, err := f.svc.BanUser(ctx, f.admin, f.buyer.ID)
	require.NoError(t, err)
	assert.False(t, u.Active)

	again, err := f.svc.BanUser(ctx, f.admin, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Version, again.Version)

	_, err = f.svc.Authenticate(ctx, f.buyer.ID)
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))

	u, err = f.svc.UnbanUser(ctx, f.admin, f.buyer.ID)
	require.NoError(t, err)
	assert.True(t, u.Active)

	actor, err := f.svc.Authenticate(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, f.buyer, actor)

	assert.Equal(t, []notify.Event{notify.UserBanned, notify.UserUnbanned}, f.sent.Events())
}

func TestUserActionsProtectAdmins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.BanUser(ctx, f.admin, f.admin2.ID)
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))
	assert.Equal(t, string(rolegate.TargetProtected), apperr.ReasonOf(err))

	_, err = f.svc.DeleteUser(ctx, f.seller, f.buyer.ID)
	assert.Equal(t, string(rolegate.WrongRole), apperr.ReasonOf(err))
}

func TestUserActionsDenyBeforeLookup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	for _, id := range []int64{f.buyer2.ID, 99999} {
		_, err := f.svc.BanUser(ctx, f.buyer, id)
		assert.Equal(t, apperr.KindDenied, apperr.KindOf(err), "user %d", id)
		assert.Equal(t, string(rolegate.WrongRole), apperr.ReasonOf(err), "user %d", id)

		_, err = f.svc.DeleteUser(ctx, f.seller, id)
		assert.Equal(t, apperr.KindDenied, apperr.KindOf(err), "user %d", id)
	}

	_, err := f.svc.BanUser(ctx, f.admin, 99999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	u, err := f.svc.DeleteUser(ctx, f.admin, f.seller.ID)
	require.NoError(t, err)
	assert.True(t, u.Deleted())

	_, err = f.svc.DeleteUser(ctx, f.admin, f.seller.ID)
	require.NoError(t, err)

	_, err = f.svc.UnbanUser(ctx, f.admin, f.seller.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	listed, err := f.svc.ListUsers(ctx, f.admin, UserQuery{Role: rolegate.Business})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, f.seller2.ID, listed[0].ID)

	_, err = f.svc.ListUsers(ctx, f.buyer, UserQuery{})
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))

	assert.Equal(t, []notify.Event{notify.UserDeleted}, f.sent.Events())
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	u, err := f.svc.Register(ctx, RegisterInput{
		Email:    "Shop@Example.com",
		Name:     "Clara",
		Password: "correct horse",
		Role:     rolegate.Business,
		Business: &businesses.Business{Name: "Clara's Ceramics"},
	})
	require.NoError(t, err)
	assert.Equal(t, "shop@example.com", u.Email)
	assert.Equal(t, []notify.Event{notify.UserRegistered}, f.sent.Events())
	assert.Equal(t, []int64{u.ID}, f.sent.Sent()[0].Payload.RecipientIDs)

	b, err := f.store.Repos().Businesses.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "shop@example.com", b.ContactEmail)

	got, err := f.svc.Login(ctx, "shop@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.svc.Login(ctx, "shop@example.com", "wrong horse")
	assert.Equal(t, apperr.KindDenied, apperr.KindOf(err))

	_, err = f.svc.Register(ctx, RegisterInput{Email: "shop@example.com", Password: "12345678", Role: rolegate.Customer})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = f.svc.Register(ctx, RegisterInput{Email: "root@example.com", Password: "12345678", Role: rolegate.Admin})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	_, err = f.svc.Register(ctx, RegisterInput{Email: "nobiz@example.com", Password: "12345678", Role: rolegate.Business})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestDirectorySkipsInactiveUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.BanUser(ctx, f.admin, f.buyer2.ID)
	require.NoError(t, err)

	got, err := NewDirectory(f.store).Contacts(ctx, []int64{f.buyer.ID, f.buyer2.ID, 404})
	require.NoError(t, err)
	assert.Equal(t, map[int64]notify.Contact{
		f.buyer.ID: {Name: "ana@example.com", Email: "ana@example.com"},
	}, got)
}
