package engine

import (
	"context"
	"testing"

	"bazaar/internal/domain/businesses"
	"bazaar/internal/domain/listings"
	"bazaar/internal/domain/orders"
	"bazaar/internal/domain/rolegate"
	"bazaar/internal/domain/users"
	"bazaar/internal/memstore"
	"bazaar/internal/notify"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc   *Service
	store *memstore.Store
	sent  *notify.Recorder

	admin   rolegate.Actor
	admin2  rolegate.Actor
	seller  rolegate.Actor
	seller2 rolegate.Actor
	buyer   rolegate.Actor
	buyer2  rolegate.Actor
}

func newFixture(t *testing.T, storeOpts []memstore.Option, opts ...Option) *fixture {
	t.Helper()

	numbers, err := orders.NewNumberGenerator("test-salt", "BZ")
	require.NoError(t, err)

	f := &fixture{
		store: memstore.New(storeOpts...),
		sent:  &notify.Recorder{},
	}
	opts = append([]Option{WithNotifier(f.sent)}, opts...)
	f.svc = New(f.store, numbers, zap.NewNop().Sugar(), opts...)

	f.admin = f.addUser(t, "admin@example.com", rolegate.Admin)
	f.admin2 = f.addUser(t, "admin2@example.com", rolegate.Admin)
	f.seller = f.addUser(t, "lamps@example.com", rolegate.Business)
	f.seller2 = f.addUser(t, "chairs@example.com", rolegate.Business)
	f.buyer = f.addUser(t, "ana@example.com", rolegate.Customer)
	f.buyer2 = f.addUser(t, "ben@example.com", rolegate.Customer)
	return f
}

func (f *fixture) addUser(t *testing.T, email string, role rolegate.Role) rolegate.Actor {
	t.Helper()
	ctx := context.Background()
	repos := f.store.Repos()

	u := &users.User{Email: email, Name: email, Role: role, Active: true, Verified: true}
	require.NoError(t, repos.Users.Create(ctx, u))
	if role == rolegate.Business {
		require.NoError(t, repos.Businesses.Create(ctx, &businesses.Business{
			UserID:           u.ID,
			Name:             "Shop " + email,
			ContactEmail:     email,
			SubscriptionPlan: "basic",
		}))
	}
	return u.Actor()
}

// approvedListing creates a listing through the engine and approves it.
func (f *fixture) approvedListing(t *testing.T, seller rolegate.Actor, title string, price int64, stock int) *listings.Listing {
	t.Helper()
	ctx := context.Background()

	l, err := f.svc.CreateListing(ctx, seller, CreateListingInput{Title: title, PriceCents: price, Stock: stock})
	require.NoError(t, err)
	res, err := f.svc.ModerateListing(ctx, f.admin, l.ID, listings.ActionApprove)
	require.NoError(t, err)
	return res.Listing
}

func (f *fixture) stockOf(t *testing.T, id int64) int {
	t.Helper()
	l, err := f.store.Repos().Listings.Get(context.Background(), id)
	require.NoError(t, err)
	return l.Stock
}
