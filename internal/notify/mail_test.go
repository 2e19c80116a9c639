package notify

import (
	"context"
	"errors"
	"testing"

	"bazaar/internal/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, templateFile, username, email string, data any) error {
	return m.Called(ctx, templateFile, username, email, data).Error(0)
}

type staticDirectory map[int64]Contact

func (d staticDirectory) Contacts(_ context.Context, ids []int64) (map[int64]Contact, error) {
	out := make(map[int64]Contact, len(ids))
	for _, id := range ids {
		if c, ok := d[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func TestMailSendsToResolvedRecipients(t *testing.T) {
	client := new(mockMailer)
	dir := staticDirectory{1: {Name: "Dana", Email: "dana@example.com"}}

	client.On("Send", mock.Anything, mailer.OrderUpdateTemplate, "Dana", "dana@example.com", mock.MatchedBy(func(d mailData) bool {
		return d.Reference == "BZ-9" && d.Title == "Order shipped"
	})).Return(nil).Once()

	err := NewMail(client, dir).Notify(context.Background(), OrderShipped, Payload{
		EntityID: 9, RecipientIDs: []int64{1, 2}, Reference: "BZ-9", Status: "shipped",
	})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestMailIgnoresUnmappedEvents(t *testing.T) {
	client := new(mockMailer)
	err := NewMail(client, staticDirectory{}).Notify(context.Background(), ListingHidden, Payload{RecipientIDs: []int64{1}})
	require.NoError(t, err)
	client.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMailJoinsSendErrors(t *testing.T) {
	client := new(mockMailer)
	dir := staticDirectory{1: {Name: "A", Email: "a@example.com"}, 2: {Name: "B", Email: "b@example.com"}}
	client.On("Send", mock.Anything, mailer.AccountTemplate, "A", "a@example.com", mock.Anything).Return(errors.New("smtp down"))
	client.On("Send", mock.Anything, mailer.AccountTemplate, "B", "b@example.com", mock.Anything).Return(nil)

	err := NewMail(client, dir).Notify(context.Background(), UserBanned, Payload{RecipientIDs: []int64{1, 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail user 1")
	client.AssertNumberOfCalls(t, "Send", 2)
}
