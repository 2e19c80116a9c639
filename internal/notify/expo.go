package notify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/9ssi7/exponent"
)

// PushSender is satisfied by *exponent.Client.
type PushSender interface {
	Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error)
}

type TokenSource interface {
	TokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error)
}

// Expo pushes events to the recipients' registered devices.
type Expo struct {
	sender PushSender
	tokens TokenSource
}

func NewExpo(sender PushSender, tokens TokenSource) *Expo {
	return &Expo{sender: sender, tokens: tokens}
}

func (e *Expo) Notify(ctx context.Context, event Event, p Payload) error {
	if len(p.RecipientIDs) == 0 {
		return nil
	}

	byUser, err := e.tokens.TokensByUserIDs(ctx, p.RecipientIDs)
	if err != nil {
		return fmt.Errorf("load push tokens: %w", err)
	}

	title, body := pushText(event, p)
	msgs := make([]*exponent.Message, 0, len(byUser))
	for _, tokens := range byUser {
		for _, t := range tokens {
			token := exponent.Token(t)
			msgs = append(msgs, &exponent.Message{
				To:    []*exponent.Token{&token},
				Title: title,
				Body:  body,
				Data: map[string]string{
					"event":    string(event),
					"entityId": strconv.FormatInt(p.EntityID, 10),
					"status":   p.Status,
				},
			})
		}
	}
	if len(msgs) == 0 {
		return nil
	}

	if _, err := e.sender.Publish(ctx, msgs); err != nil {
		return fmt.Errorf("expo publish: %w", err)
	}
	return nil
}

func pushText(event Event, p Payload) (string, string) {
	ref := p.Reference
	if ref == "" {
		ref = "#" + strconv.FormatInt(p.EntityID, 10)
	}
	switch event {
	case ListingApproved:
		return "Listing approved", fmt.Sprintf("Your listing %s is now live.", ref)
	case ListingRejected:
		return "Listing rejected", fmt.Sprintf("Your listing %s was rejected by a moderator.", ref)
	case ListingHidden:
		return "Listing hidden", fmt.Sprintf("Your listing %s was hidden by a moderator.", ref)
	case ListingUnhidden:
		return "Listing visible", fmt.Sprintf("Your listing %s is visible again.", ref)
	case ListingDeleted:
		return "Listing removed", fmt.Sprintf("Your listing %s was removed.", ref)
	case OrderCreated:
		return "New order", fmt.Sprintf("You received order %s.", ref)
	case OrderPaid:
		return "Order paid", fmt.Sprintf("Order %s has been paid.", ref)
	case OrderShipped:
		return "Order shipped", fmt.Sprintf("Order %s is on its way.", ref)
	case OrderDelivered:
		return "Order delivered", fmt.Sprintf("Order %s was delivered.", ref)
	case OrderCancelled:
		return "Order cancelled", fmt.Sprintf("Order %s was cancelled.", ref)
	case UserRegistered:
		return "Welcome", "Your account is ready to use."
	case UserBanned:
		return "Account suspended", "Your account has been suspended by an administrator."
	case UserUnbanned:
		return "Account restored", "Your account is active again."
	case UserDeleted:
		return "Account closed", "Your account has been closed."
	}
	return "Account update", "There is an update on your account."
}
