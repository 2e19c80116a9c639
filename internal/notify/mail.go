package notify

import (
	"context"
	"errors"
	"fmt"

	"bazaar/internal/mailer"
)

type Contact struct {
	Name  string
	Email string
}

// Directory resolves user ids to addresses. Ids it cannot resolve are left
// out of the result.
type Directory interface {
	Contacts(ctx context.Context, userIDs []int64) (map[int64]Contact, error)
}

var mailTemplates = map[Event]string{
	UserRegistered:  mailer.WelcomeTemplate,
	UserBanned:      mailer.AccountTemplate,
	UserUnbanned:    mailer.AccountTemplate,
	OrderCreated:    mailer.OrderUpdateTemplate,
	OrderShipped:    mailer.OrderUpdateTemplate,
	OrderDelivered:  mailer.OrderUpdateTemplate,
	OrderCancelled:  mailer.OrderUpdateTemplate,
	ListingApproved: mailer.ListingTemplate,
	ListingRejected: mailer.ListingTemplate,
}

type mailData struct {
	Name      string
	Title     string
	Body      string
	Reference string
	Status    string
}

// Mail emails recipients for the events in mailTemplates and ignores the
// rest.
type Mail struct {
	client    mailer.Client
	directory Directory
}

func NewMail(client mailer.Client, directory Directory) *Mail {
	return &Mail{client: client, directory: directory}
}

func (m *Mail) Notify(ctx context.Context, event Event, p Payload) error {
	tmpl, ok := mailTemplates[event]
	if !ok || len(p.RecipientIDs) == 0 {
		return nil
	}

	contacts, err := m.directory.Contacts(ctx, p.RecipientIDs)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}

	title, body := pushText(event, p)
	var errs []error
	for _, id := range p.RecipientIDs {
		c, ok := contacts[id]
		if !ok || c.Email == "" {
			continue
		}
		data := mailData{Name: c.Name, Title: title, Body: body, Reference: p.Reference, Status: p.Status}
		if err := m.client.Send(ctx, tmpl, c.Name, c.Email, data); err != nil {
			errs = append(errs, fmt.Errorf("mail user %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
