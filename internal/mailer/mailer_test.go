package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrderUpdate(t *testing.T) {
	msg, err := Render(OrderUpdateTemplate, map[string]string{
		"Name":      "Dana <admin>",
		"Title":     "Order shipped",
		"Body":      "Order BZ-1 is on its way.",
		"Reference": "BZ-1",
		"Status":    "shipped",
	})
	require.NoError(t, err)

	assert.Equal(t, "Order shipped (BZ-1)", msg.Subject)
	assert.Contains(t, msg.Plain, "Current status: shipped")
	assert.Contains(t, msg.HTML, "Dana &lt;admin&gt;")
}

func TestRenderEveryTemplate(t *testing.T) {
	data := map[string]string{"Name": "Dana", "Title": "t", "Body": "b", "Reference": "r"}
	for _, name := range []string{WelcomeTemplate, OrderUpdateTemplate, AccountTemplate, ListingTemplate} {
		msg, err := Render(name, data)
		require.NoError(t, err, name)
		assert.NotEmpty(t, msg.Subject, name)
	}

	_, err := Render("missing.tmpl", data)
	assert.Error(t, err)
}

func TestNewSMTPMailerNeedsHost(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{FromEmail: "noreply@example.com"})
	assert.Error(t, err)
}
