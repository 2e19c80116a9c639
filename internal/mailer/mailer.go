// Package mailer renders the embedded email templates and sends them over
// SMTP.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"text/template"
)

const (
	FromName            = "Bazaar"
	maxRetries          = 3
	WelcomeTemplate     = "welcome.tmpl"
	OrderUpdateTemplate = "order_update.tmpl"
	AccountTemplate     = "account_status.tmpl"
	ListingTemplate     = "listing_update.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(ctx context.Context, templateFile, username, email string, data any) error
}

// Message is one rendered template.
type Message struct {
	Subject string
	Plain   string
	HTML    string
}

// Render executes the subject, plainBody and htmlBody blocks of templateFile.
func Render(templateFile string, data any) (*Message, error) {
	path := "templates/" + templateFile

	tmpl, err := template.New("email").ParseFS(FS, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", templateFile, err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return nil, err
	}
	plain := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(plain, "plainBody", data); err != nil {
		return nil, err
	}

	htmlTmpl, err := htmltemplate.New("email").ParseFS(FS, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", templateFile, err)
	}
	html := new(bytes.Buffer)
	if err := htmlTmpl.ExecuteTemplate(html, "htmlBody", data); err != nil {
		return nil, err
	}

	return &Message{Subject: subject.String(), Plain: plain.String(), HTML: html.String()}, nil
}
