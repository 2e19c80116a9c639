package mailer

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/mail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
}

type SMTPMailer struct {
	dialer    *mail.Dialer
	fromEmail string
	backoff   time.Duration
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.FromEmail == "" {
		return nil, fmt.Errorf("smtp host and from email are required")
	}
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.Timeout = 10 * time.Second
	return &SMTPMailer{dialer: d, fromEmail: cfg.FromEmail, backoff: time.Second}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, templateFile, username, email string, data any) error {
	rendered, err := Render(templateFile, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, FromName)
	msg.SetAddressHeader("To", email, username)
	msg.SetHeader("Subject", rendered.Subject)
	msg.SetBody("text/plain", rendered.Plain)
	msg.AddAlternative("text/html", rendered.HTML)

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if lastErr = m.dialer.DialAndSend(msg); lastErr == nil {
			return nil
		}

		// linear backoff
		select {
		case <-ctx.Done():
			return fmt.Errorf("send %s to %s: %w", templateFile, email, ctx.Err())
		case <-time.After(m.backoff * time.Duration(i+1)):
		}
	}
	return fmt.Errorf("send %s to %s after %d attempts: %w", templateFile, email, maxRetries, lastErr)
}
