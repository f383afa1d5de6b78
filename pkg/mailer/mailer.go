// Package mailer delivers outbound email over SMTP. It knows nothing about
// events or RSVPs; message composition happens in services/notifier.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Config carries SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender sends a single HTML email. Satisfied by *Client; tests substitute
// their own implementations.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Client sends email through a single SMTP endpoint.
type Client struct {
	cfg    Config
	client *mail.Client
}

// New validates the configuration and constructs an SMTP client.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("from address is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = 587
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &Client{cfg: cfg, client: client}, nil
}

// Send delivers one HTML message. A failed delivery returns the SMTP error;
// the caller decides how to record it.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	if c == nil {
		return errors.New("nil mailer")
	}

	msg := mail.NewMsg()
	if err := msg.From(c.cfg.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	return c.client.DialAndSendWithContext(ctx, msg)
}
