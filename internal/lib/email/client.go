// Package email sends transactional email through Resend.
//
// Bodies are rendered from the HTML templates embedded under
// templates/emails.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/deppfellow/go-invoicing/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const defaultSender = "Invoicing <onboarding@resend.dev>"

// Sender is the part of the Resend client this package uses.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Client struct {
	sender Sender
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return NewClientWithSender(resend.NewClient(cfg.Integration.ResendAPIKey).Emails, logger)
}

func NewClientWithSender(sender Sender, logger *zerolog.Logger) *Client {
	return &Client{
		sender: sender,
		from:   defaultSender,
		logger: logger,
	}
}

// Render executes templateName with data.
func Render(templateName Template, data map[string]string) (string, error) {
	tmpl, err := template.ParseFS(templateFS, fmt.Sprintf("templates/emails/%s.html", templateName))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	body, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	resp, err := c.sender.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().Str("email_id", resp.Id).Str("template", string(templateName)).Msg("email sent")
	return nil
}
