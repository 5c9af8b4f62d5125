// utils/email.go
package utils

import (
	"context"
	"encoding/base64"
	"fmt"

	"go-shop/logging"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Attachment is a file sent along with an email
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is a provider-neutral email
type Message struct {
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers emails
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// PostmarkMailer handles sending emails using Postmark
type PostmarkMailer struct {
	client *postmark.Client
	from   string
}

// NewPostmarkMailer initializes and returns a new PostmarkMailer instance
func NewPostmarkMailer(apiToken, from string) *PostmarkMailer {
	return &PostmarkMailer{
		client: postmark.NewClient(apiToken, ""),
		from:   from,
	}
}

// Send delivers msg through the Postmark API
func (pm *PostmarkMailer) Send(_ context.Context, msg Message) error {
	email := postmark.Email{
		From:     pm.from,
		To:       msg.To,
		Subject:  msg.Subject,
		HtmlBody: msg.HTML,
		TextBody: msg.Text,
	}
	for _, a := range msg.Attachments {
		email.Attachments = append(email.Attachments, postmark.Attachment{
			Name:        a.Name,
			Content:     base64.StdEncoding.EncodeToString(a.Data),
			ContentType: a.ContentType,
		})
	}

	if _, err := pm.client.SendEmail(email); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendgridMailer handles sending emails using SendGrid
type SendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendgridMailer initializes and returns a new SendgridMailer instance
func NewSendgridMailer(apiKey, from string) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("", from),
	}
}

// Send delivers msg through the SendGrid v3 API
func (sm *SendgridMailer) Send(_ context.Context, msg Message) error {
	message := mail.NewV3Mail()
	message.SetFrom(sm.from)
	message.Subject = msg.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.To))
	message.AddPersonalizations(p)

	if msg.Text != "" {
		message.AddContent(mail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		message.AddContent(mail.NewContent("text/html", msg.HTML))
	}
	for _, a := range msg.Attachments {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Data))
		att.SetType(a.ContentType)
		att.SetFilename(a.Name)
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}

	resp, err := sm.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send email: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer only logs outgoing emails. Used when no provider is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.Name)
	}
	logging.Log(logging.Fields{
		Step:    "email",
		Status:  "skipped",
		Message: fmt.Sprintf("to=%s subject=%q attachments=%v", msg.To, msg.Subject, names),
	})
	return nil
}
