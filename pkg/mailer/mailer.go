// Package mailer delivers the store's transactional email through the
// hosted Resend API. Templates are rendered server-side; delivery failures
// are reported to the caller and never retried here.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"github.com/resend/resend-go/v2"
)

// Template names accepted by Sender.Send.
const (
	TemplateOrderConfirmation = "order-confirmation"
	TemplateNewsletterWelcome = "newsletter-welcome"
)

// Sender delivers an email rendered from a named template.
type Sender interface {
	Send(templateName string, to string, data interface{}) error
}

// OrderLine is one purchased item shown in the confirmation email.
type OrderLine struct {
	Name      string
	Color     string
	Size      string
	Quantity  int
	UnitPrice string
}

// OrderConfirmationData feeds the order-confirmation template.
type OrderConfirmationData struct {
	OrderNumber  string
	CustomerName string
	Items        []OrderLine
	Subtotal     string
	Shipping     string
	Tax          string
	Discount     string
	Total        string
}

// NewsletterWelcomeData feeds the newsletter-welcome template.
type NewsletterWelcomeData struct {
	Email string
	Name  string
}

// ResendSender sends email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender using the given API key. The from
// address is the store's transactional sender identity.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send renders the named template with the given data and delivers it.
func (s *ResendSender) Send(templateName string, to string, data interface{}) error {
	subject, tmpl, err := lookupTemplate(templateName)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template %s: %w", templateName, err)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}
	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send %s email to %s: %w", templateName, to, err)
	}
	return nil
}

// LogSender is a Sender that only logs. It stands in when no email API key
// is configured, so checkout and newsletter flows keep working in
// development.
type LogSender struct{}

// NewLogSender creates a new LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the email instead of delivering it.
func (s *LogSender) Send(templateName string, to string, data interface{}) error {
	log.Printf("Email sending disabled, would send %s to %s: %+v", templateName, to, data)
	return nil
}

func lookupTemplate(name string) (subject string, tmpl *template.Template, err error) {
	switch name {
	case TemplateOrderConfirmation:
		return "Conferma Ordine - PCL Ceramic Lab", orderConfirmationTmpl, nil
	case TemplateNewsletterWelcome:
		return "Benvenuto nella newsletter PCL Ceramic Lab", newsletterWelcomeTmpl, nil
	default:
		return "", nil, fmt.Errorf("unknown email template: %s", name)
	}
}
