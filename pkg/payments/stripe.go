// Package payments wraps the Stripe payment-intent API behind the small
// gateway surface the checkout service needs.
package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeGateway creates payment intents against the Stripe API.
type StripeGateway struct{}

// NewStripeGateway configures the Stripe client with the store's secret key
// and returns a gateway.
func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

// CreateIntent registers a payment intent for the given amount in minor
// currency units and returns the client secret the storefront uses to
// collect the payment, plus the intent id for webhook correlation.
func (g *StripeGateway) CreateIntent(amountMinorUnits int64, currency string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent.ClientSecret, intent.ID, nil
}

// VerifyWebhook checks the Stripe signature on a webhook payload and
// returns the decoded event.
func VerifyWebhook(payload []byte, signatureHeader, webhookSecret string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, webhookSecret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}
	return event, nil
}

// WebhookVerifierFor binds a webhook secret into a verifier function, in
// the shape the checkout handler expects.
func WebhookVerifierFor(webhookSecret string) func(payload []byte, signatureHeader string) (stripe.Event, error) {
	return func(payload []byte, signatureHeader string) (stripe.Event, error) {
		return VerifyWebhook(payload, signatureHeader, webhookSecret)
	}
}
