// internal/services/payment_gateway.go
package services

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
)

// PaymentGateway creates a payment intent for amount minor units and
// returns its client secret.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type StripeGateway struct {
	client paymentintent.Client
}

// NewStripeGateway uses a per-client key instead of the package-level stripe.Key.
func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{
		client: paymentintent.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: secretKey,
		},
	}
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := g.client.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
