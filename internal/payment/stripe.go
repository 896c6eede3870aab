// Package payment adapts the Stripe API to the checkout provider contract.
package payment

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"storefront/internal/domain"
	"storefront/internal/service/checkout"
)

type Stripe struct {
	api    *client.API
	logger *log.Logger
}

// NewStripe returns a Stripe provider, or nil when secretKey is empty.
// baseURL overrides the API endpoint and is empty in production.
func NewStripe(secretKey, baseURL string, logger *log.Logger) *Stripe {
	if secretKey == "" {
		return nil
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if baseURL != "" {
		cfg.URL = stripe.String(baseURL)
	}
	backends := &stripe.Backends{
		API: stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
	}
	return &Stripe{api: client.New(secretKey, backends), logger: logger}
}

// FindCustomerByEmail returns the id of the first customer with exactly email, or "".
func (s *Stripe) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := s.api.Customers.List(params)
	if iter.Next() {
		c := iter.Customer()
		s.logger.Printf("stripe: found existing customer id=%s", c.ID)
		return c.ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", err
	}
	return "", nil
}

// CreateSession creates a one-time payment session with a single line item.
func (s *Stripe) CreateSession(ctx context.Context, p checkout.SessionParams) (*domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.ProductName),
					},
					UnitAmount: stripe.Int64(p.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{p.AllowedCountry}),
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx
	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	} else {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			s.logger.Printf("stripe: create session failed type=%s code=%s msg=%s", stripeErr.Type, stripeErr.Code, stripeErr.Msg)
		}
		return nil, err
	}
	if sess.URL == "" {
		return nil, errors.New("stripe: session has no redirect url")
	}
	return &domain.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
