package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

const (
	// GuestEmail keys checkout sessions of buyers without a resolvable account.
	GuestEmail = "guest@example.com"

	DefaultCurrency = "usd"

	SuccessPath = "/payment-success"
	CancelPath  = "/payment-canceled"
)

var (
	// ErrNotConfigured is returned when no payment provider credential is configured.
	ErrNotConfigured = errors.New("payment provider configuration error")
	// ErrInvalidAmount is returned for an explicit amount outside (0, cartsvc.MaxTotalCents].
	ErrInvalidAmount = errors.New("amount must be positive and within the checkout limit")
)

// SessionParams describes the hosted checkout session to create.
type SessionParams struct {
	ProductName    string
	AmountCents    int64
	Currency       string
	CustomerID     string
	CustomerEmail  string
	AllowedCountry string
	SuccessURL     string
	CancelURL      string
}

// Provider creates hosted checkout sessions with a payment provider.
type Provider interface {
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
	CreateSession(ctx context.Context, p SessionParams) (*domain.CheckoutSession, error)
}

type accountResolver interface {
	EmailByToken(ctx context.Context, token string) (string, error)
}

type Service struct {
	provider       Provider
	accounts       accountResolver
	allowedCountry string
	logger         *log.Logger
}

// New builds a Service. A nil provider makes every Create fail with ErrNotConfigured;
// a nil accounts resolver treats every buyer as a guest.
func New(provider Provider, accounts accountResolver, allowedCountry string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if allowedCountry == "" {
		allowedCountry = "US"
	}
	return &Service{
		provider:       provider,
		accounts:       accounts,
		allowedCountry: allowedCountry,
		logger:         logger,
	}
}

// Input carries one checkout request. Empty fields fall back to the demo product;
// AmountCents is only defaulted when HasAmount is false.
type Input struct {
	Product     string
	AmountCents int64
	HasAmount   bool
	Currency    string
	BearerToken string
	Origin      string
}

// Create resolves the buyer and creates a hosted checkout session, returning its redirect URL.
func (s *Service) Create(ctx context.Context, in Input) (*domain.CheckoutSession, error) {
	in = withDefaults(in)
	if in.AmountCents <= 0 || in.AmountCents > cartsvc.MaxTotalCents {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, in.AmountCents)
	}
	if s.provider == nil {
		s.logger.Printf("checkout: payment provider credential not configured")
		return nil, ErrNotConfigured
	}

	email := s.resolveEmail(ctx, in.BearerToken)
	params := SessionParams{
		ProductName:    in.Product,
		AmountCents:    in.AmountCents,
		Currency:       in.Currency,
		AllowedCountry: s.allowedCountry,
		SuccessURL:     joinURL(in.Origin, SuccessPath),
		CancelURL:      joinURL(in.Origin, CancelPath),
	}

	if email != GuestEmail {
		customerID, err := s.provider.FindCustomerByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("lookup customer: %w", err)
		}
		params.CustomerID = customerID
	}
	if params.CustomerID == "" {
		params.CustomerEmail = email
	}

	session, err := s.provider.CreateSession(ctx, params)
	if err != nil {
		s.logger.Printf("checkout: create session product=%q amount=%d error=%v", in.Product, in.AmountCents, err)
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	s.logger.Printf("checkout: session created id=%s amount=%d currency=%s", session.ID, in.AmountCents, in.Currency)
	return session, nil
}

// ForCart starts a checkout for the whole cart summary.
func (s *Service) ForCart(ctx context.Context, summary domain.CartSummary, bearerToken, origin string) (*domain.CheckoutSession, error) {
	if len(summary.Items) == 0 {
		return nil, errors.New("cart is empty")
	}
	if summary.TotalCents <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, summary.TotalCents)
	}
	name := summary.Items[0].Name
	if len(summary.Items) > 1 {
		name = fmt.Sprintf("%s and %d more", name, len(summary.Items)-1)
	}
	return s.Create(ctx, Input{
		Product:     name,
		AmountCents: summary.TotalCents,
		HasAmount:   true,
		Currency:    DefaultCurrency,
		BearerToken: bearerToken,
		Origin:      origin,
	})
}

func (s *Service) resolveEmail(ctx context.Context, token string) string {
	token = strings.TrimSpace(token)
	if token == "" || s.accounts == nil {
		return GuestEmail
	}
	email, err := s.accounts.EmailByToken(ctx, token)
	if err != nil || strings.TrimSpace(email) == "" {
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("checkout: resolve account error=%v", err)
		}
		return GuestEmail
	}
	return email
}

func withDefaults(in Input) Input {
	demo, _ := catalog.Product(catalog.DefaultProductID)
	if strings.TrimSpace(in.Product) == "" {
		in.Product = demo.Name
	}
	if !in.HasAmount {
		in.AmountCents = demo.PriceCents
	}
	if strings.TrimSpace(in.Currency) == "" {
		in.Currency = DefaultCurrency
	}
	in.Currency = strings.ToLower(in.Currency)
	return in
}

func joinURL(origin, path string) string {
	return strings.TrimRight(origin, "/") + path
}
