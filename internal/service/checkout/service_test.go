package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type stubProvider struct {
	customerID  string
	findErr     error
	createErr   error
	lookups     []string
	lastParams  SessionParams
	createCalls int
}

func (s *stubProvider) FindCustomerByEmail(_ context.Context, email string) (string, error) {
	s.lookups = append(s.lookups, email)
	return s.customerID, s.findErr
}

func (s *stubProvider) CreateSession(_ context.Context, p SessionParams) (*domain.CheckoutSession, error) {
	s.createCalls++
	s.lastParams = p
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example.com/c/pay/cs_test_1"}, nil
}

type stubAccounts struct {
	email string
	err   error
}

func (s stubAccounts) EmailByToken(context.Context, string) (string, error) {
	return s.email, s.err
}

func TestCreateReturnsRedirectURL(t *testing.T) {
	provider := &stubProvider{}
	svc := New(provider, nil, "", nil)

	session, err := svc.Create(context.Background(), Input{
		Product:     "Handcrafted Ceramic Mug",
		AmountCents: 2800,
		HasAmount:   true,
		Currency:    "usd",
		Origin:      "https://shop.example.com/",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.URL)

	p := provider.lastParams
	assert.Equal(t, "Handcrafted Ceramic Mug", p.ProductName)
	assert.Equal(t, int64(2800), p.AmountCents)
	assert.Equal(t, "usd", p.Currency)
	assert.Equal(t, "US", p.AllowedCountry)
	assert.Equal(t, "https://shop.example.com/payment-success", p.SuccessURL)
	assert.Equal(t, "https://shop.example.com/payment-canceled", p.CancelURL)
	assert.Equal(t, GuestEmail, p.CustomerEmail)
	assert.Empty(t, p.CustomerID)
	assert.Empty(t, provider.lookups, "guests are never looked up")
}

func TestCreateWithoutProvider(t *testing.T) {
	svc := New(nil, nil, "US", nil)
	session, err := svc.Create(context.Background(), Input{AmountCents: 2800})
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, session)
}

func TestCreateAppliesDefaults(t *testing.T) {
	provider := &stubProvider{}
	svc := New(provider, nil, "CA", nil)

	_, err := svc.Create(context.Background(), Input{Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "Handcrafted Ceramic Mug", provider.lastParams.ProductName)
	assert.Equal(t, int64(2800), provider.lastParams.AmountCents)
	assert.Equal(t, "usd", provider.lastParams.Currency)
	assert.Equal(t, "CA", provider.lastParams.AllowedCountry)
}

func TestCreateRejectsExplicitAmountOutsideLimit(t *testing.T) {
	for _, amount := range []int64{0, -100, cartsvc.MaxTotalCents + 1} {
		provider := &stubProvider{}
		svc := New(provider, nil, "", nil)

		session, err := svc.Create(context.Background(), Input{AmountCents: amount, HasAmount: true})
		require.ErrorIs(t, err, ErrInvalidAmount, "amount %d", amount)
		assert.Nil(t, session)
		assert.Zero(t, provider.createCalls, "amount %d reached the provider", amount)
	}
}

func TestCreateValidatesAmountBeforeProviderConfig(t *testing.T) {
	_, err := New(nil, nil, "", nil).Create(context.Background(), Input{AmountCents: -1, HasAmount: true})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreateReusesExistingCustomer(t *testing.T) {
	provider := &stubProvider{customerID: "cus_123"}
	svc := New(provider, stubAccounts{email: "buyer@example.com"}, "", nil)

	_, err := svc.Create(context.Background(), Input{BearerToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, []string{"buyer@example.com"}, provider.lookups)
	assert.Equal(t, "cus_123", provider.lastParams.CustomerID)
	assert.Empty(t, provider.lastParams.CustomerEmail)
}

func TestCreateKeysByEmailWhenNoCustomer(t *testing.T) {
	provider := &stubProvider{}
	svc := New(provider, stubAccounts{email: "new@example.com"}, "", nil)

	_, err := svc.Create(context.Background(), Input{BearerToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", provider.lastParams.CustomerEmail)
}

func TestCreateFallsBackToGuestOnUnknownToken(t *testing.T) {
	provider := &stubProvider{}
	svc := New(provider, stubAccounts{err: domain.ErrNotFound}, "", nil)

	_, err := svc.Create(context.Background(), Input{BearerToken: "stale"})
	require.NoError(t, err)
	assert.Equal(t, GuestEmail, provider.lastParams.CustomerEmail)
	assert.Empty(t, provider.lookups)
}

func TestCreateProviderFailures(t *testing.T) {
	provider := &stubProvider{createErr: errors.New("card network down")}
	_, err := New(provider, nil, "", nil).Create(context.Background(), Input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card network down")

	provider = &stubProvider{findErr: errors.New("rate limited")}
	_, err = New(provider, stubAccounts{email: "a@b.c"}, "", nil).Create(context.Background(), Input{BearerToken: "t"})
	require.Error(t, err)
	assert.Zero(t, provider.createCalls)
}

func TestForCart(t *testing.T) {
	provider := &stubProvider{}
	svc := New(provider, nil, "", nil)
	summary := domain.CartSummary{
		Items: []domain.CartItem{
			{ProductID: "1", Name: "Handcrafted Ceramic Mug", PriceCents: 2800, Quantity: 1},
			{ProductID: "2", Name: "Woven Storage Basket", PriceCents: 4500, Quantity: 1},
		},
		TotalCents: 7300,
	}

	_, err := svc.ForCart(context.Background(), summary, "", "http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "Handcrafted Ceramic Mug and 1 more", provider.lastParams.ProductName)
	assert.Equal(t, int64(7300), provider.lastParams.AmountCents)

	_, err = svc.ForCart(context.Background(), domain.CartSummary{}, "", "")
	require.Error(t, err)
}

func TestForCartRejectsNonPositiveTotal(t *testing.T) {
	provider := &stubProvider{}
	summary := domain.CartSummary{
		Items:      []domain.CartItem{{ProductID: "1", Name: "Gift card", PriceCents: -500, Quantity: 1}},
		TotalCents: -500,
	}

	_, err := New(provider, nil, "", nil).ForCart(context.Background(), summary, "", "")
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Zero(t, provider.createCalls)
}
