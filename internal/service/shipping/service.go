package shipping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/kvstore"
)

// DefaultCountry is preselected on the shipping form.
const DefaultCountry = "US"

// Form is the raw shipping form as submitted.
type Form struct {
	FirstName            string `json:"firstName" form:"firstName"`
	LastName             string `json:"lastName" form:"lastName"`
	Email                string `json:"email" form:"email"`
	Phone                string `json:"phone" form:"phone"`
	Address              string `json:"address" form:"address"`
	City                 string `json:"city" form:"city"`
	State                string `json:"state" form:"state"`
	ZipCode              string `json:"zipCode" form:"zipCode"`
	Country              string `json:"country" form:"country"`
	DeliveryInstructions string `json:"deliveryInstructions" form:"deliveryInstructions"`
}

// NewForm returns an empty form with the default country selected.
func NewForm() Form {
	return Form{Country: DefaultCountry}
}

// ValidationError lists required fields left blank.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "please complete all required fields: " + strings.Join(e.Missing, ", ")
}

// Validate checks that every required field is non-empty after trimming.
func (f Form) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"address", f.Address},
		{"city", f.City},
		{"state", f.State},
		{"zipCode", f.ZipCode},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

type Service struct {
	store  kvstore.Store
	logger *log.Logger
	now    func() time.Time
}

func New(store kvstore.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Save validates form and persists it as the shipping record for sessionID.
// Nothing is written when validation fails.
func (s *Service) Save(ctx context.Context, form Form, sessionID string) (*domain.ShippingDetails, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	country := strings.TrimSpace(form.Country)
	if country == "" {
		country = DefaultCountry
	}
	rec := &domain.ShippingDetails{
		FirstName:            form.FirstName,
		LastName:             form.LastName,
		Email:                form.Email,
		Phone:                form.Phone,
		Address:              form.Address,
		City:                 form.City,
		State:                form.State,
		ZipCode:              form.ZipCode,
		Country:              country,
		DeliveryInstructions: form.DeliveryInstructions,
		OrderDate:            s.now().UTC(),
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID != "" {
		rec.SessionID = &sessionID
	}

	// The session-bound record is written first; once it exists the
	// unscoped "latest" copy is best effort.
	if sessionID != "" {
		if err := kvstore.SetJSON(ctx, s.store, kvstore.ShippingDetailsKey(sessionID), rec); err != nil {
			s.logger.Printf("shipping service: save session_id=%s error=%v", sessionID, err)
			return nil, fmt.Errorf("save shipping details: %w", err)
		}
	}
	if err := kvstore.SetJSON(ctx, s.store, kvstore.ShippingDetailsKey(""), rec); err != nil {
		if sessionID == "" {
			s.logger.Printf("shipping service: save error=%v", err)
			return nil, fmt.Errorf("save shipping details: %w", err)
		}
		s.logger.Printf("shipping service: update latest session_id=%s error=%v", sessionID, err)
	}
	s.logger.Printf("shipping service: saved session_id=%q country=%s", sessionID, country)
	return rec, nil
}

// Latest returns the shipping record bound to sessionID, or the most recent one when empty.
func (s *Service) Latest(ctx context.Context, sessionID string) (*domain.ShippingDetails, error) {
	var rec domain.ShippingDetails
	err := kvstore.GetJSON(ctx, s.store, kvstore.ShippingDetailsKey(strings.TrimSpace(sessionID)), &rec)
	if err != nil {
		if errors.Is(err, kvstore.ErrMiss) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
