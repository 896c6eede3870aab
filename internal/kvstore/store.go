// Package kvstore persists small JSON records by key, replacing ambient
// browser storage with an injected repository.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMiss is returned when no value is stored under a key.
var ErrMiss = errors.New("kvstore: miss")

// Store reads and writes opaque values by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

const shippingDetailsKey = "shipping_details"

// ReviewsKey is the record holding the review list of productID.
func ReviewsKey(productID string) string {
	return "reviews_" + productID
}

// ShippingDetailsKey is the latest shipping record, or the one bound to sessionID when set.
func ShippingDetailsKey(sessionID string) string {
	if sessionID == "" {
		return shippingDetailsKey
	}
	return shippingDetailsKey + "_" + sessionID
}

// GetJSON decodes the value under key into dst.
func GetJSON(ctx context.Context, s Store, key string, dst any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
