package review

import (
	"context"

	"storefront/internal/domain"
)

// Repository reads reviews kept by the catalog backend.
type Repository interface {
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Create(ctx context.Context, productID string, r domain.Review) error
}
