package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// DemoEmail owns DemoToken, a bearer credential for exercising customer checkout.
const (
	DemoEmail = "demo@example.com"
	DemoToken = "demo-access-token"

	demoTokenTTLSeconds = 30 * 24 * 60 * 60
)

// reviewNamespace derives stable review ids so reruns do not duplicate reviews.
var reviewNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("storefront/reviews"))

type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type ReviewWriter interface {
	Create(ctx context.Context, productID string, r domain.Review) error
}

type AccountWriter interface {
	Upsert(ctx context.Context, email string) (string, error)
	IssueToken(ctx context.Context, customerID, token string, ttlSeconds int) error
}

type Writers struct {
	Products ProductWriter
	Reviews  ReviewWriter
	Accounts AccountWriter
}

// Result counts what Apply wrote.
type Result struct {
	Products int
	Reviews  int
}

// Apply upserts the built-in catalog, its seed reviews and the demo account.
// It is idempotent: existing reviews and tokens are left in place.
func Apply(ctx context.Context, w Writers, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var res Result

	for _, p := range catalog.Products() {
		if _, err := w.Products.Upsert(ctx, p); err != nil {
			return res, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
		res.Products++

		for _, rv := range catalog.SeedReviews(p.ID) {
			rv.ID = reviewID(p.ID, rv.ID)
			err := w.Reviews.Create(ctx, p.ID, rv)
			if errors.Is(err, domain.ErrAlreadyExists) {
				continue
			}
			if err != nil {
				return res, fmt.Errorf("create review %s for product %s: %w", rv.ID, p.ID, err)
			}
			res.Reviews++
		}
	}

	if w.Accounts != nil {
		customerID, err := w.Accounts.Upsert(ctx, DemoEmail)
		if err != nil {
			return res, fmt.Errorf("upsert demo account: %w", err)
		}
		err = w.Accounts.IssueToken(ctx, customerID, DemoToken, demoTokenTTLSeconds)
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			logger.Printf("demo token already issued")
		case err != nil:
			return res, fmt.Errorf("issue demo token: %w", err)
		}
	}

	logger.Printf("seeded products=%d reviews=%d", res.Products, res.Reviews)
	return res, nil
}

func reviewID(productID, seedID string) string {
	return uuid.NewSHA1(reviewNamespace, []byte(productID+"/"+seedID)).String()
}
