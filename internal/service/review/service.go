package review

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/kvstore"
)

// ErrIncompleteReview is returned when name, comment or rating is missing.
var ErrIncompleteReview = errors.New("name, rating, and review are required")

type backendRepo interface {
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
}

type Service struct {
	store   kvstore.Store
	backend backendRepo
	logger  *log.Logger
	now     func() time.Time
}

// New builds a Service. backend may be nil.
func New(store kvstore.Store, backend backendRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: store, backend: backend, logger: logger, now: time.Now}
}

type SubmitInput struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// List returns the reviews of productID with their aggregate. Lookup failures
// degrade to seed reviews and never surface as errors.
func (s *Service) List(ctx context.Context, productID string) domain.ReviewSummary {
	return Summarize(s.load(ctx, productID))
}

// Submit validates in, prepends it to the product's reviews and persists the list.
func (s *Service) Submit(ctx context.Context, productID string, in SubmitInput) (domain.ReviewSummary, error) {
	name := strings.TrimSpace(in.Name)
	comment := strings.TrimSpace(in.Comment)
	if name == "" || comment == "" || in.Rating < 1 || in.Rating > 5 {
		return domain.ReviewSummary{}, ErrIncompleteReview
	}

	rv := domain.Review{
		ID:      uuid.NewString(),
		Name:    name,
		Rating:  in.Rating,
		Comment: comment,
		Date:    s.now().UTC().Format("2006-01-02"),
	}
	reviews := append([]domain.Review{rv}, s.load(ctx, productID)...)
	if err := kvstore.SetJSON(ctx, s.store, kvstore.ReviewsKey(productID), reviews); err != nil {
		s.logger.Printf("review service: save product_id=%s error=%v", productID, err)
		return domain.ReviewSummary{}, err
	}
	s.logger.Printf("review service: submitted product_id=%s rating=%d total=%d", productID, rv.Rating, len(reviews))
	return Summarize(reviews), nil
}

func (s *Service) load(ctx context.Context, productID string) []domain.Review {
	var saved []domain.Review
	err := kvstore.GetJSON(ctx, s.store, kvstore.ReviewsKey(productID), &saved)
	if err == nil {
		return saved
	}
	if !errors.Is(err, kvstore.ErrMiss) {
		s.logger.Printf("review service: load product_id=%s error=%v", productID, err)
	}

	if s.backend != nil {
		stored, err := s.backend.ListByProduct(ctx, productID)
		if err != nil {
			s.logger.Printf("review service: backend list product_id=%s error=%v", productID, err)
		} else if len(stored) > 0 {
			return stored
		}
	}
	return catalog.SeedReviews(productID)
}

// Summarize computes the mean rating rounded to one decimal, or 0 without reviews.
func Summarize(reviews []domain.Review) domain.ReviewSummary {
	if reviews == nil {
		reviews = []domain.Review{}
	}
	out := domain.ReviewSummary{Reviews: reviews, ReviewCount: len(reviews)}
	if len(reviews) == 0 {
		return out
	}
	var sum int64
	for _, r := range reviews {
		sum += int64(r.Rating)
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(reviews)))).Round(1)
	out.AverageRating = avg.InexactFloat64()
	return out
}
