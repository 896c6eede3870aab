package product

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type reviewLister interface {
	List(ctx context.Context, productID string) domain.ReviewSummary
}

type Service struct {
	repo    productrepo.Repository
	reviews reviewLister
	logger  *log.Logger
}

// New builds a Service. repo may be nil, in which case only the built-in catalog is served.
func New(repo productrepo.Repository, reviews reviewLister, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, reviews: reviews, logger: logger}
}

// List returns in-stock products newest first, or the built-in set when the
// store is empty or unreachable.
func (s *Service) List(ctx context.Context) []domain.Product {
	if s.repo == nil {
		return catalog.Products()
	}
	products, err := s.repo.ListInStock(ctx)
	if err != nil {
		s.logger.Printf("product service: list failed, serving built-in catalog: %v", err)
		return catalog.Products()
	}
	if len(products) == 0 {
		return catalog.Products()
	}
	return products
}

// Get returns one product by id, consulting the built-in set when the store misses.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.repo != nil {
		p, err := s.repo.GetByID(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("product service: get id=%s failed: %v", id, err)
		}
	}
	if p, ok := catalog.Product(id); ok {
		return &p, nil
	}
	return nil, domain.ErrNotFound
}

// Detail returns the product with gallery, descriptive metadata and live review summary.
func (s *Service) Detail(ctx context.Context, id string) (*domain.ProductDetail, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	details := catalog.DetailsFor(p.Category)
	out := &domain.ProductDetail{
		Product:        *p,
		Sale:           p.OnSale(),
		Images:         stringList(p.Attributes["images"]),
		Features:       stringList(p.Attributes["features"]),
		Specifications: stringMap(p.Attributes["specifications"]),
	}
	if len(out.Images) == 0 && p.Image != "" {
		out.Images = []string{p.Image}
	}
	if len(out.Features) == 0 {
		out.Features = details.Features
	}
	if len(out.Specifications) == 0 {
		out.Specifications = details.Specifications
	}
	if s.reviews != nil {
		out.Reviews = s.reviews.List(ctx, p.ID)
	}
	return out, nil
}

func stringList(raw interface{}) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func stringMap(raw interface{}) map[string]string {
	switch v := raw.(type) {
	case map[string]string:
		return v
	case map[string]interface{}:
		out := make(map[string]string, len(v))
		for k, item := range v {
			if s, ok := item.(string); ok {
				out[k] = s
			}
		}
		return out
	default:
		return nil
	}
}
