package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"

	"storefront/internal/db"
	"storefront/internal/domain"
)

type postgresRepo struct {
	db     db.DBTX
	logger *log.Logger
}

func NewPostgres(conn db.DBTX, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{db: conn, logger: logger}
}

const productColumns = `id, name, price_cents, COALESCE(original_price_cents, 0), image, rating::float8, review_count,
       category, in_stock, COALESCE(description, ''), attributes, created_at`

func (r *postgresRepo) ListInStock(ctx context.Context) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE in_stock = TRUE
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, price_cents, original_price_cents, image, rating, review_count, category, in_stock, description, attributes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    price_cents = EXCLUDED.price_cents,
    original_price_cents = EXCLUDED.original_price_cents,
    image = EXCLUDED.image,
    rating = EXCLUDED.rating,
    review_count = EXCLUDED.review_count,
    category = EXCLUDED.category,
    in_stock = EXCLUDED.in_stock,
    description = EXCLUDED.description,
    attributes = EXCLUDED.attributes
RETURNING created_at
`
	if p.ID == "" {
		return nil, errors.New("product repo: id required")
	}
	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]interface{}{}
	}
	attrJSON, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("product repo: encode attributes id=%s: %w", p.ID, err)
	}

	res := p
	err = r.db.QueryRow(ctx, q,
		p.ID,
		p.Name,
		p.PriceCents,
		p.OriginalPriceCents,
		p.Image,
		p.Rating,
		p.ReviewCount,
		p.Category,
		p.InStock,
		p.Description,
		attrJSON,
	).Scan(&res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert id=%s error=%v", p.ID, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted id=%s name=%q", res.ID, res.Name)
	return &res, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p        domain.Product
		original int64
		attrJSON []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.PriceCents,
		&original,
		&p.Image,
		&p.Rating,
		&p.ReviewCount,
		&p.Category,
		&p.InStock,
		&p.Description,
		&attrJSON,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if original > 0 {
		p.OriginalPriceCents = &original
	}
	if len(attrJSON) > 0 {
		if err := json.Unmarshal(attrJSON, &p.Attributes); err != nil {
			return nil, fmt.Errorf("decode attributes id=%s: %w", p.ID, err)
		}
	}
	return &p, nil
}
