package review

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgconn"

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

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	const q = `
SELECT id::text, name, rating::int, comment, to_char(created_at, 'YYYY-MM-DD')
FROM reviews
WHERE product_id = $1
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, productID)
	if err != nil {
		r.logger.Printf("review repo: list product_id=%s error=%v", productID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.Name, &rv.Rating, &rv.Comment, &rv.Date); err != nil {
			return nil, err
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Create(ctx context.Context, productID string, rv domain.Review) error {
	const q = `
INSERT INTO reviews (id, product_id, name, rating, comment, created_at)
VALUES ($1::uuid, $2, $3, $4, $5, COALESCE(NULLIF($6, '')::date::timestamptz, now()))
`
	_, err := r.db.Exec(ctx, q, rv.ID, productID, rv.Name, rv.Rating, rv.Comment, rv.Date)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		r.logger.Printf("review repo: create product_id=%s error=%v", productID, err)
		return err
	}
	return nil
}
