package account

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"storefront/internal/db"
	"storefront/internal/domain"
)

type postgresRepo struct {
	db db.DBTX
}

func NewPostgres(conn db.DBTX) Repository {
	return &postgresRepo{db: conn}
}

// EmailByToken returns the email of the customer owning a live access token.
func (r *postgresRepo) EmailByToken(ctx context.Context, token string) (string, error) {
	const q = `
SELECT c.email
FROM tokens t
JOIN customers c ON c.id = t.customer_id
WHERE t.token = $1 AND t.kind = 'access' AND t.expires_at > now()
LIMIT 1
`
	var email string
	if err := r.db.QueryRow(ctx, q, token).Scan(&email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return email, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, email string) (string, error) {
	const q = `
INSERT INTO customers (email)
VALUES ($1)
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING id::text
`
	var id string
	if err := r.db.QueryRow(ctx, q, strings.ToLower(strings.TrimSpace(email))).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *postgresRepo) IssueToken(ctx context.Context, customerID, token string, ttlSeconds int) error {
	const q = `
INSERT INTO tokens (token, customer_id, kind, expires_at)
VALUES ($1, $2::uuid, 'access', now() + make_interval(secs => $3))
`
	_, err := r.db.Exec(ctx, q, token, customerID, ttlSeconds)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}
