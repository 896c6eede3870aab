package account

import "context"

// Repository resolves bearer credentials issued to customers.
type Repository interface {
	EmailByToken(ctx context.Context, token string) (string, error)
	Upsert(ctx context.Context, email string) (string, error)
	IssueToken(ctx context.Context, customerID, token string, ttlSeconds int) error
}
