package domain

import (
	"context"
	"time"
)

type Staff struct {
	ID           int64
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the authenticated staff member acting on a request.
type Principal struct {
	ID    int64
	Email string
}

type principalKey struct{}

// WithPrincipal attaches the authenticated staff member to ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
