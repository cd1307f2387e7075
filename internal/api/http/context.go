package http

import (
	"context"
	"net/http"

	"ngoforum-backend/internal/domain"
)

type ctxKey int

const principalKey ctxKey = iota

func withPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromContext returns the caller placed there by the auth middleware
func GetPrincipalFromContext(ctx context.Context) (domain.Principal, error) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return p, nil
}

// memberOrgID is the calling organization on member-only routes
func memberOrgID(r *http.Request) (int32, error) {
	p, err := GetPrincipalFromContext(r.Context())
	if err != nil {
		return 0, err
	}
	return p.MemberOrgID()
}
