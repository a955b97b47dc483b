package middleware

import (
	"context"
	"net/http"

	"transportmarket/internal/domain"
)

// Identity is the authenticated caller as supplied by the external
// identity/session provider. Auth mechanics are out of scope; this core only
// consumes the already-resolved identity headers.
type Identity struct {
	ID   string
	Role domain.SenderRole
}

type identityCtxKey struct{}

// WithIdentity reads the X-User-ID / X-User-Role headers and stores the
// identity in the request context. Requests without identity pass through;
// handlers that need one reject them.
func WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-User-ID")
		role := domain.SenderRole(r.Header.Get("X-User-Role"))
		if id != "" && role.Valid() {
			ctx := context.WithValue(r.Context(), identityCtxKey{}, Identity{ID: id, Role: role})
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext returns the caller identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityCtxKey{}).(Identity)
	return ident, ok
}
