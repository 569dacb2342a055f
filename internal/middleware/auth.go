package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pokerhub/pokerhub-backend/internal/api/httpx"
	"github.com/pokerhub/pokerhub-backend/internal/identity"
)

type principalKey struct{}

// PrincipalFrom returns the authenticated principal stored by Auth.
func PrincipalFrom(ctx context.Context) (identity.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(identity.Principal)
	return p, ok
}

// WithPrincipal is exported for handler tests.
func WithPrincipal(ctx context.Context, p identity.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

type AuthMiddleware struct {
	verifier *identity.Verifier
	log      *slog.Logger
}

func NewAuthMiddleware(v *identity.Verifier, log *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: v, log: log}
}

// Auth requires a valid provider-issued bearer token and stores the
// principal in the request context. Unauthenticated requests get the fixed
// 401 body and never reach storage.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized", "ログインが必要です")
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		p, err := m.verifier.Verify(token)
		if err != nil {
			// the caller only sees the fixed body; keep the detail here
			m.log.Warn("token verify failed", "err", err, "path", r.URL.Path)
			httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized", "ログインが必要です")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}
