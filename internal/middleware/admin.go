package middleware

import (
	"errors"
	"net/http"

	"github.com/pokerhub/pokerhub-backend/internal/api/httpx"
	repo "github.com/pokerhub/pokerhub-backend/internal/repository"
)

// RequireAdmin allows only principals whose application user row carries
// is_admin. The flag lives in the database, not in token claims, so a demoted
// admin is locked out on the next request.
func RequireAdmin(users repo.Users) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized", "ログインが必要です")
				return
			}
			u, err := users.GetByID(r.Context(), p.ID)
			if errors.Is(err, repo.ErrNotFound) || (err == nil && !u.IsAdmin) {
				httpx.WriteError(w, http.StatusForbidden, "Forbidden", "管理者権限が必要です")
				return
			}
			if err != nil {
				httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "サーバーエラーが発生しました")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
