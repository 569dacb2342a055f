package middleware

import (
	"log/slog"
	"net/http"

	"github.com/pokerhub/pokerhub-backend/internal/api/httpx"
)

// Recover normalizes panics to the generic server-error body.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic", "err", rec, "request_id", RequestIDFrom(r.Context()))
				httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "サーバーエラーが発生しました")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
