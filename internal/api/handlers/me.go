package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pokerhub/pokerhub-backend/internal/api/httpx"
	"github.com/pokerhub/pokerhub-backend/internal/middleware"
	"github.com/pokerhub/pokerhub-backend/internal/models"
	"github.com/pokerhub/pokerhub-backend/internal/services"
)

type MeHandler struct {
	users  *services.UserService
	ledger *services.LedgerService
	log    *slog.Logger
}

func NewMeHandler(users *services.UserService, ledger *services.LedgerService, log *slog.Logger) *MeHandler {
	return &MeHandler{users: users, ledger: ledger, log: log}
}

// Get returns the caller's application user, provisioning it on first login.
func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized", "ログインが必要です")
		return
	}

	u, err := h.users.CurrentUser(r.Context(), p)
	if err != nil {
		h.log.Error("resolve current user failed", "user_id", p.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "サーバーエラーが発生しました")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]models.User{"user": u})
}

// Balances returns the caller's balances joined with currency info.
func (h *MeHandler) Balances(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized", "ログインが必要です")
		return
	}

	balances, err := h.ledger.BalancesFor(r.Context(), p.ID)
	if err != nil {
		h.log.Error("list balances failed", "user_id", p.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "サーバーエラーが発生しました")
		return
	}
	if balances == nil {
		balances = []models.BalanceRecord{}
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"balances": balances})
}
