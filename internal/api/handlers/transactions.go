package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pokerhub/pokerhub-backend/internal/api/httpx"
	"github.com/pokerhub/pokerhub-backend/internal/models"
	"github.com/pokerhub/pokerhub-backend/internal/services"
)

type TransactionHandler struct {
	svc *services.LedgerService
	log *slog.Logger
}

func NewTransactionHandler(svc *services.LedgerService, log *slog.Logger) *TransactionHandler {
	return &TransactionHandler{svc: svc, log: log}
}

// List returns the ledger newest-first with limit/offset paging.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	txns, err := h.svc.ListTransactions(r.Context(), limit, offset)
	if err != nil {
		h.log.Error("list transactions failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "サーバーエラーが発生しました")
		return
	}
	if txns == nil {
		txns = []models.TransactionRecord{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"transactions": txns})
}
