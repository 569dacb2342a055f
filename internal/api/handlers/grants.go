package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pokerhub/pokerhub-backend/internal/api/httpx"
	"github.com/pokerhub/pokerhub-backend/internal/services"
)

type GrantHandler struct {
	svc *services.LedgerService
	log *slog.Logger
}

func NewGrantHandler(svc *services.LedgerService, log *slog.Logger) *GrantHandler {
	return &GrantHandler{svc: svc, log: log}
}

func (h *GrantHandler) Grant(w http.ResponseWriter, r *http.Request) {
	var in services.GrantInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.Result{Success: false, Error: "invalid JSON"})
		return
	}
	if _, err := h.svc.Grant(r.Context(), in); err != nil {
		httpx.WriteResult(w, err)
		return
	}
	httpx.WriteResult(w, nil)
}
