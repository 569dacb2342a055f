package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokerhub/pokerhub-backend/internal/api/httpx"
	"github.com/pokerhub/pokerhub-backend/internal/models"
	"github.com/pokerhub/pokerhub-backend/internal/services"
)

type CurrencyHandler struct {
	svc *services.CurrencyService
	log *slog.Logger
}

func NewCurrencyHandler(svc *services.CurrencyService, log *slog.Logger) *CurrencyHandler {
	return &CurrencyHandler{svc: svc, log: log}
}

func (h *CurrencyHandler) List(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("list currencies failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "サーバーエラーが発生しました")
		return
	}
	if currencies == nil {
		currencies = []models.Currency{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"currencies": currencies})
}

// ListActive serves non-admin callers; inactive currencies stay hidden.
func (h *CurrencyHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.svc.ListActive(r.Context())
	if err != nil {
		h.log.Error("list active currencies failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", "サーバーエラーが発生しました")
		return
	}
	if currencies == nil {
		currencies = []models.Currency{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"currencies": currencies})
}

func (h *CurrencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateCurrencyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.Result{Success: false, Error: "invalid JSON"})
		return
	}
	httpx.WriteResult(w, h.svc.Create(r.Context(), in))
}

func (h *CurrencyHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var in services.EditCurrencyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.Result{Success: false, Error: "invalid JSON"})
		return
	}
	httpx.WriteResult(w, h.svc.Edit(r.Context(), chi.URLParam(r, "id"), in))
}

func (h *CurrencyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	httpx.WriteResult(w, h.svc.Delete(r.Context(), chi.URLParam(r, "id")))
}
