package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pokerhub/pokerhub-backend/internal/api/handlers"
	"github.com/pokerhub/pokerhub-backend/internal/config"
	"github.com/pokerhub/pokerhub-backend/internal/identity"
	"github.com/pokerhub/pokerhub-backend/internal/metrics"
	"github.com/pokerhub/pokerhub-backend/internal/middleware"
	repo "github.com/pokerhub/pokerhub-backend/internal/repository"
	"github.com/pokerhub/pokerhub-backend/internal/services"
)

type Deps struct {
	Cfg         config.Config
	Verifier    *identity.Verifier
	Users       repo.Users
	UserSvc     *services.UserService
	CurrencySvc *services.CurrencyService
	LedgerSvc   *services.LedgerService
	Log         *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	auth := middleware.NewAuthMiddleware(d.Verifier, d.Log)
	me := handlers.NewMeHandler(d.UserSvc, d.LedgerSvc, d.Log)
	currencies := handlers.NewCurrencyHandler(d.CurrencySvc, d.Log)
	grants := handlers.NewGrantHandler(d.LedgerSvc, d.Log)
	transactions := handlers.NewTransactionHandler(d.LedgerSvc, d.Log)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Auth)
			r.Get("/me", me.Get)
			r.Get("/me/balances", me.Balances)
			r.Get("/currencies", currencies.ListActive)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.Auth, middleware.RequireAdmin(d.Users))
			r.Get("/currencies", currencies.List)
			r.Post("/currencies", currencies.Create)
			r.Put("/currencies/{id}", currencies.Edit)
			r.Delete("/currencies/{id}", currencies.Delete)
			r.Post("/grants", grants.Grant)
			r.Get("/transactions", transactions.List)
		})
	})

	return r
}
