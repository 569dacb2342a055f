package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pokerhub/pokerhub-backend/internal/api"
	"github.com/pokerhub/pokerhub-backend/internal/config"
	"github.com/pokerhub/pokerhub-backend/internal/db"
	"github.com/pokerhub/pokerhub-backend/internal/identity"
	"github.com/pokerhub/pokerhub-backend/internal/logger"
	"github.com/pokerhub/pokerhub-backend/internal/metrics"
	"github.com/pokerhub/pokerhub-backend/internal/repository/postgres"
	"github.com/pokerhub/pokerhub-backend/internal/services"
	"github.com/pokerhub/pokerhub-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	verifier := identity.NewVerifier(cfg.AuthSecret, cfg.AuthIssuer)
	recorder := services.NewAuditRecorder(repos.AuditLogs, wp, log)
	userSvc := services.NewUserService(repos.Users, log)
	currencySvc := services.NewCurrencyService(repos.Currencies, recorder, log)
	ledgerSvc := services.NewLedgerService(repos.Ledger, recorder, log)

	r := api.NewRouter(api.Deps{
		Cfg:         cfg,
		Verifier:    verifier,
		Users:       repos.Users,
		UserSvc:     userSvc,
		CurrencySvc: currencySvc,
		LedgerSvc:   ledgerSvc,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
