package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdiaw/bibliotheque/internal/auth"
	"github.com/mdiaw/bibliotheque/internal/config"
	"github.com/mdiaw/bibliotheque/internal/db"
	"github.com/mdiaw/bibliotheque/internal/logger"
	"github.com/mdiaw/bibliotheque/internal/metrics"
	"github.com/mdiaw/bibliotheque/internal/repository/postgres"
	"github.com/mdiaw/bibliotheque/internal/services"
	"github.com/mdiaw/bibliotheque/internal/upload"
	"github.com/mdiaw/bibliotheque/internal/web"
	"github.com/mdiaw/bibliotheque/internal/worker"
)

const sessionTTL = 24 * time.Hour

var dbPool *pgxpool.Pool

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	dbPool, err = db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, dbPool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(dbPool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	userSvc := services.NewUserService(repos.Users)
	catalogSvc := services.NewCatalogService(repos.Books, repos.AuditLogs, wp)
	loanSvc := services.NewLoanService(repos.Loans, repos.AuditLogs, wp)

	sessions := auth.NewSessionManager(cfg.SessionSecret, sessionTTL)
	images := upload.NewImageStore(cfg.UploadDir)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Error("templates", "err", err)
		os.Exit(1)
	}

	metrics.Init()
	handlers := web.NewHandlers(userSvc, catalogSvc, loanSvc, sessions, images, renderer)
	router := web.NewRouter(cfg, handlers, sessions)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
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
