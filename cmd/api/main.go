package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-marketplace/internal/adapters/storage/postgres"
	"pet-marketplace/internal/platform/config"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, App: "pet-marketplace"})
	defer func() { _ = log.Sync() }()

	var db *sql.DB
	if cfg.Database.DSN != "" {
		db, err = postgres.Open(cfg.Database.DSN, postgres.PoolOptions{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			log.Error("postgres open", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		migrateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = postgres.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			log.Error("postgres migrate", "error", err)
			os.Exit(1)
		}
	}

	handler := router.NewRouter(router.Options{
		DB:       db,
		DevAuth:  cfg.Auth.DevMode,
		TokenTTL: cfg.Auth.TokenTTL,
		Logger:   log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
