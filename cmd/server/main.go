package main

import (
	"Valtify/internal/auth"
	"Valtify/internal/config"
	"Valtify/internal/crypto"
	"Valtify/internal/handlers"
	"Valtify/internal/middleware"
	"Valtify/internal/repo"
	"Valtify/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	newLogger := zap.NewDevelopment
	if cfg.LogJSON {
		newLogger = zap.NewProduction
	}
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if cfg.UsesDevSecrets() {
		sugar.Warnw("AUTH_SECRET or PAYLOAD_SECRET not set, using development defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	codec, err := crypto.NewPayloadCodec([]byte(cfg.PayloadSecret))
	if err != nil {
		sugar.Fatalw("invalid payload secret", "error", err)
	}

	accountRepo := repo.NewAccountRepository(gormDB, cfg.DBTimeout)
	itemRepo := repo.NewItemRepository(gormDB, cfg.DBTimeout)

	accountService := service.NewAccountService(
		accountRepo,
		auth.NewHasher(cfg.BcryptCost),
		auth.NewSessionIssuer([]byte(cfg.AuthSecret), cfg.TokenTTL),
		sugar,
	)
	vaultService := service.NewVaultService(itemRepo, codec, sugar)

	health := func(ctx context.Context) error { return repo.Ping(ctx, gormDB) }
	h := handlers.NewHandler(accountService, vaultService, health, sugar)

	addr := cfg.BaseURL
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	dbKind := "sqlite"
	if repo.IsPostgresDSN(cfg.DatabaseDSN) {
		dbKind = "postgres"
	}
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"Database", dbKind,
		"TokenTTL", cfg.TokenTTL,
		"BcryptCost", cfg.BcryptCost,
		"DBTimeout", cfg.DBTimeout,
	)

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("Starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Graceful shutdown failed", "error", err)
		}
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
