// Команда catalog-stub поднимает локальный стаб удалённого API витрины.
//
// @title           Storefront Stub API
// @version         1.0
// @description     Локальный стаб сервиса витрины для разработки клиента
//
// @host      localhost:3000
// @BasePath  /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/storefront-admin/internal/config"
	"github.com/magabrotheeeer/storefront-admin/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-admin/internal/stubserver"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting catalog stub", slog.String("address", cfg.StubServer.Address))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := stubserver.New(logger, cfg.StubServer)
	srv.Seed()

	httpServer := &http.Server{
		Addr:        cfg.StubServer.Address,
		Handler:     srv.Router(),
		IdleTimeout: cfg.StubServer.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
			return
		}
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := httpServer.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown failed", sl.Err(err))
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped with error", sl.Err(err))
			os.Exit(1)
		}
	}

	logger.Info("catalog stub stopped gracefully")
}
