package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcfg "github.com/park285/Cheese-chesscore/internal/config"
	"github.com/park285/Cheese-chesscore/internal/corebuilder"
	"github.com/park285/Cheese-chesscore/internal/obslog"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	cfg, err := appcfg.Load()
	if err != nil {
		logger.Fatal("config_error", zap.Error(err))
	}

	deps, err := corebuilder.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("init_error", zap.Error(err))
	}
	defer deps.Close()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listen", zap.String("addr", cfg.Addr), zap.Bool("games", cfg.GamesEnabled()))
		errCh <- deps.Server.Listen(cfg.Addr)
	}()

	// Wait for termination signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutdown", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("listen_error", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := deps.Server.Shutdown(ctx); err != nil {
		logger.Warn("shutdown_error", zap.Error(err))
	}
}
