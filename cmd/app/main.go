package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/aggregate"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/auth"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/chat"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/config"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/database"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/database/postgres"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/kvstore"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/notify"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/server"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/syncer"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/worker"
)

const (
	dbMaxConns       = 10
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute
	workerCount      = 4
	workerQueueSize  = 64
	shutdownDeadline = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	// Remote relational store
	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// On-device key-value store
	store, err := kvstore.OpenSQLite(cfg.KVStorePath)
	if err != nil {
		slog.Error("Failed to open local store", "error", err, "path", cfg.KVStorePath)
		os.Exit(1)
	}
	defer store.Close()

	// Services
	authService := auth.NewService(postgres.NewIdentityStore(pool), auth.NewSessionStore(store))
	aggService := aggregate.NewService(postgres.NewCountStore(pool))
	chatClient := chat.NewClient(cfg.AssistantEndpoint, cfg.AssistantAPIKey, cfg.AssistantModel)

	// Settle the persisted session before serving requests
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 10*time.Second)
	if user, err := authService.RestoreSession(restoreCtx); err == nil && user != nil {
		slog.Info("Session restored", "user_id", user.ID)
	} else {
		slog.Info("Starting signed out")
	}
	cancelRestore()

	// Background delivery and remote mirroring
	workerPool := worker.NewPool(workerCount, workerQueueSize)
	workerPool.Start()
	scheduler := notify.NewScheduler(workerPool, notify.LogNotifier{})
	invSync := syncer.NewInventory(postgres.NewInventoryStore(pool), workerPool)

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool, authService, aggService, chatClient, store, scheduler, invSync)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}

	scheduler.Stop()
	workerPool.Stop()

	slog.Info("Shutdown complete")
}
