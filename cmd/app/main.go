package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taker_go/internal/app"
	"taker_go/internal/gateway"
	"taker_go/internal/infra/daemon"
	"taker_go/internal/service"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := bootstrap.Config

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Background Asset Sync for the navigation shell
	go bootstrap.SyncAssets(ctx)

	// 5. Form service fed by the daemon event stream
	client := daemon.NewClient(cfg)
	form := service.NewFormService(client)
	form.StartUpdateProcessor(ctx)

	feed := daemon.NewFeedWorker(cfg.Daemon.WSURL, form.Inbox())
	if err := feed.Connect(ctx); err != nil {
		slog.Error("Failed to start daemon feed", slog.Any("error", err))
	}
	defer feed.Disconnect()
	slog.InfoContext(ctx, "Daemon feed worker started", slog.String("url", cfg.Daemon.WSURL))

	// 6. Local gateway for the web shell
	handlers := gateway.NewHandlers(form, bootstrap.Storage, client, cfg.UI.DefaultTheme, slog.Default())
	router := gateway.NewRouter(handlers, cfg.Gateway.AllowedOrigins)

	server := &http.Server{
		Addr:              cfg.Gateway.BindAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Gateway listening", slog.String("addr", cfg.Gateway.BindAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Gateway failed", slog.Any("error", err))
			stop()
		}
	}()

	slog.InfoContext(ctx, "Taker fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.InfoContext(ctx, "Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Gateway shutdown failed", slog.Any("error", err))
	}
}
