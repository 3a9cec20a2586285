package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"taker_go/internal/domain"
	"taker_go/internal/infra"
	"taker_go/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config     *infra.Config
	Storage    *storage.Storage
	Downloader *infra.IconDownloader
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, DB)
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("Bootstrapping taker...")

	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	store, err := storage.NewStorage()
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("Database initialized")

	downloader, err := infra.NewIconDownloader()
	if err != nil {
		return err
	}
	b.Downloader = downloader
	slog.Info("Icon downloader ready")

	return nil
}

// SyncAssets synchronizes market metadata and icons in the background so the
// navigation shell has something to render on first paint.
func (b *Bootstrap) SyncAssets(ctx context.Context) {
	slog.Info("Starting asset synchronization...")

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 5) // Limit concurrent downloads

	for _, symbol := range b.Config.Markets {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}: // Acquire
			}
			defer func() { <-semaphore }() // Release

			market := &domain.MarketInfo{
				Symbol:       sym,
				Name:         sym, // Default to symbol until dynamic lookup
				IsActive:     sym == b.Config.Daemon.Symbol,
				UpdatedAt:    time.Now(),
				LastSyncedAt: time.Time{}, // Force sync if needed
			}

			// Check if exists to preserve IsFavorite
			if existing, _ := b.Storage.FindBySymbol(sym); existing != nil {
				market.IsFavorite = existing.IsFavorite
				market.IconPath = existing.IconPath
				market.LastSyncedAt = existing.LastSyncedAt
			}

			if err := b.Storage.Upsert(market); err != nil {
				slog.Error("Failed to upsert market", slog.String("symbol", sym), slog.Any("error", err))
			}

			path, err := b.Downloader.DownloadIcon(sym)
			if err != nil {
				slog.Warn("Failed to download icon", slog.String("symbol", sym), slog.Any("error", err))
			} else if path != "" {
				market.IconPath = path
				market.LastSyncedAt = time.Now()
				b.Storage.Upsert(market)
			}
		}(symbol)
	}

	wg.Wait()
	slog.Info("Asset synchronization completed")
}
