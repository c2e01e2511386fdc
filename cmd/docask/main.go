// Package main provides the entry point for the docask CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/docask/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/docask/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docask/internal/adapters/driven/loader/filesystem"
	"github.com/custodia-labs/docask/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/docask/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docask/internal/adapters/driven/watcher"
	"github.com/custodia-labs/docask/internal/adapters/driving/cli"
	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
	"github.com/custodia-labs/docask/internal/core/services"
	"github.com/custodia-labs/docask/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		logger.Error("%v", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("%v", err)
		return err
	}

	store, err := openIndexStore(settings.Index)
	if err != nil {
		logger.Error("%v", err)
		return err
	}
	defer store.Close()

	loader := filesystem.NewLoader(filesystem.WithPDF())
	indexService := services.NewIndexService(
		store, loader, watcher.NewWatcher(watcher.DefaultDebounce, loader.Supports),
	)

	searchService, err := services.NewSearchService(store, services.DefaultResultCacheSize)
	if err != nil {
		logger.Error("%v", err)
		return err
	}
	indexService.OnBuild(searchService.Use)

	askService := services.NewAskService(searchService, ai.NewGeneratorFactory(settings.LLM))

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Index:    indexService,
		Search:   searchService,
		Ask:      askService,
		Settings: settingsService,
	})

	return cli.Execute(ctx)
}

// openIndexStore opens the configured index backend in settings.Dir.
func openIndexStore(settings domain.IndexSettings) (driven.IndexStore, error) {
	switch settings.Store {
	case domain.StoreBackendFile, "":
		store, err := file.NewStore(settings.Dir)
		if err != nil {
			return nil, fmt.Errorf("open index store: %w", err)
		}
		return store, nil
	case domain.StoreBackendSQLite:
		store, err := sqlite.NewStore(settings.Dir)
		if err != nil {
			return nil, fmt.Errorf("open index store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: index store %q", domain.ErrUnsupportedType, settings.Store)
	}
}
