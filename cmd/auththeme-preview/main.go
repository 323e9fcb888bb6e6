package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goliatone/go-auththeme/internal/config"
	"github.com/goliatone/go-auththeme/internal/logging"
	"github.com/goliatone/go-auththeme/internal/logging/gologger"
	"github.com/goliatone/go-auththeme/pkg/fixture"
	"github.com/goliatone/go-auththeme/pkg/preview"
	"github.com/goliatone/go-auththeme/pkg/router"
	"github.com/goliatone/go-auththeme/pkg/stories"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if trimmed := strings.TrimSpace(*addr); trimmed != "" {
		cfg.Preview.Addr = trimmed
	}

	provider, err := gologger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	logger := logging.PreviewLogger(provider)

	catalog, err := loadCatalog(cfg.StoriesDir)
	if err != nil {
		logger.Error("load stories", "error", err)
		os.Exit(1)
	}

	r := router.New(
		router.WithStyleOptions(
			styles.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
			styles.WithAssetsPrefix(cfg.Preview.AssetsPrefix),
		),
		router.WithTemplatesDir(cfg.TemplatesDir),
		router.WithLoggerProvider(provider),
	)
	if err := r.Err(); err != nil {
		logger.Error("build router", "error", err)
		os.Exit(1)
	}

	server, err := preview.New(
		preview.WithRouter(r),
		preview.WithCatalog(catalog),
		preview.WithAssets(styles.AssetsFS(), cfg.Preview.AssetsPrefix),
		preview.WithBaseOverrides(fixture.Overrides{Locale: fixture.Ptr(cfg.Locale.Default)}),
		preview.WithLoggerProvider(provider),
	)
	if err != nil {
		logger.Error("build preview server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.Preview.Addr, cfg.Preview.ReadHeaderTimeout, cfg.Preview.ShutdownTimeout); err != nil {
		logger.Error("preview server", "error", err)
		os.Exit(1)
	}
}

func loadCatalog(dir string) (*stories.Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return stories.Default()
	}
	return stories.Load(os.DirFS(dir))
}
