package main

import (
	"log/slog"
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-contentkit/internal/config"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/metrics"
	"github.com/goliatone/go-contentkit/pkg/layout"
	"github.com/goliatone/go-contentkit/pkg/orchestrator"
	"github.com/goliatone/go-contentkit/pkg/store"
)

// app is the configured pipeline shared by every command.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	orch     *orchestrator.Orchestrator
	registry *prom.Registry
	store    *store.FileStore
}

// newApp loads the configuration, applies flag overrides and wires the
// orchestrator.
func newApp(cli *CLI, override func(*config.Config)) (*app, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if cli.Verbose {
		level = "debug"
	}
	logger, err := logging.New(os.Stderr, level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	layoutOpts := []layout.Option{
		layout.WithSiteName(cfg.Site.Name),
		layout.WithLang(cfg.Site.Lang),
	}
	if manifest := cfg.Manifest(); manifest != nil {
		selector, err := layout.NewManifestSelector(manifest)
		if err != nil {
			return nil, err
		}
		layoutOpts = append(layoutOpts, layout.WithThemeSelector(selector, cfg.Theme.Name, cfg.Theme.Variant))
	}
	page, err := layout.New(layoutOpts...)
	if err != nil {
		return nil, err
	}
	if _, err := page.Theme(); err != nil {
		return nil, err
	}

	storePath := cfg.Output.Store
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(cfg.Output.Dir, storePath)
	}
	snapshots := store.NewFileStore(storePath)

	registry := prom.NewRegistry()
	orch := orchestrator.New(
		orchestrator.WithLayout(page.Render),
		orchestrator.WithStore(snapshots),
		orchestrator.WithRecorder(metrics.NewPrometheusRecorder(registry)),
		orchestrator.WithLogger(logger),
		orchestrator.WithBaseURL(cfg.Site.BaseURL),
		orchestrator.WithPageType(cfg.Content.PageType),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		orch:     orch,
		registry: registry,
		store:    snapshots,
	}, nil
}
