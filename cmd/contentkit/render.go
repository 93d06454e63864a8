package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goliatone/go-contentkit/internal/config"
	"github.com/goliatone/go-contentkit/internal/loader"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/metrics"
	"github.com/goliatone/go-contentkit/pkg/orchestrator"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Content     string `help:"Content directory (overrides content.dir)" type:"path"`
	Out         string `short:"o" help:"Output directory (overrides output.dir)" type:"path"`
	BaseURL     string `name:"base-url" help:"Site origin used for permalinks (overrides site.base_url)"`
	Yes         bool   `short:"y" help:"Write into a non-empty output directory without asking"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus text metrics to this file after rendering" type:"path"`
}

func (r *RenderCmd) Run(g *Global, cli *CLI) error {
	a, err := newApp(cli, r.apply)
	if err != nil {
		return err
	}

	empty, err := isEmptyDir(a.cfg.Output.Dir)
	if err != nil {
		return err
	}
	if !empty && !r.Yes {
		ok, err := confirm(g.Context, fmt.Sprintf("Output directory %s is not empty. Overwrite pages?", a.cfg.Output.Dir))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("render: aborted")
		}
	}

	if _, err := renderSite(g.Context, a); err != nil {
		return err
	}
	if r.MetricsFile != "" {
		if err := metrics.WriteTextfile(r.MetricsFile, a.registry); err != nil {
			return err
		}
	}
	return nil
}

func (r *RenderCmd) apply(cfg *config.Config) {
	if r.Content != "" {
		cfg.Content.Dir = r.Content
	}
	if r.Out != "" {
		cfg.Output.Dir = r.Out
	}
	if r.BaseURL != "" {
		cfg.Site.BaseURL = r.BaseURL
	}
}

// renderSite runs one static pass and publishes the result.
func renderSite(ctx context.Context, a *app) (orchestrator.Result, error) {
	started := time.Now()
	bundle, err := loader.LoadDir(a.cfg.Content.Dir)
	if err != nil {
		return orchestrator.Result{}, err
	}

	result, err := a.orch.Render(ctx, bundle.Input(nil))
	if err != nil {
		return orchestrator.Result{}, err
	}

	if err := publish(a.cfg.Output.Dir, result); err != nil {
		return orchestrator.Result{}, err
	}
	a.logger.Info("site rendered",
		slog.Int("items", bundle.Items()),
		logging.Pages(len(result.Pages)),
		slog.Int("redirects", len(result.Redirects)),
		logging.Path(a.cfg.Output.Dir),
		logging.DurationMS(float64(time.Since(started).Microseconds())/1000),
	)
	return result, nil
}
