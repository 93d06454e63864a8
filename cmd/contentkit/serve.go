package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-contentkit/internal/config"
	"github.com/goliatone/go-contentkit/internal/loader"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/metrics"
	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/renderers/vanilla"
)

const shutdownTimeout = 5 * time.Second

// ServeCmd implements the 'serve' command: every request is rendered on
// demand as a serverless pass.
type ServeCmd struct {
	Content string `help:"Content directory (overrides content.dir)" type:"path"`
	Addr    string `help:"Listen address (overrides serve.addr)"`
}

func (s *ServeCmd) Run(g *Global, cli *CLI) error {
	a, err := newApp(cli, s.apply)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.cfg.Serve.Addr,
		Handler:           newServeMux(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("serving", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-g.Context.Done():
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("serve: shutdown: %w", err)
		}
		return nil
	}
}

func (s *ServeCmd) apply(cfg *config.Config) {
	if s.Content != "" {
		cfg.Content.Dir = s.Content
	}
	if s.Addr != "" {
		cfg.Serve.Addr = s.Addr
	}
}

func newServeMux(a *app) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(a.registry))
	mux.Handle("/"+assetsDir+"/", http.StripPrefix("/"+assetsDir+"/", http.FileServerFS(vanilla.AssetsFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		servePage(a, w, r)
	})
	return mux
}

func servePage(a *app, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	bundle, err := loader.LoadDir(a.cfg.Content.Dir)
	if err != nil {
		a.logger.Error("load content", logging.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	result, err := a.orch.Render(r.Context(), bundle.Input(&content.ServerlessData{
		Path:  r.URL.Path,
		Query: r.URL.Query(),
	}))
	if err != nil {
		a.logger.Error("render request", logging.Path(r.URL.Path), logging.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	for _, redirect := range result.Redirects {
		if redirect.From == r.URL.Path {
			http.Redirect(w, r, redirect.To, redirect.Status)
			return
		}
	}
	if result.Single == nil || result.Single.Slug == "" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(result.Single.Output))
}
