package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-contentkit/internal/config"
	"github.com/goliatone/go-contentkit/internal/logging"
)

const rebuildDelay = 300 * time.Millisecond

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Content string `help:"Content directory (overrides content.dir)" type:"path"`
	Out     string `short:"o" help:"Output directory (overrides output.dir)" type:"path"`
}

func (w *WatchCmd) Run(g *Global, cli *CLI) error {
	a, err := newApp(cli, w.apply)
	if err != nil {
		return err
	}
	if _, err := renderSite(g.Context, a); err != nil {
		return err
	}

	root, err := filepath.Abs(a.cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("watch: resolve %s: %w", a.cfg.Content.Dir, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()
	addDirsRecursive(a, watcher, root)

	rebuild, trigger := debouncer(rebuildDelay)
	a.logger.Info("watching content", logging.Path(root))
	for {
		select {
		case <-g.Context.Done():
			a.logger.Info("watch stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignoreEvent(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					addDirsRecursive(a, watcher, ev.Name)
				}
			}
			a.logger.Debug("content changed", logging.Path(ev.Name), "op", ev.Op.String())
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watcher error", logging.Error(err))
		case <-rebuild:
			if _, err := renderSite(g.Context, a); err != nil {
				a.logger.Warn("rebuild failed", logging.Error(err))
			}
		}
	}
}

func (w *WatchCmd) apply(cfg *config.Config) {
	if w.Content != "" {
		cfg.Content.Dir = w.Content
	}
	if w.Out != "" {
		cfg.Output.Dir = w.Out
	}
}

// debouncer returns a channel that receives once delay has passed since the
// last call to trigger.
func debouncer(delay time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}
	return fire, trigger
}

func addDirsRecursive(a *app, w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			a.logger.Warn("watch add failed", logging.Path(path), logging.Error(err))
		}
		return nil
	})
}

// ignoreEvent reports whether a change to path should not trigger a rebuild:
// hidden files and editor swap or backup files.
func ignoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}
