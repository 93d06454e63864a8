package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/orchestrator"
	"github.com/goliatone/go-contentkit/pkg/renderers/vanilla"
)

// Output layout under the output directory.
const (
	pageFile      = "index.html"
	redirectsFile = "_redirects"
	assetsDir     = "assets"
)

// publish writes pages, redirects and the component assets under dir. Every
// file is replaced atomically so a server reading dir never sees a partial
// page.
func publish(dir string, result orchestrator.Result) error {
	for _, page := range result.Pages {
		target, err := pagePath(dir, page.Slug)
		if err != nil {
			return err
		}
		if err := writeFile(target, []byte(page.Output)); err != nil {
			return err
		}
	}
	if err := writeFile(filepath.Join(dir, redirectsFile), redirectsBody(result.Redirects)); err != nil {
		return err
	}
	return copyFS(filepath.Join(dir, assetsDir), vanilla.AssetsFS())
}

// pagePath maps a slug to its index.html below dir. Slugs leaving dir are
// rejected.
func pagePath(dir, slug string) (string, error) {
	rel := strings.Trim(slug, "/")
	if rel == "" {
		return filepath.Join(dir, pageFile), nil
	}
	rel = filepath.FromSlash(rel)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("publish: slug %q escapes the output directory", slug)
	}
	return filepath.Join(dir, rel, pageFile), nil
}

// redirectsBody renders redirects in the _redirects format: one
// "from to status" line per redirect.
func redirectsBody(redirects []content.Redirect) []byte {
	var b bytes.Buffer
	for _, redirect := range redirects {
		b.WriteString(redirect.From + " " + redirect.To + " " + strconv.Itoa(redirect.Status) + "\n")
	}
	return b.Bytes()
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("publish: create %s: %w", filepath.Dir(path), err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("publish: write %s: %w", path, err)
	}
	return nil
}

func copyFS(dst string, src fs.FS) error {
	return fs.WalkDir(src, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		in, err := src.Open(name)
		if err != nil {
			return fmt.Errorf("publish: open asset %s: %w", name, err)
		}
		defer in.Close()
		target := filepath.Join(dst, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("publish: create %s: %w", filepath.Dir(target), err)
		}
		if err := atomic.WriteFile(target, in); err != nil {
			return fmt.Errorf("publish: write %s: %w", target, err)
		}
		return nil
	})
}

// isEmptyDir reports whether dir is missing or holds no entries.
func isEmptyDir(dir string) (bool, error) {
	f, err := os.Open(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("publish: open %s: %w", dir, err)
	}
	defer f.Close()
	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("publish: read %s: %w", dir, err)
	}
	return false, nil
}
