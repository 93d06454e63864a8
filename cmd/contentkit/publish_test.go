package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/orchestrator"
	"github.com/goliatone/go-contentkit/pkg/renderers/vanilla"
)

func TestPagePath(t *testing.T) {
	dir := filepath.Join("out")
	cases := map[string]string{
		"/":             filepath.Join("out", "index.html"),
		"/about/":       filepath.Join("out", "about", "index.html"),
		"/blog/page/2/": filepath.Join("out", "blog", "page", "2", "index.html"),
	}
	for slug, want := range cases {
		got, err := pagePath(dir, slug)
		if err != nil {
			t.Fatalf("pagePath(%q): %v", slug, err)
		}
		if got != want {
			t.Fatalf("pagePath(%q) = %q, want %q", slug, got, want)
		}
	}

	if _, err := pagePath(dir, "/../escape/"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestRedirectsBody(t *testing.T) {
	got := string(redirectsBody([]content.Redirect{
		{From: "/old/", To: "/new/", Status: 301},
		{From: "/tmp/", To: "https://example.com/", Status: 302},
	}))
	want := "/old/ /new/ 301\n/tmp/ https://example.com/ 302\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("redirects mismatch (-want +got):\n%s", diff)
	}
}

func TestPublishWritesPagesRedirectsAndAssets(t *testing.T) {
	dir := t.TempDir()
	err := publish(dir, orchestrator.Result{
		Pages: []content.Output{
			{Slug: "/", Output: "home"},
			{Slug: "/about/", Output: "about"},
		},
		Redirects: []content.Redirect{{From: "/us/", To: "/about/", Status: 301}},
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	for path, want := range map[string]string{
		"index.html":       "home",
		"about/index.html": "about",
		"_redirects":       "/us/ /about/ 301\n",
	} {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(data) != want {
			t.Fatalf("%s = %q, want %q", path, data, want)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, assetsDir, vanilla.StylesheetName)); err != nil {
		t.Fatalf("stylesheet not copied: %v", err)
	}
}

func TestIsEmptyDir(t *testing.T) {
	dir := t.TempDir()
	empty, err := isEmptyDir(filepath.Join(dir, "missing"))
	if err != nil || !empty {
		t.Fatalf("missing dir: empty=%v err=%v", empty, err)
	}
	empty, err = isEmptyDir(dir)
	if err != nil || !empty {
		t.Fatalf("empty dir: empty=%v err=%v", empty, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	empty, err = isEmptyDir(dir)
	if err != nil || empty {
		t.Fatalf("populated dir: empty=%v err=%v", empty, err)
	}
}

func TestRenderSitePublishesAndSavesSnapshot(t *testing.T) {
	a := newTestApp(t)

	result, err := renderSite(context.Background(), a)
	if err != nil {
		t.Fatalf("renderSite: %v", err)
	}
	if len(result.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(result.Pages))
	}

	data, err := os.ReadFile(filepath.Join(a.cfg.Output.Dir, "about", pageFile))
	if err != nil {
		t.Fatalf("read about page: %v", err)
	}
	if !strings.Contains(string(data), "<!doctype html>") {
		t.Fatalf("expected a full document, got %q", data)
	}
	if _, err := os.Stat(a.store.Path()); err != nil {
		t.Fatalf("snapshot not saved: %v", err)
	}
}

func TestRenderCmdAbortsWhenNotConfirmed(t *testing.T) {
	a := newTestApp(t)
	if err := os.MkdirAll(a.cfg.Output.Dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(a.cfg.Output.Dir, "stale.html"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var asked string
	prev := confirm
	confirm = func(_ context.Context, message string) (bool, error) {
		asked = message
		return false, nil
	}
	t.Cleanup(func() { confirm = prev })

	cmd := &RenderCmd{}
	err := cmd.Run(&Global{Context: context.Background()}, &CLI{Config: "contentkit.yaml"})
	if err == nil || !strings.Contains(err.Error(), "aborted") {
		t.Fatalf("expected abort, got %v", err)
	}
	if !strings.Contains(asked, "not empty") {
		t.Fatalf("unexpected prompt %q", asked)
	}
}
