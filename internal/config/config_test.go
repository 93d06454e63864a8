package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Output.Dir != "./public" || cfg.Content.PageType != "page" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.Manifest() != nil {
		t.Fatalf("theme must be disabled by default")
	}
}

func TestLoadExpandsEnvAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SITE_TITLE", "Acme")
	t.Setenv("CONTENTKIT_OUTPUT_DIR", "./dist")
	writeFile(t, dir, ".env", "CONTENTKIT_SERVE_ADDR=:9090\n")
	t.Cleanup(func() { os.Unsetenv("CONTENTKIT_SERVE_ADDR") })

	path := writeFile(t, dir, "contentkit.yaml", `
site:
  name: ${SITE_TITLE}
  base_url: https://example.com
content:
  dir: ./pages
theme:
  name: acme
  variant: dark
  tokens:
    brand: "#123456"
  assets:
    prefix: /assets/themes/acme
    files:
      stylesheet: theme.css
  variants:
    dark:
      tokens:
        brand: "#000000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Site.Name != "Acme" {
		t.Fatalf("env not expanded: %q", cfg.Site.Name)
	}
	if cfg.Output.Dir != "./dist" {
		t.Fatalf("override not applied: %q", cfg.Output.Dir)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Fatalf(".env not loaded: %q", cfg.Serve.Addr)
	}
	if cfg.Content.Dir != "./pages" {
		t.Fatalf("content dir = %q", cfg.Content.Dir)
	}

	manifest := cfg.Manifest()
	if manifest == nil || manifest.Name != "acme" || manifest.Version != "0.0.0" {
		t.Fatalf("unexpected manifest %#v", manifest)
	}
	if got := manifest.Variants["dark"].Tokens["brand"]; got != "#000000" {
		t.Fatalf("variant tokens = %q", got)
	}
	if got := manifest.Assets.Files["stylesheet"]; got != "theme.css" {
		t.Fatalf("assets not converted: %q", got)
	}
}

func TestLoadValidates(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "bad.yaml", `
site:
  base_url: example.com
theme:
  variant: dark
logging:
  format: xml
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"base_url", "theme.variant requires theme.name", "logging.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("nope.yaml"); err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}
