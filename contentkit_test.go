package contentkit

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/renderers/vanilla"
)

func contentTree() fstest.MapFS {
	return fstest.MapFS{
		"page/index.yaml": {Data: []byte("id: home\nslug: index\ntitle: Home\ncontent: []\n")},
		"page/about.yaml": {Data: []byte(`
id: about
slug: about
title: About
content:
  - renderType: container
    content: []
`)},
	}
}

func TestRenderFSStaticPass(t *testing.T) {
	result, err := RenderFS(context.Background(), contentTree(), nil)
	if err != nil {
		t.Fatalf("RenderFS: %v", err)
	}
	var slugs []string
	for _, page := range result.Pages {
		slugs = append(slugs, page.Slug)
	}
	if strings.Join(slugs, ",") != "/about/,/" && strings.Join(slugs, ",") != "/,/about/" {
		t.Fatalf("unexpected slugs %v", slugs)
	}
}

func TestRenderFSServerlessPass(t *testing.T) {
	result, err := RenderFS(context.Background(), contentTree(), &content.ServerlessData{Path: "/about/"})
	if err != nil {
		t.Fatalf("RenderFS: %v", err)
	}
	if result.Single == nil || result.Single.Slug != "/about/" {
		t.Fatalf("expected /about/, got %+v", result.Single)
	}
	if !strings.Contains(result.Single.Output, `class="o-container"`) {
		t.Fatalf("expected container markup, got %q", result.Single.Output)
	}
}

func TestWithThemeManifests(t *testing.T) {
	manifest := &theme.Manifest{
		Name:      "brand",
		Version:   "1.0.0",
		Tokens:    map[string]string{"brand": "#ff0000"},
		Templates: map[string]string{"page": "page.html"},
	}
	opt, err := WithThemeManifests([]*theme.Manifest{manifest}, "", "")
	if err != nil {
		t.Fatalf("WithThemeManifests: %v", err)
	}
	result, err := RenderFS(context.Background(), contentTree(), &content.ServerlessData{Path: "/"}, opt)
	if err != nil {
		t.Fatalf("RenderFS: %v", err)
	}
	if !strings.Contains(result.Single.Output, "--brand:#ff0000") {
		t.Fatalf("expected theme tokens in output, got %q", result.Single.Output)
	}
}

func TestWithThemeManifestsRejectsUnknownTheme(t *testing.T) {
	if _, err := WithThemeManifests(nil, "missing", ""); err == nil {
		t.Fatalf("expected an error without manifests")
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("stylesheet not embedded: %v", err)
	}
	if _, err := fs.ReadFile(LayoutTemplates(), "page.html"); err != nil {
		t.Fatalf("layout template not embedded: %v", err)
	}
	if _, err := fs.ReadFile(EmbeddedTemplates(), "field.html"); err != nil {
		t.Fatalf("component template not embedded: %v", err)
	}
}
