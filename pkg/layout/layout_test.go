package layout

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contentkit/pkg/assets"
	"github.com/goliatone/go-contentkit/pkg/content"
)

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     int
}

func (s *stubThemeSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls++
	return s.selection, s.err
}

func newLayout(t *testing.T, opts ...Option) *Layout {
	t.Helper()
	l, err := New(opts...)
	if err != nil {
		t.Fatalf("new layout: %v", err)
	}
	return l
}

func TestRenderDefaultPage(t *testing.T) {
	l := newLayout(t, WithSiteName("Acme"))
	out, err := l.Render(context.Background(), content.LayoutArgs{
		ID:           "about",
		ContentType:  "page",
		Slug:         "/about/",
		Meta:         content.Meta{Title: "About <us>", Description: "Who we are", Canonical: "https://acme.test/about/", NoIndex: true},
		Navigations:  map[string]string{"header": `<ul class="c-nav"></ul>`},
		Content:      `<div class="o-container"></div>`,
		PageContains: []string{"container"},
		Stylesheets:  []string{"/assets/site.css"},
		Scripts: []assets.Script{
			{Src: "/js/head.js", Defer: true},
			{Inline: "console.log(1)", Footer: true, Attrs: map[string]string{"data-x": "y"}},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.HasPrefix(out, "<!doctype html>\n") {
		t.Fatalf("missing doctype:\n%s", out)
	}
	for _, want := range []string{
		"<title>About &lt;us&gt; | Acme</title>",
		`<meta name="description" content="Who we are">`,
		`<meta name="robots" content="noindex, nofollow">`,
		`<link rel="canonical" href="https://acme.test/about/">`,
		`<link rel="stylesheet" href="/assets/site.css">`,
		`<script src="/js/head.js" defer></script>`,
		`<body class="l-page l-page--page has-container">`,
		`<header class="l-header"><ul class="c-nav"></ul></header>`,
		`<main class="l-main"><div class="o-container"></div></main>`,
		`<script data-x="y">console.log(1)</script>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "l-footer") {
		t.Fatalf("empty footer navigation should be omitted:\n%s", out)
	}
	if strings.Index(out, "console.log") < strings.Index(out, "</main>") {
		t.Fatalf("footer script rendered before content")
	}
}

func TestRenderTitleFallsBackToPageData(t *testing.T) {
	l := newLayout(t)
	out, err := l.Render(context.Background(), content.LayoutArgs{PageData: content.PageData{Title: "Home"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<title>Home</title>") {
		t.Fatalf("unexpected title:\n%s", out)
	}
}

func TestRenderAppliesTheme(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456", "surface": "#fff"},
			Assets: theme.Assets{
				Prefix: "/assets/themes/acme",
				Files:  map[string]string{StylesheetAsset: "theme.css"},
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{"surface": "#000"},
					Assets: theme.Assets{Files: map[string]string{StylesheetAsset: "theme.dark.css"}},
				},
			},
		},
	}}
	l := newLayout(t, WithThemeSelector(selector, "acme", "dark"))

	for range 2 {
		out, err := l.Render(context.Background(), content.LayoutArgs{Stylesheets: []string{"/a.css"}})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		for _, want := range []string{
			`<link rel="stylesheet" href="/assets/themes/acme/theme.dark.css">` + "\n" + `<link rel="stylesheet" href="/a.css">`,
			`<style>:root{--brand:#123456;--surface:#000;}</style>`,
			`data-theme="acme" data-theme-variant="dark"`,
		} {
			if !strings.Contains(out, want) {
				t.Fatalf("output missing %q:\n%s", want, out)
			}
		}
	}
	if selector.calls != 1 {
		t.Fatalf("theme should be selected once, got %d", selector.calls)
	}
}

func TestRenderThemeError(t *testing.T) {
	boom := errors.New("no such theme")
	l := newLayout(t, WithThemeSelector(&stubThemeSelector{err: boom}, "missing", ""))
	if _, err := l.Render(context.Background(), content.LayoutArgs{}); !errors.Is(err, boom) {
		t.Fatalf("expected theme error, got %v", err)
	}
}

func TestRendererConfigAssetURL(t *testing.T) {
	cfg := rendererConfig(&theme.Selection{Manifest: &theme.Manifest{
		Assets: theme.Assets{Prefix: "https://cdn.test/t/", Files: map[string]string{"a": "a.css", "abs": "/x.css"}},
	}})
	cases := map[string]string{"a": "https://cdn.test/t/a.css", "abs": "/x.css", "missing": ""}
	for key, want := range cases {
		if got := cfg.AssetURL(key); got != want {
			t.Fatalf("AssetURL(%q) = %q, want %q", key, got, want)
		}
	}
}
