// Package contentkit renders structured content trees into HTML pages. The
// root package re-exports the orchestrator entry points so callers can render
// a site without importing the pipeline packages one by one.
package contentkit

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contentkit/internal/loader"
	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/layout"
	"github.com/goliatone/go-contentkit/pkg/orchestrator"
)

// Input aliases orchestrator.Input.
type Input = orchestrator.Input

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// Item is one authored content item.
type Item = content.Item

// Collection groups the items of one content type.
type Collection = content.Collection

// Output is one rendered page.
type Output = content.Output

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Render runs one pass over in with a fresh orchestrator.
func Render(ctx context.Context, in Input, options ...orchestrator.Option) (Result, error) {
	return orchestrator.New(options...).Render(ctx, in)
}

// RenderFS loads a content tree from fsys and renders it. A non-nil
// serverless request renders only the item addressed by its path.
func RenderFS(ctx context.Context, fsys fs.FS, serverless *content.ServerlessData, options ...orchestrator.Option) (Result, error) {
	bundle, err := loader.LoadFS(fsys)
	if err != nil {
		return Result{}, err
	}
	return Render(ctx, bundle.Input(serverless), options...)
}

// WithThemeSelector renders pages with the default layout themed by the
// selection the go-theme selector resolves for name and variant. The
// selection is resolved immediately so an unknown theme fails here.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string, options ...layout.Option) (orchestrator.Option, error) {
	options = append(options, layout.WithThemeSelector(selector, name, variant))
	page, err := layout.New(options...)
	if err != nil {
		return nil, err
	}
	if _, err := page.Theme(); err != nil {
		return nil, err
	}
	return orchestrator.WithLayout(page.Render), nil
}

// WithThemeManifests registers the manifests with a selector and themes the
// default layout with it. An empty name selects the first manifest.
func WithThemeManifests(manifests []*theme.Manifest, name, variant string, options ...layout.Option) (orchestrator.Option, error) {
	selector, err := layout.NewManifestSelector(manifests...)
	if err != nil {
		return nil, err
	}
	return WithThemeSelector(selector, name, variant, options...)
}
