package vanilla

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-contentkit/pkg/render"
	rendertemplate "github.com/goliatone/go-contentkit/pkg/render/template"
	"github.com/goliatone/go-contentkit/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet overrides the stylesheet URL pages containing a form load.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = href
	}
}

// Components holds the built-in container, column, form and field render
// functions.
type Components struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

// New constructs the built-in components applying any provided options.
func New(options ...Option) (*Components, error) {
	cfg := config{stylesheet: "/assets/" + StylesheetName}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Components{templates: renderer, stylesheet: cfg.stylesheet}, nil
}

// Descriptors returns the registry entries of every built-in component.
func (c *Components) Descriptors() []render.Descriptor {
	var stylesheets []string
	if c.stylesheet != "" {
		stylesheets = []string{c.stylesheet}
	}
	return []render.Descriptor{
		{Name: render.TypeContainer, Render: Container},
		{Name: render.TypeColumn, Render: Column},
		{Name: render.TypeForm, Render: Form, Stylesheets: stylesheets},
		{Name: render.TypeField, Render: c.Field},
	}
}

// Register adds every built-in component to reg.
func Register(reg *render.Registry, options ...Option) error {
	components, err := New(options...)
	if err != nil {
		return err
	}
	for _, desc := range components.Descriptors() {
		if err := reg.Register(desc); err != nil {
			return err
		}
	}
	return nil
}
