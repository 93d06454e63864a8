package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/metrics"
	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/hooks"
	"github.com/goliatone/go-contentkit/pkg/layout"
	"github.com/goliatone/go-contentkit/pkg/navigation"
	"github.com/goliatone/go-contentkit/pkg/render"
	"github.com/goliatone/go-contentkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-contentkit/pkg/richtext"
	"github.com/goliatone/go-contentkit/pkg/slug"
	"github.com/goliatone/go-contentkit/pkg/store"
)

// TracerName is the instrumentation name of the default tracer.
const TracerName = "github.com/goliatone/go-contentkit"

// DefaultPageType is the content type walked by the lookup pre-pass.
const DefaultPageType = "page"

// Orchestrator coordinates full render passes. It applies sensible defaults
// (vanilla components, rich text, the embedded page layout, the default slug,
// pagination and navigation providers) while remaining open to dependency
// injection for every collaborator.
type Orchestrator struct {
	registry    *render.Registry
	renderFuncs map[string]render.RenderFunc
	hooks       *hooks.Registry
	layout      content.LayoutFunc
	navigation  content.NavigationFunc
	slugs       content.SlugFunc
	pagination  content.PaginationFunc
	store       store.Store
	recorder    metrics.Recorder
	tracer      trace.Tracer
	logger      *slog.Logger
	baseURL     string
	pageType    string
	initErr     error
}

// New constructs an Orchestrator applying any provided options. Missing
// collaborators are initialised with the built-in implementations. A failure
// to build a default is reported by every Render call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{pageType: DefaultPageType}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Input is the data of one render pass.
type Input struct {
	// Collections are rendered in order, items in order within each.
	Collections     []content.Collection
	Navigations     []content.Navigation
	NavigationItems []content.NavigationItem
	Redirects       []content.Redirect
	// Serverless selects a per-request pass rendering the page that matches
	// the request path.
	Serverless *content.ServerlessData
	// Preview renders the first renderable item of Collections only.
	Preview bool
}

// Result is the output of one render pass. Static passes fill Pages;
// serverless and preview passes fill Single, which holds an empty-slug
// placeholder when nothing matched.
type Result struct {
	Pages  []content.Output
	Single *content.Output
	// ServerlessRoutes lists the slugs of pages that need per-request
	// rendering, such as paginated listings.
	ServerlessRoutes []string
	Redirects        []content.Redirect
}

// Render runs one pass over in.
func (o *Orchestrator) Render(ctx context.Context, in Input) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if o.initErr != nil {
		return Result{}, o.initErr
	}
	if o.logger != nil {
		ctx = logging.WithLogger(ctx, o.logger)
	}

	pass := passLabel(in)
	started := time.Now()
	ctx, span := o.tracer.Start(ctx, "contentkit.render", trace.WithAttributes(
		attribute.String("contentkit.pass", string(pass)),
	))
	defer span.End()

	result, err := o.run(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logging.FromContext(ctx).Error("orchestrator: render pass failed", logging.Error(err))
		return Result{}, err
	}

	elapsed := time.Since(started)
	pages := len(result.Pages)
	if result.Single != nil && result.Single.Slug != "" {
		pages = 1
	}
	o.recorder.ObservePassDuration(pass, elapsed)
	o.recorder.SetPages(pages)
	span.SetAttributes(attribute.Int("contentkit.pages", pages))
	logging.FromContext(ctx).Info("orchestrator: render pass complete",
		slog.String("pass", string(pass)),
		logging.Pages(pages),
		logging.DurationMS(float64(elapsed.Microseconds())/1000),
	)
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, in Input) (Result, error) {
	if err := o.do(ctx, hooks.Event{Name: hooks.RenderStart, Serverless: in.Serverless}); err != nil {
		return Result{}, err
	}

	s, err := o.prepare(ctx, in)
	if err != nil {
		return Result{}, err
	}
	registry, err := o.buildRegistry()
	if err != nil {
		return Result{}, err
	}
	s.renderer = render.NewRenderer(registry, o.hooks)

	single := in.Serverless != nil || in.Preview
	pages := make([]content.Output, 0)
	var routes []string
	rendered := make(map[string]string)

collections:
	for _, collection := range in.Collections {
		for _, item := range collection.Items {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			res, err := o.renderItem(ctx, s, collection.Type, item)
			if err != nil {
				return Result{}, err
			}
			if res.Page.Slug == "" {
				continue
			}
			pages = append(pages, res.Page)
			rendered[res.PageData.ID] = res.Page.Slug
			if res.ServerlessRequired {
				routes = append(routes, res.Page.Slug)
			}
			if single {
				break collections
			}
		}
	}

	result := Result{
		ServerlessRoutes: routes,
		Redirects:        resolveRedirects(s.redirects, rendered),
	}
	if single {
		result.Single = &content.Output{}
		if len(pages) > 0 {
			result.Single = &pages[0]
		}
	} else {
		result.Pages = pages
		if err := o.saveSnapshot(ctx, s, result); err != nil {
			return Result{}, err
		}
	}

	if err := o.do(ctx, hooks.Event{Name: hooks.RenderEnd, Pages: pages, Serverless: in.Serverless}); err != nil {
		return Result{}, err
	}
	return result, nil
}

func (o *Orchestrator) buildRegistry() (*render.Registry, error) {
	registry := o.registry.Merge(o.renderFuncs)
	if err := registry.Require(render.BuiltinTypes...); err != nil {
		return nil, fmt.Errorf("orchestrator: render functions: %w", err)
	}
	return registry, nil
}

func (o *Orchestrator) saveSnapshot(ctx context.Context, s *site, result Result) error {
	if o.store == nil {
		return nil
	}
	snapshot := store.Snapshot{
		Tables:          s.tables,
		Navigations:     s.navigations,
		NavigationItems: s.navigationItems,
		Redirects:       result.Redirects,
		Routes:          result.ServerlessRoutes,
	}
	if err := o.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("orchestrator: save snapshot: %w", err)
	}
	return nil
}

// do runs the lifecycle actions registered under event.Name.
func (o *Orchestrator) do(ctx context.Context, event hooks.Event) error {
	if err := o.hooks.Do(ctx, event); err != nil {
		return &render.PluginError{Kind: "action", Name: event.Name, Err: err}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		registry, err := defaultRegistry()
		if err != nil {
			o.initErr = err
			return
		}
		o.registry = registry
	}
	if o.hooks == nil {
		o.hooks = hooks.New()
	}
	if o.layout == nil {
		l, err := layout.New()
		if err != nil {
			o.initErr = fmt.Errorf("orchestrator: default layout: %w", err)
			return
		}
		o.layout = l.Render
	}
	if o.navigation == nil {
		o.navigation = navigation.New().Navigations
	}
	if o.pagination == nil {
		o.pagination = slug.Paginate
	}
	if o.recorder == nil {
		o.recorder = metrics.NoopRecorder{}
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(TracerName)
	}
}

// defaultRegistry holds the vanilla components and the rich-text renderer.
func defaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	if err := vanilla.Register(registry); err != nil {
		return nil, fmt.Errorf("orchestrator: default components: %w", err)
	}
	if err := registry.Register(richtext.New().Descriptor()); err != nil {
		return nil, fmt.Errorf("orchestrator: rich text: %w", err)
	}
	return registry, nil
}

func passLabel(in Input) metrics.PassLabel {
	switch {
	case in.Serverless != nil:
		return metrics.PassServerless
	case in.Preview:
		return metrics.PassPreview
	default:
		return metrics.PassStatic
	}
}
