package orchestrator

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-contentkit/internal/metrics"
	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/hooks"
	"github.com/goliatone/go-contentkit/pkg/render"
	"github.com/goliatone/go-contentkit/pkg/store"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRenderFunctions overlays user render functions over the defaults. An
// entry replaces the default of the same render type.
func WithRenderFunctions(funcs map[string]render.RenderFunc) Option {
	return func(o *Orchestrator) {
		if o.renderFuncs == nil {
			o.renderFuncs = make(map[string]render.RenderFunc, len(funcs))
		}
		for name, fn := range funcs {
			o.renderFuncs[name] = fn
		}
	}
}

// WithRegistry replaces the default render function registry (vanilla
// components plus rich text). The registry must still provide every built-in
// render type once WithRenderFunctions overrides are applied.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithHooks injects the filters and lifecycle actions run during a pass.
func WithHooks(registry *hooks.Registry) Option {
	return func(o *Orchestrator) {
		o.hooks = registry
	}
}

// WithLayout replaces the embedded page layout.
func WithLayout(fn content.LayoutFunc) Option {
	return func(o *Orchestrator) {
		o.layout = fn
	}
}

// WithNavigation replaces the default navigation provider.
func WithNavigation(fn content.NavigationFunc) Option {
	return func(o *Orchestrator) {
		o.navigation = fn
	}
}

// WithSlugs replaces the default slug resolver. The default resolves against
// the tables built by each pass.
func WithSlugs(fn content.SlugFunc) Option {
	return func(o *Orchestrator) {
		o.slugs = fn
	}
}

// WithPagination replaces the default pagination meta provider.
func WithPagination(fn content.PaginationFunc) Option {
	return func(o *Orchestrator) {
		o.pagination = fn
	}
}

// WithStore persists the lookup tables of static passes and supplies them to
// serverless passes.
func WithStore(s store.Store) Option {
	return func(o *Orchestrator) {
		o.store = s
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(o *Orchestrator) {
		if recorder != nil {
			o.recorder = recorder
		}
	}
}

// WithTracer sets the tracer used for pass and item spans. It defaults to the
// global tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *Orchestrator) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithLogger attaches a logger to every pass context.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithBaseURL sets the origin used for permalinks and canonical links.
func WithBaseURL(baseURL string) Option {
	return func(o *Orchestrator) {
		o.baseURL = baseURL
	}
}

// WithPageType sets the content type addressed through page parents and
// walked by the lookup pre-pass. It defaults to "page".
func WithPageType(pageType string) Option {
	return func(o *Orchestrator) {
		if pageType != "" {
			o.pageType = pageType
		}
	}
}
