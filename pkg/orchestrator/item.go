package orchestrator

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/metrics"
	"github.com/goliatone/go-contentkit/pkg/assets"
	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/hooks"
	"github.com/goliatone/go-contentkit/pkg/render"
	"github.com/goliatone/go-contentkit/pkg/slug"
)

// Skip reasons reported in logs and spans.
const (
	skipMissingAddress = "missing id or slug"
	skipPathMismatch   = "serverless path mismatch"
)

// itemResult is the outcome of one item. An empty Page.Slug means the item
// was skipped.
type itemResult struct {
	Page               content.Output
	PageData           content.PageData
	ServerlessRequired bool
}

func (o *Orchestrator) renderItem(ctx context.Context, s *site, collectionType string, item content.Item) (itemResult, error) {
	contentType := effectiveType(collectionType, item)
	item.ContentType = contentType

	ctx, span := o.tracer.Start(ctx, "contentkit.render_item", trace.WithAttributes(
		attribute.String("contentkit.item_id", item.ID),
		attribute.String("contentkit.content_type", contentType),
	))
	defer span.End()

	logger := logging.FromContext(ctx)
	started := time.Now()

	res, reason, err := o.buildItem(ctx, s, contentType, item)
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.recorder.IncItemResult(contentType, metrics.ResultFailed)
		return itemResult{}, err
	case reason != "":
		span.SetAttributes(attribute.String("contentkit.skip_reason", reason))
		o.recorder.IncItemResult(contentType, metrics.ResultSkipped)
		logger.Debug("orchestrator: item skipped",
			logging.ItemID(item.ID), logging.ContentType(contentType), logging.Reason(reason))
		return itemResult{}, nil
	}

	elapsed := time.Since(started)
	o.recorder.ObserveItemDuration(contentType, elapsed)
	o.recorder.IncItemResult(contentType, metrics.ResultRendered)
	span.SetAttributes(attribute.String("contentkit.slug", res.Page.Slug))
	logger.Debug("orchestrator: item rendered",
		logging.ItemID(item.ID),
		logging.Slug(res.Page.Slug),
		logging.DurationMS(float64(elapsed.Microseconds())/1000),
	)
	return res, nil
}

// buildItem renders one item. A non-empty reason reports a skipped item.
func (o *Orchestrator) buildItem(ctx context.Context, s *site, contentType string, item content.Item) (itemResult, string, error) {
	if !addressable(item) {
		return itemResult{}, skipMissingAddress, nil
	}
	item, err := o.hooks.ApplyItemData(ctx, item, contentType)
	if err != nil {
		return itemResult{}, "", &render.PluginError{Kind: "filter", Name: hooks.RenderItemData, Err: err}
	}
	if !addressable(item) {
		return itemResult{}, skipMissingAddress, nil
	}

	addr, err := s.slugs(ctx, content.SlugArgs{Item: item, ContentType: contentType})
	if err != nil {
		return itemResult{}, "", &render.PluginError{Kind: "slug", Name: item.ID, Err: err}
	}
	if s.serverless != nil && !slug.Matches(s.serverless.Path, addr.Slug) {
		return itemResult{}, skipPathMismatch, nil
	}

	meta := itemMeta(item, addr.Permalink)
	page := content.PageData{
		ID:          item.ID,
		Slug:        addr.Slug,
		Permalink:   addr.Permalink,
		Title:       item.Title,
		ContentType: contentType,
		Parents:     addr.Parents,
		Fields:      item.Fields,
	}
	if page.Title == "" {
		page.Title = meta.Title
	}

	serverlessRequired := false
	if item.Pagination != nil {
		links, err := o.pagination(ctx, content.PaginationArgs{
			Slug:       addr.Slug,
			Permalink:  addr.Permalink,
			Pagination: *item.Pagination,
			Serverless: s.serverless,
		})
		if err != nil {
			return itemResult{}, "", &render.PluginError{Kind: "pagination", Name: item.ID, Err: err}
		}
		meta.Prev, meta.Next = links.Prev, links.Next
		if links.Canonical != "" {
			meta.Canonical = links.Canonical
		}
		page.Pagination = &content.Pagination{Current: links.Current, Total: item.Pagination.Total}
		serverlessRequired = true
	}
	page.Meta = meta

	if err := o.do(ctx, hooks.Event{
		Name:        hooks.RenderItemStart,
		ContentType: contentType,
		Item:        &item,
		Slug:        addr.Slug,
		Serverless:  s.serverless,
	}); err != nil {
		return itemResult{}, "", err
	}

	navs, err := o.navigation(ctx, content.NavigationArgs{
		Navigations: s.navigations,
		Items:       s.navigationItems,
		CurrentLink: addr.Slug,
		CurrentType: contentType,
		Title:       meta.Title,
		Parents:     addr.Parents,
	})
	if err != nil {
		return itemResult{}, "", &render.PluginError{Kind: "navigation", Name: item.ID, Err: err}
	}

	tracker := assets.NewTracker()
	state := render.NewState()
	body, err := s.renderer.Render(ctx, render.ContentArgs{
		Content:     item.Content,
		Page:        &page,
		Navigations: navs,
		Serverless:  s.serverless,
		Assets:      tracker,
	}, state)
	if err != nil {
		return itemResult{}, "", err
	}
	contains := state.PageContains()
	for _, renderType := range contains {
		o.recorder.IncComponent(renderType)
	}

	output, err := o.layout(ctx, content.LayoutArgs{
		ID:           item.ID,
		ContentType:  contentType,
		Slug:         addr.Slug,
		Meta:         meta,
		Navigations:  navs,
		Content:      body,
		PageData:     page,
		PageContains: contains,
		PageHeadings: state.Headings(),
		Serverless:   s.serverless,
		Stylesheets:  tracker.Stylesheets(),
		Scripts:      tracker.Scripts(),
	})
	if err != nil {
		return itemResult{}, "", &render.PluginError{Kind: "layout", Name: item.ID, Err: err}
	}

	output, err = o.hooks.ApplyItem(ctx, output, hooks.ItemArgs{
		ID:          item.ID,
		ContentType: contentType,
		Slug:        addr.Slug,
		PageData:    page,
		Serverless:  s.serverless,
	})
	if err != nil {
		return itemResult{}, "", &render.PluginError{Kind: "filter", Name: hooks.RenderItem, Err: err}
	}

	if err := o.do(ctx, hooks.Event{
		Name:        hooks.RenderItemEnd,
		ContentType: contentType,
		Item:        &item,
		Slug:        addr.Slug,
		Pages:       []content.Output{{Slug: addr.Slug, Output: output}},
		Serverless:  s.serverless,
	}); err != nil {
		return itemResult{}, "", err
	}

	return itemResult{
		Page:               content.Output{Slug: addr.Slug, Output: output},
		PageData:           page,
		ServerlessRequired: serverlessRequired,
	}, "", nil
}

func addressable(item content.Item) bool {
	return strings.TrimSpace(item.ID) != "" && strings.TrimSpace(item.Slug) != ""
}

// itemMeta fills the page meta from the item fields it leaves empty.
func itemMeta(item content.Item, permalink string) content.Meta {
	meta := item.Meta
	if meta.Title == "" {
		meta.Title = item.Title
	}
	if meta.Description == "" {
		meta.Description = item.Excerpt
	}
	if meta.Image == "" {
		meta.Image = item.Image
	}
	if meta.Canonical == "" {
		meta.Canonical = permalink
	}
	return meta
}
