package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/render"
	"github.com/goliatone/go-contentkit/pkg/slug"
	"github.com/goliatone/go-contentkit/pkg/store"
)

// site is the cross-item state of one pass. It is rebuilt for every pass and
// only read while items render.
type site struct {
	tables          slug.Tables
	navigations     []content.Navigation
	navigationItems map[string]content.NavigationItem
	redirects       []content.Redirect
	slugs           content.SlugFunc
	serverless      *content.ServerlessData
	renderer        *render.Renderer
}

// prepare builds the lookup tables. Serverless passes read them from the
// store; every other pass, or a serverless pass without a saved snapshot,
// walks the input once so ancestors resolve regardless of item order.
func (o *Orchestrator) prepare(ctx context.Context, in Input) (*site, error) {
	s := &site{serverless: in.Serverless}

	loaded := false
	if in.Serverless != nil && o.store != nil {
		snapshot, err := o.store.Load(ctx)
		switch {
		case err == nil:
			s.tables = snapshot.Tables
			s.navigations = snapshot.Navigations
			s.navigationItems = snapshot.NavigationItems
			s.redirects = snapshot.Redirects
			loaded = true
		case errors.Is(err, store.ErrSnapshotNotFound):
			logging.FromContext(ctx).Warn("orchestrator: no snapshot saved, walking input",
				logging.Path(in.Serverless.Path))
		default:
			return nil, fmt.Errorf("orchestrator: load snapshot: %w", err)
		}
	}

	if !loaded {
		s.tables = slug.NewTables()
		s.navigations = slices.Clone(in.Navigations)
		s.navigationItems = indexNavigationItems(in.NavigationItems)
		s.redirects = slices.Clone(in.Redirects)
		for _, collection := range in.Collections {
			for _, item := range collection.Items {
				if effectiveType(collection.Type, item) == o.pageType {
					s.tables.Add(item)
				}
				s.redirects = append(s.redirects, itemRedirects(item)...)
			}
		}
	}

	s.slugs = o.slugs
	if s.slugs == nil {
		s.slugs = slug.NewResolver(s.tables,
			slug.WithBaseURL(o.baseURL),
			slug.WithPageType(o.pageType),
		).Resolve
	}

	index := indexItems(in.Collections)
	if err := o.resolveLinks(ctx, s, index); err != nil {
		return nil, err
	}
	if in.Serverless != nil {
		if err := o.resolveRedirectTargets(ctx, s, index); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// located is an addressable item together with its effective content type.
type located struct {
	item        content.Item
	contentType string
}

func indexItems(collections []content.Collection) map[string]located {
	index := make(map[string]located)
	for _, collection := range collections {
		for _, item := range collection.Items {
			if item.ID == "" || item.Slug == "" {
				continue
			}
			index[item.ID] = located{item: item, contentType: effectiveType(collection.Type, item)}
		}
	}
	return index
}

func (s *site) slugOf(ctx context.Context, target located) (string, error) {
	addr, err := s.slugs(ctx, content.SlugArgs{Item: target.item, ContentType: target.contentType})
	if err != nil {
		return "", &render.PluginError{Kind: "slug", Name: target.item.ID, Err: err}
	}
	return addr.Slug, nil
}

// resolveLinks fills the Link of navigation entries that point at an item.
func (o *Orchestrator) resolveLinks(ctx context.Context, s *site, index map[string]located) error {
	var pending []string
	for id, entry := range s.navigationItems {
		if entry.ItemID != "" && entry.Link == "" {
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	items := maps.Clone(s.navigationItems)
	slices.Sort(pending)
	for _, id := range pending {
		entry := items[id]
		target, ok := index[entry.ItemID]
		if !ok {
			continue
		}
		link, err := s.slugOf(ctx, target)
		if err != nil {
			return err
		}
		entry.Link = link
		items[id] = entry
	}
	s.navigationItems = items
	return nil
}

// resolveRedirectTargets addresses item redirects up front. A serverless pass
// renders a single item, so redirects to any other item cannot take their
// target from the rendered pages.
func (o *Orchestrator) resolveRedirectTargets(ctx context.Context, s *site, index map[string]located) error {
	redirects := slices.Clone(s.redirects)
	for idx, redirect := range redirects {
		if redirect.To != "" || redirect.ItemID == "" {
			continue
		}
		target, ok := index[redirect.ItemID]
		if !ok {
			continue
		}
		to, err := s.slugOf(ctx, target)
		if err != nil {
			return err
		}
		redirects[idx].To = to
	}
	s.redirects = redirects
	return nil
}

func indexNavigationItems(entries []content.NavigationItem) map[string]content.NavigationItem {
	out := make(map[string]content.NavigationItem, len(entries))
	for _, entry := range entries {
		if entry.ID == "" {
			continue
		}
		out[entry.ID] = entry
	}
	return out
}

func itemRedirects(item content.Item) []content.Redirect {
	if item.ID == "" || len(item.Redirects) == 0 {
		return nil
	}
	out := make([]content.Redirect, 0, len(item.Redirects))
	for _, from := range item.Redirects {
		if from = strings.TrimSpace(from); from == "" {
			continue
		}
		out = append(out, content.Redirect{From: from, ItemID: item.ID, Status: http.StatusMovedPermanently})
	}
	return out
}

// resolveRedirects points item redirects at the slug their item rendered to.
// Redirects to items that were not rendered are dropped.
func resolveRedirects(redirects []content.Redirect, rendered map[string]string) []content.Redirect {
	out := make([]content.Redirect, 0, len(redirects))
	for _, redirect := range redirects {
		if redirect.To == "" && redirect.ItemID != "" {
			redirect.To = rendered[redirect.ItemID]
		}
		if redirect.From == "" || redirect.To == "" {
			continue
		}
		if redirect.Status == 0 {
			redirect.Status = http.StatusMovedPermanently
		}
		out = append(out, redirect)
	}
	return out
}

func effectiveType(collectionType string, item content.Item) string {
	if item.ContentType != "" {
		return item.ContentType
	}
	return collectionType
}
