// Package slug computes item addresses. The Resolver turns an item's own slug
// into a site path by prefixing its ancestors: page parents for pages and the
// archive page for every other content type. Paginate computes the links of
// paginated listing pages.
package slug

import (
	"context"
	"strings"

	"github.com/goliatone/go-contentkit/pkg/content"
)

// DefaultIndexSlug is the slug of the page rendered at "/".
const DefaultIndexSlug = "index"

const maxDepth = 32

type Option func(*Resolver)

// WithBaseURL sets the origin permalinks are built from.
func WithBaseURL(baseURL string) Option {
	return func(r *Resolver) {
		r.baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	}
}

// WithPageType sets the content type whose items are addressed through page
// parents. It defaults to "page".
func WithPageType(pageType string) Option {
	return func(r *Resolver) {
		if pageType != "" {
			r.pageType = pageType
		}
	}
}

// WithIndexSlug changes which page slug maps to "/".
func WithIndexSlug(index string) Option {
	return func(r *Resolver) {
		if index != "" {
			r.index = index
		}
	}
}

// Resolver computes slugs from pre-built Tables.
type Resolver struct {
	tables   Tables
	baseURL  string
	pageType string
	index    string
}

// NewResolver builds a resolver over tables.
func NewResolver(tables Tables, opts ...Option) *Resolver {
	r := &Resolver{tables: tables, pageType: "page", index: DefaultIndexSlug}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve implements content.SlugFunc.
func (r *Resolver) Resolve(_ context.Context, args content.SlugArgs) (content.SlugResult, error) {
	item := args.Item
	contentType := args.ContentType
	if contentType == "" {
		contentType = item.ContentType
	}

	var chain []Entry
	if contentType == r.pageType {
		chain = r.pageAncestors(item.Parent, item.ID)
	} else if archive, ok := r.tables.Archives[contentType]; ok && archive.ID != item.ID {
		chain = append(r.pageAncestors(archive.Parent, archive.ID), archive)
	}

	var segments []string
	parents := make([]content.ParentLink, 0, len(chain))
	for _, entry := range chain {
		segments = appendSegment(segments, entry.Slug, r.index)
		parents = append(parents, content.ParentLink{ID: entry.ID, Slug: Join(segments...), Title: entry.Title})
	}
	segments = appendSegment(segments, item.Slug, r.index)
	path := Join(segments...)

	return content.SlugResult{Slug: path, Permalink: r.baseURL + path, Parents: parents}, nil
}

// Permalink prefixes path with the base URL.
func (r *Resolver) Permalink(path string) string {
	return r.baseURL + path
}

// pageAncestors walks parent ids outermost first. Cycles and missing parents
// end the chain.
func (r *Resolver) pageAncestors(parentID, selfID string) []Entry {
	var chain []Entry
	seen := map[string]struct{}{selfID: {}}
	for id := parentID; id != "" && len(chain) < maxDepth; {
		if _, loop := seen[id]; loop {
			break
		}
		seen[id] = struct{}{}
		entry, ok := r.tables.Parents[id]
		if !ok {
			break
		}
		chain = append(chain, entry)
		id = entry.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func appendSegment(segments []string, slug, index string) []string {
	for _, part := range strings.Split(strings.Trim(slug, "/"), "/") {
		if part == "" || part == index {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// Join builds a rooted path with a trailing slash: Join("a", "b") is "/a/b/"
// and Join() is "/".
func Join(segments ...string) string {
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/") + "/"
}

// Normalize returns path rooted and with a trailing slash, without a query.
func Normalize(path string) string {
	path, _, _ = strings.Cut(strings.TrimSpace(path), "?")
	return Join(appendSegment(nil, path, "")...)
}

// Matches reports whether a request path addresses the item at slug, either
// directly or as one of its pages.
func Matches(path, slug string) bool {
	path = Normalize(path)
	slug = Normalize(slug)
	if path == slug {
		return true
	}
	rest, ok := strings.CutPrefix(path, slug+PageSegment+"/")
	if !ok {
		return false
	}
	_, ok = pageNumber(strings.TrimSuffix(rest, "/"))
	return ok
}
