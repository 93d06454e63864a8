package content

import (
	"context"

	"github.com/goliatone/go-contentkit/pkg/assets"
)

// LayoutArgs is everything the layout needs to wrap one rendered item.
type LayoutArgs struct {
	ID           string
	ContentType  string
	Slug         string
	Meta         Meta
	Navigations  map[string]string
	Content      string
	PageData     PageData
	PageContains []string
	PageHeadings []HeadingZone
	Serverless   *ServerlessData
	Stylesheets  []string
	Scripts      []assets.Script
}

// LayoutFunc wraps rendered content into the final page markup.
type LayoutFunc func(ctx context.Context, args LayoutArgs) (string, error)

// NavigationArgs is the input of a navigation provider.
type NavigationArgs struct {
	Navigations []Navigation
	Items       map[string]NavigationItem
	CurrentLink string
	CurrentType string
	Title       string
	Parents     []ParentLink
}

// NavigationFunc renders the navigation menus of a page keyed by location.
type NavigationFunc func(ctx context.Context, args NavigationArgs) (map[string]string, error)

// SlugArgs is the input of a slug resolver.
type SlugArgs struct {
	Item        Item
	ContentType string
}

// SlugResult is the computed address of an item.
type SlugResult struct {
	Slug      string
	Permalink string
	Parents   []ParentLink
}

// SlugFunc computes an item's slug, permalink and ancestor chain.
type SlugFunc func(ctx context.Context, args SlugArgs) (SlugResult, error)

// PaginationArgs is the input of a pagination meta provider.
type PaginationArgs struct {
	Slug       string
	Permalink  string
	Pagination Pagination
	Serverless *ServerlessData
}

// PaginationResult carries the prev/next/canonical links of a listing page.
type PaginationResult struct {
	Current   int
	Prev      string
	Next      string
	Canonical string
}

// PaginationFunc computes the pagination meta of a listing page.
type PaginationFunc func(ctx context.Context, args PaginationArgs) (PaginationResult, error)
