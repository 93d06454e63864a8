// Package navigation renders navigation menus. Each menu becomes a nested
// list keyed by its layout location; the entry matching the current page is
// marked current and entries leading to it are marked as ancestors.
package navigation

import (
	"context"
	"html"
	"strings"

	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/slug"
)

const maxDepth = 8

type Option func(*Provider)

// WithClass changes the base class of rendered lists. It defaults to "c-nav".
func WithClass(class string) Option {
	return func(p *Provider) {
		if class = strings.TrimSpace(class); class != "" {
			p.class = class
		}
	}
}

// Provider is the default navigation provider.
type Provider struct {
	class string
}

// New constructs a provider.
func New(opts ...Option) *Provider {
	p := &Provider{class: "c-nav"}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Navigations implements content.NavigationFunc.
func (p *Provider) Navigations(_ context.Context, args content.NavigationArgs) (map[string]string, error) {
	out := make(map[string]string, len(args.Navigations))
	ancestors := make(map[string]struct{}, len(args.Parents))
	for _, parent := range args.Parents {
		ancestors[slug.Normalize(parent.Slug)] = struct{}{}
	}
	m := menu{
		class:     p.class,
		items:     args.Items,
		current:   normalizeLink(args.CurrentLink),
		ancestors: ancestors,
	}

	for _, nav := range args.Navigations {
		location := nav.Location
		if location == "" {
			location = nav.ID
		}
		if location == "" {
			continue
		}
		var b strings.Builder
		m.list(&b, nav.Items, location, 0)
		out[location] += b.String()
	}
	return out, nil
}

type menu struct {
	class     string
	items     map[string]content.NavigationItem
	current   string
	ancestors map[string]struct{}
}

func (m menu) list(b *strings.Builder, ids []string, location string, depth int) {
	if len(ids) == 0 || depth >= maxDepth {
		return
	}
	class := m.class
	if depth == 0 {
		class += " " + m.class + "--" + location
	} else {
		class = m.class + "__sub"
	}
	b.WriteString(`<ul class="` + html.EscapeString(class) + `">`)
	for _, id := range ids {
		item, ok := m.items[id]
		if !ok {
			continue
		}
		m.entry(b, item, location, depth)
	}
	b.WriteString("</ul>")
}

func (m menu) entry(b *strings.Builder, item content.NavigationItem, location string, depth int) {
	link := item.Link
	state := ""
	if !item.External && link != "" {
		normalized := normalizeLink(link)
		switch {
		case normalized == m.current:
			state = "is-current"
		case m.isAncestor(normalized):
			state = "is-ancestor"
		}
	}

	itemClass := m.class + "__item"
	if state != "" {
		itemClass += " " + state
	}
	b.WriteString(`<li class="` + html.EscapeString(itemClass) + `">`)
	if link == "" {
		b.WriteString(`<span class="` + m.class + `__label">` + html.EscapeString(item.Title) + `</span>`)
	} else {
		b.WriteString(`<a class="` + m.class + `__link" href="` + html.EscapeString(link) + `"`)
		if state == "is-current" {
			b.WriteString(` aria-current="page"`)
		}
		if item.External {
			b.WriteString(` target="_blank" rel="noopener noreferrer"`)
		}
		b.WriteString(">" + html.EscapeString(item.Title) + "</a>")
	}
	m.list(b, item.Children, location, depth+1)
	b.WriteString("</li>")
}

func (m menu) isAncestor(link string) bool {
	_, ok := m.ancestors[link]
	return ok && link != "/"
}

func normalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.Contains(link, "://") || strings.HasPrefix(link, "#") || strings.HasPrefix(link, "mailto:") {
		return link
	}
	return slug.Normalize(link)
}
