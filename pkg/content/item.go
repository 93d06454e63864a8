package content

import (
	"github.com/goliatone/go-contentkit/pkg/node"
)

// Item is one renderable content entry (a page, a post, a product...).
type Item struct {
	ID          string         `json:"id" yaml:"id"`
	Slug        string         `json:"slug" yaml:"slug"`
	Title       string         `json:"title" yaml:"title"`
	ContentType string         `json:"contentType" yaml:"contentType"`
	Excerpt     string         `json:"excerpt" yaml:"excerpt"`
	Image       string         `json:"image" yaml:"image"`
	Meta        Meta           `json:"meta" yaml:"meta"`
	Content     node.Content   `json:"content" yaml:"content"`
	Parent      string         `json:"parent" yaml:"parent"`
	Archive     string         `json:"archive" yaml:"archive"`
	Redirects   []string       `json:"redirects" yaml:"redirects"`
	Pagination  *Pagination    `json:"pagination" yaml:"pagination"`
	Fields      map[string]any `json:"fields" yaml:"fields"`
}

// Collection groups the items of one content type. Collections are ordered so
// a render pass is deterministic.
type Collection struct {
	Type  string `json:"type" yaml:"type"`
	Items []Item `json:"items" yaml:"items"`
}

// Meta is the page meta assembled for the layout.
type Meta struct {
	Title       string `json:"title,omitempty" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
	Image       string `json:"image,omitempty" yaml:"image"`
	Canonical   string `json:"canonical,omitempty" yaml:"canonical"`
	Prev        string `json:"prev,omitempty" yaml:"prev"`
	Next        string `json:"next,omitempty" yaml:"next"`
	NoIndex     bool   `json:"noIndex,omitempty" yaml:"noIndex"`
}

// Pagination marks an item as a paginated listing rendered per request.
type Pagination struct {
	Current int `json:"current" yaml:"current"`
	Total   int `json:"total" yaml:"total"`
}

// Heading is one heading collected while rendering rich text.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// HeadingZone is the heading list of one top-level content zone. Rich-text
// render functions append to it.
type HeadingZone struct {
	Items []Heading `json:"items"`
}

// Add appends a heading to the zone.
func (z *HeadingZone) Add(heading Heading) {
	if z == nil {
		return
	}
	z.Items = append(z.Items, heading)
}

// ParentLink is one ancestor in an item's slug chain.
type ParentLink struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// PageData is the per-item context handed to render functions and the layout.
type PageData struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Permalink   string         `json:"permalink"`
	Title       string         `json:"title"`
	ContentType string         `json:"contentType"`
	Meta        Meta           `json:"meta"`
	Parents     []ParentLink   `json:"parents,omitempty"`
	Pagination  *Pagination    `json:"pagination,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
}

// ServerlessData describes a per-request render.
type ServerlessData struct {
	Path  string              `json:"path"`
	Query map[string][]string `json:"query,omitempty"`
}

// Output is one rendered page.
type Output struct {
	Slug   string `json:"slug"`
	Output string `json:"output"`
}

// Redirect maps an old path to a rendered slug.
type Redirect struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	ItemID string `json:"itemId,omitempty" yaml:"itemId"`
	Status int    `json:"status,omitempty" yaml:"status"`
}
