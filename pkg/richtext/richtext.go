package richtext

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/render"
)

// Content formats of string rich text.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

var (
	policyOnce    sync.Once
	defaultPolicy *bluemonday.Policy
)

func ugcPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		defaultPolicy = bluemonday.UGCPolicy()
	})
	return defaultPolicy
}

// Option customises the rich-text renderer.
type Option func(*Renderer)

// WithHeadingLevels limits which heading levels receive ids and are
// collected. Levels are clamped to 1..6.
func WithHeadingLevels(minLevel, maxLevel int) Option {
	return func(r *Renderer) {
		r.minLevel = max(1, min(minLevel, 6))
		r.maxLevel = max(r.minLevel, min(maxLevel, 6))
	}
}

// WithPolicy replaces the bluemonday user-generated-content policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithMarkdown replaces the goldmark converter used for markdown content.
func WithMarkdown(md goldmark.Markdown) Option {
	return func(r *Renderer) {
		if md != nil {
			r.markdown = md
		}
	}
}

// Renderer renders richText nodes.
type Renderer struct {
	minLevel int
	maxLevel int
	policy   *bluemonday.Policy
	markdown goldmark.Markdown
}

// New constructs a rich-text renderer collecting h2 to h6 by default.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		minLevel: 2,
		maxLevel: 6,
		policy:   ugcPolicy(),
		markdown: goldmark.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Descriptor returns the registry entry for the richText render type.
func (r *Renderer) Descriptor() render.Descriptor {
	return render.Descriptor{Name: render.TypeRichText, Render: r.Render}
}

// Render implements render.RenderFunc. Recognised props are "format" (html
// or markdown, for string content) and "classes".
func (r *Renderer) Render(_ context.Context, args render.Args) (render.Output, error) {
	raw, err := r.toHTML(args)
	if err != nil {
		return render.Output{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return render.Output{}, nil
	}
	body, err := r.annotate(r.policy.Sanitize(raw), args.Headings)
	if err != nil {
		return render.Output{}, err
	}

	class := "o-rich-text"
	if extra := args.Args.String("classes"); extra != "" {
		class += " " + extra
	}
	return render.Markup(`<div class="` + html.EscapeString(class) + `">` + body + `</div>`), nil
}

func (r *Renderer) toHTML(args render.Args) (string, error) {
	if args.Content.IsList() {
		return documentHTML(args.Content.Nodes), nil
	}
	format := strings.ToLower(args.Args.String("format"))
	switch format {
	case "", FormatHTML:
		return args.Content.Text, nil
	case FormatMarkdown:
		var buf bytes.Buffer
		if err := r.markdown.Convert([]byte(args.Content.Text), &buf); err != nil {
			return "", fmt.Errorf("richtext: convert markdown: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("richtext: unsupported format %q", format)
	}
}

// annotate assigns ids to the headings of fragment and records them in zone.
func (r *Renderer) annotate(fragment string, zone *content.HeadingZone) (string, error) {
	bodyContext := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext)
	if err != nil {
		return "", fmt.Errorf("richtext: parse html: %w", err)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		r.walk(n, zone)
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("richtext: render html: %w", err)
		}
	}
	return buf.String(), nil
}

func (r *Renderer) walk(n *html.Node, zone *content.HeadingZone) {
	if level := headingLevel(n); level >= r.minLevel && level <= r.maxLevel {
		text := strings.TrimSpace(textOf(n))
		id := attr(n, "id")
		if id == "" {
			id = uniqueID(Slugify(text), zone)
			n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
		}
		zone.Add(content.Heading{ID: id, Text: text, Level: level})
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		r.walk(child, zone)
	}
}

func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	default:
		return 0
	}
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(textOf(child))
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
