// Package layout provides the default page layout: a pongo2 template that
// wraps rendered content with the page head, navigation menus and the
// collected stylesheets and scripts. An optional go-theme selection adds
// theme tokens as CSS variables and the theme stylesheet.
package layout

import (
	"context"
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contentkit/pkg/assets"
	"github.com/goliatone/go-contentkit/pkg/content"
	rendertemplate "github.com/goliatone/go-contentkit/pkg/render/template"
	"github.com/goliatone/go-contentkit/pkg/render/template/gotemplate"
)

// DefaultTemplate is the page template rendered when none is configured.
const DefaultTemplate = "page"

type Option func(*Layout)

// WithTemplateRenderer replaces the embedded template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(l *Layout) {
		if renderer != nil {
			l.templates = renderer
		}
	}
}

// WithTemplate selects the page template by name.
func WithTemplate(name string) Option {
	return func(l *Layout) {
		if name = strings.TrimSpace(name); name != "" {
			l.template = name
		}
	}
}

// WithThemeSelector resolves the page theme through a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(l *Layout) {
		l.selector = selector
		l.themeName = name
		l.themeVariant = variant
	}
}

// WithSiteName appends the site name to page titles.
func WithSiteName(name string) Option {
	return func(l *Layout) {
		l.siteName = strings.TrimSpace(name)
	}
}

// WithLang sets the document language. It defaults to "en".
func WithLang(lang string) Option {
	return func(l *Layout) {
		if lang = strings.TrimSpace(lang); lang != "" {
			l.lang = lang
		}
	}
}

// Layout renders whole pages. Its Render method satisfies content.LayoutFunc.
type Layout struct {
	templates    rendertemplate.TemplateRenderer
	template     string
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	siteName     string
	lang         string

	themeOnce sync.Once
	theme     *theme.RendererConfig
	themeErr  error
}

// New constructs a layout backed by the embedded page template.
func New(options ...Option) (*Layout, error) {
	l := &Layout{template: DefaultTemplate, lang: "en"}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	if l.templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("layout: configure template renderer: %w", err)
		}
		l.templates = engine
	}
	return l, nil
}

// Theme returns the resolved theme configuration, or nil without a selector.
func (l *Layout) Theme() (*theme.RendererConfig, error) {
	l.themeOnce.Do(func() {
		if l.selector == nil {
			return
		}
		selection, err := l.selector.Select(l.themeName, l.themeVariant)
		if err != nil {
			l.themeErr = fmt.Errorf("layout: select theme %q: %w", l.themeName, err)
			return
		}
		l.theme = rendererConfig(selection)
	})
	return l.theme, l.themeErr
}

// Render wraps args.Content into a complete HTML document.
func (l *Layout) Render(_ context.Context, args content.LayoutArgs) (string, error) {
	cfg, err := l.Theme()
	if err != nil {
		return "", err
	}

	stylesheets := args.Stylesheets
	themeData := map[string]any{}
	if cfg != nil {
		themeData["name"] = cfg.Theme
		themeData["variant"] = cfg.Variant
		themeData["style"] = cssVarsStyle(cfg.CSSVars)
		if href := cfg.AssetURL(StylesheetAsset); href != "" {
			stylesheets = append([]string{href}, stylesheets...)
		}
	}

	var head, footer []string
	for _, script := range args.Scripts {
		if script.Footer {
			footer = append(footer, scriptTag(script))
		} else {
			head = append(head, scriptTag(script))
		}
	}

	data := map[string]any{
		"lang":          l.lang,
		"title":         l.title(args),
		"meta":          args.Meta,
		"page":          args.PageData,
		"slug":          args.Slug,
		"content":       args.Content,
		"navigations":   args.Navigations,
		"headings":      args.PageHeadings,
		"stylesheets":   stylesheets,
		"headScripts":   head,
		"footerScripts": footer,
		"theme":         themeData,
		"serverless":    args.Serverless != nil,
		"bodyClass":     bodyClass(args),
	}
	out, err := l.templates.RenderTemplate(l.template, data)
	if err != nil {
		return "", fmt.Errorf("layout: render %q: %w", args.ID, err)
	}
	return out, nil
}

func (l *Layout) title(args content.LayoutArgs) string {
	title := args.Meta.Title
	if title == "" {
		title = args.PageData.Title
	}
	if l.siteName == "" || title == l.siteName {
		return title
	}
	if title == "" {
		return l.siteName
	}
	return title + " | " + l.siteName
}

func bodyClass(args content.LayoutArgs) string {
	classes := []string{"l-page"}
	if args.ContentType != "" {
		classes = append(classes, "l-page--"+args.ContentType)
	}
	for _, component := range args.PageContains {
		classes = append(classes, "has-"+component)
	}
	return strings.Join(classes, " ")
}

func scriptTag(script assets.Script) string {
	var b strings.Builder
	b.WriteString("<script")
	switch {
	case script.Module:
		b.WriteString(` type="module"`)
	case script.Type != "":
		b.WriteString(` type="` + html.EscapeString(script.Type) + `"`)
	}
	if script.Src != "" {
		b.WriteString(` src="` + html.EscapeString(script.Src) + `"`)
	}
	if script.Async {
		b.WriteString(" async")
	}
	if script.Defer {
		b.WriteString(" defer")
	}
	for _, key := range slices.Sorted(maps.Keys(script.Attrs)) {
		b.WriteString(" " + html.EscapeString(key) + `="` + html.EscapeString(script.Attrs[key]) + `"`)
	}
	b.WriteString(">")
	if script.Src == "" {
		b.WriteString(script.Inline)
	}
	b.WriteString("</script>")
	return b.String()
}
