package render

import (
	"context"
	"fmt"

	"github.com/goliatone/go-contentkit/pkg/assets"
	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/node"
)

// Render types and content types the renderer treats specially.
const (
	TypeContent         = "content"
	TypeRichText        = "richText"
	ContentTypeTemplate = "contentTemplate"
)

// Render types of the built-in components.
const (
	TypeContainer = "container"
	TypeColumn    = "column"
	TypeForm      = "form"
	TypeField     = "field"
)

// BuiltinTypes lists the render types every pipeline is expected to provide.
var BuiltinTypes = []string{TypeContainer, TypeColumn, TypeForm, TypeField, TypeRichText}

// Output is what a render function produces for one node. When End is empty
// Start is treated as the complete markup of the node; otherwise the node's
// children are rendered between Start and End.
type Output struct {
	Start string
	End   string
}

// Markup returns an Output holding the complete markup of a node.
func Markup(markup string) Output {
	return Output{Start: markup}
}

// Wrap returns an Output that surrounds the node's children.
func Wrap(start, end string) Output {
	return Output{Start: start, End: end}
}

// ParentFrame records an ancestor of the node being rendered.
type ParentFrame struct {
	RenderType string
	Args       node.Props
}

// Args is the input of a render function.
type Args struct {
	// Args carries the node properties without its content.
	Args node.Props
	// Content is the node's raw content.
	Content node.Content
	// Parents lists the ancestors of the node, outermost first.
	Parents []ParentFrame
	// Page is the item currently being rendered.
	Page *content.PageData
	// PageContains lists the component types used so far on the page.
	PageContains []string
	// Navigations maps navigation locations to rendered menus.
	Navigations map[string]string
	// Serverless is set for per-request renders.
	Serverless *content.ServerlessData
	// Headings is the zone rich-text render functions append to. It is only
	// set for richText nodes.
	Headings *content.HeadingZone
	// Children are the nodes that will render between Start and End.
	Children []*node.Node
	// Assets collects the stylesheets and scripts the page needs.
	Assets *assets.Tracker
}

// RenderFunc renders one node.
type RenderFunc func(ctx context.Context, args Args) (Output, error)

// PluginError wraps a failure raised by a render function, a hook or a
// delegated collaborator.
type PluginError struct {
	// Kind is "render", "filter", "action", "layout", "navigation", "slug" or
	// "pagination".
	Kind string
	// Name is the render type or hook name.
	Name string
	Err  error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("render: %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}
