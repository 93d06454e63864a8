package render

import (
	"context"
	"slices"
	"strings"

	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/pkg/assets"
	"github.com/goliatone/go-contentkit/pkg/compose"
	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/hooks"
	"github.com/goliatone/go-contentkit/pkg/node"
)

// ContentArgs is the input of one render pass.
type ContentArgs struct {
	Content     node.Content
	Page        *content.PageData
	Navigations map[string]string
	Serverless  *content.ServerlessData
	// Parents seeds the ancestor chain; it is usually empty.
	Parents []ParentFrame
	// Depth is the nesting level of Content; top-level content is 0.
	Depth  int
	Assets *assets.Tracker
}

// Renderer renders content trees with a registry of render functions.
type Renderer struct {
	registry *Registry
	hooks    *hooks.Registry
}

// NewRenderer builds a renderer. Either argument may be nil.
func NewRenderer(registry *Registry, hookRegistry *hooks.Registry) *Renderer {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Renderer{registry: registry, hooks: hookRegistry}
}

// Registry returns the render functions the renderer dispatches to.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Render produces the markup of args.Content. Content that is not a list
// renders to the empty string. When state is nil a throwaway State is used.
func (r *Renderer) Render(ctx context.Context, args ContentArgs, state *State) (string, error) {
	if !args.Content.IsList() {
		return "", nil
	}
	if state == nil {
		state = NewState()
	}
	var out strings.Builder
	if err := r.renderList(ctx, args.Content.Nodes, args, state, &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

func (r *Renderer) renderList(ctx context.Context, nodes []*node.Node, args ContentArgs, state *State, out *strings.Builder) error {
	for _, entry := range nodes {
		if entry == nil {
			continue
		}
		if err := r.renderNode(ctx, node.Clone(entry), args, state, out); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderNode(ctx context.Context, n *node.Node, args ContentArgs, state *State, out *strings.Builder) error {
	if n.ContentType == ContentTypeTemplate {
		n.Content = compose.Expand(n.Content)
	}

	var children []*node.Node
	recurse := n.Content.IsList() && n.RenderType != TypeRichText
	if recurse {
		children = n.Content.Nodes
	}
	nodeArgs := n.Args()

	var output Output
	if desc, ok := r.registry.Get(n.RenderType); ok {
		fnArgs := Args{
			Args:         n.Args(),
			Content:      n.Content,
			Parents:      args.Parents,
			Page:         args.Page,
			PageContains: state.PageContains(),
			Navigations:  args.Navigations,
			Serverless:   args.Serverless,
			Children:     children,
			Assets:       args.Assets,
		}
		if n.RenderType == TypeRichText {
			fnArgs.Headings = state.zone()
		}
		result, err := desc.Render(ctx, fnArgs)
		if err != nil {
			return &PluginError{Kind: "render", Name: n.RenderType, Err: err}
		}
		output = result
		state.use(n.RenderType)
		args.Assets.AddStylesheet(desc.Stylesheets...)
		args.Assets.AddScript(desc.Scripts...)
	} else if n.RenderType != "" {
		logging.FromContext(ctx).Debug("render: no render function", logging.RenderType(n.RenderType))
	}

	hookArgs := hooks.ContentArgs{RenderType: n.RenderType, Args: nodeArgs}
	var err error
	if output.End == "" {
		if output.Start, err = r.applyFilter(ctx, hooks.RenderContent, output.Start, hookArgs); err != nil {
			return err
		}
	} else {
		if output.Start, err = r.applyFilter(ctx, hooks.RenderContentStart, output.Start, hookArgs); err != nil {
			return err
		}
		if output.End, err = r.applyFilter(ctx, hooks.RenderContentEnd, output.End, hookArgs); err != nil {
			return err
		}
	}

	out.WriteString(output.Start)
	if recurse {
		childArgs := args
		childArgs.Parents = append(slices.Clone(args.Parents), ParentFrame{RenderType: n.RenderType, Args: nodeArgs})
		childArgs.Depth = args.Depth + 1
		if err := r.renderList(ctx, children, childArgs, state, out); err != nil {
			return err
		}
	}
	out.WriteString(output.End)

	if n.RenderType == TypeContent && args.Depth == 0 {
		state.nextZone()
	}
	return nil
}

func (r *Renderer) applyFilter(ctx context.Context, name, output string, args hooks.ContentArgs) (string, error) {
	filtered, err := r.hooks.ApplyContent(ctx, name, output, args)
	if err != nil {
		return "", &PluginError{Kind: "filter", Name: name, Err: err}
	}
	return filtered, nil
}
