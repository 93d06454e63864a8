package vanilla

import (
	"context"
	"strings"

	"github.com/goliatone/go-contentkit/pkg/render"
)

var containerTags = map[string]struct{}{
	"div": {}, "section": {}, "article": {}, "aside": {},
	"header": {}, "footer": {}, "main": {}, "nav": {},
}

// Container wraps its children in a block element. Props: tag (div, section,
// article, aside, header, footer, main or nav), id, classes.
func Container(_ context.Context, args render.Args) (render.Output, error) {
	tag := strings.ToLower(args.Args.String("tag"))
	if _, ok := containerTags[tag]; !ok {
		tag = "div"
	}
	start := "<" + tag + attr("class", classList("o-container", args.Args.String("classes"))) +
		attr("id", args.Args.String("id")) + ">"
	return render.Wrap(start, "</"+tag+">"), nil
}

// Column renders a grid column. Props: width (a number or a fraction such as
// "1/2"), classes. data-fraction is the column's share of the page: its own
// width multiplied by the width of every enclosing column.
func Column(_ context.Context, args render.Args) (render.Output, error) {
	width, hasWidth := args.Args.Float("width")
	if !hasWidth || width <= 0 {
		width = 1
	}
	fraction := width
	for _, parent := range args.Parents {
		if parent.RenderType != render.TypeColumn {
			continue
		}
		if w, ok := parent.Args.Float("width"); ok && w > 0 {
			fraction *= w
		}
	}

	var b strings.Builder
	b.WriteString("<div")
	b.WriteString(attr("class", classList("o-column", args.Args.String("classes"))))
	if hasWidth {
		b.WriteString(attr("data-width", formatFloat(width)))
	}
	b.WriteString(attr("data-fraction", formatFloat(fraction)))
	b.WriteString(attr("style", "--ck-column-fraction: "+formatFloat(fraction)))
	b.WriteString(">")
	return render.Wrap(b.String(), "</div>"), nil
}

// Form wraps fields in a form element. Props: id, action, method (default
// post), novalidate, classes.
func Form(_ context.Context, args render.Args) (render.Output, error) {
	method := strings.ToLower(args.Args.String("method"))
	if method != "get" {
		method = "post"
	}
	start := "<form" + attr("class", classList("o-form", args.Args.String("classes"))) +
		attr("id", args.Args.String("id")) +
		attr("action", args.Args.String("action")) +
		attr("method", method)
	if args.Args.Bool("novalidate") {
		start += " novalidate"
	}
	return render.Wrap(start+">", "</form>"), nil
}
