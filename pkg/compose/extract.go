package compose

import "github.com/goliatone/go-contentkit/pkg/node"

// Extraction is the result of Extract.
type Extraction struct {
	// Content is the input list with every template replaced in place by a
	// templateBreak stand-in.
	Content []*node.Node
	// Templates holds deep copies of the extracted templates, appended to
	// the accumulator passed to Extract.
	Templates []*node.Node
}

// Extract scans one level of content and moves every node carrying the
// template marker into the templates accumulator, leaving a templateBreak
// marker at its position. Order is preserved. Non-list content yields an
// empty Content list.
func Extract(content node.Content, templates []*node.Node) Extraction {
	out := Extraction{Templates: templates}
	if out.Templates == nil {
		out.Templates = []*node.Node{}
	}
	if !content.IsList() {
		out.Content = []*node.Node{}
		return out
	}

	out.Content = make([]*node.Node, 0, len(content.Nodes))
	for _, entry := range content.Nodes {
		if node.TagExists(entry, node.TagTemplate) {
			out.Templates = append(out.Templates, node.Clone(entry))
			out.Content = append(out.Content, node.Break())
			continue
		}
		out.Content = append(out.Content, entry)
	}
	return out
}

// Expand runs Extract and Map over a template container's own content: the
// container's children are both the template source and, once extracted,
// the fill queue.
func Expand(content node.Content) node.Content {
	extracted := Extract(content, nil)
	return node.List(Map(extracted.Templates, extracted.Content)...)
}
