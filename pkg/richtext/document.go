package richtext

import (
	"html"
	"strings"

	"github.com/goliatone/go-contentkit/pkg/node"
)

// Structured document node types.
const (
	NodeDocument      = "document"
	NodeParagraph     = "paragraph"
	NodeText          = "text"
	NodeHyperlink     = "hyperlink"
	NodeUnorderedList = "unordered-list"
	NodeOrderedList   = "ordered-list"
	NodeListItem      = "list-item"
	NodeBlockquote    = "blockquote"
	NodeHR            = "hr"
	headingPrefix     = "heading-"
)

var markTags = map[string]string{
	"bold":          "strong",
	"italic":        "em",
	"underline":     "u",
	"code":          "code",
	"strikethrough": "s",
	"superscript":   "sup",
	"subscript":     "sub",
}

var blockTags = map[string]string{
	NodeParagraph:     "p",
	NodeUnorderedList: "ul",
	NodeOrderedList:   "ol",
	NodeListItem:      "li",
	NodeBlockquote:    "blockquote",
}

// documentHTML converts a structured document into HTML. Unknown node types
// render their children only.
func documentHTML(nodes []*node.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n)
	}
	return b.String()
}

func nodeType(n *node.Node) string {
	if t := n.Props.String("nodeType"); t != "" {
		return t
	}
	return n.RenderType
}

func writeNode(b *strings.Builder, n *node.Node) {
	if n == nil {
		return
	}
	kind := nodeType(n)
	switch {
	case kind == NodeText:
		writeText(b, n)
	case kind == NodeHR:
		b.WriteString("<hr>")
	case kind == NodeHyperlink:
		uri := n.Props.Map("data").String("uri")
		if uri == "" {
			uri = n.Props.String("uri")
		}
		b.WriteString(`<a href="` + html.EscapeString(uri) + `">`)
		writeChildren(b, n)
		b.WriteString("</a>")
	case strings.HasPrefix(kind, headingPrefix):
		level := strings.TrimPrefix(kind, headingPrefix)
		if len(level) != 1 || level[0] < '1' || level[0] > '6' {
			writeChildren(b, n)
			return
		}
		b.WriteString("<h" + level + ">")
		writeChildren(b, n)
		b.WriteString("</h" + level + ">")
	default:
		tag, ok := blockTags[kind]
		if !ok {
			writeChildren(b, n)
			return
		}
		b.WriteString("<" + tag + ">")
		writeChildren(b, n)
		b.WriteString("</" + tag + ">")
	}
}

func writeChildren(b *strings.Builder, n *node.Node) {
	if n.Content.IsList() {
		for _, child := range n.Content.Nodes {
			writeNode(b, child)
		}
		return
	}
	b.WriteString(html.EscapeString(n.Content.Text))
}

func writeText(b *strings.Builder, n *node.Node) {
	value := n.Props.String("value")
	if value == "" {
		value = n.Content.Text
	}
	marks := marksOf(n.Props["marks"])
	for _, mark := range marks {
		b.WriteString("<" + mark + ">")
	}
	b.WriteString(html.EscapeString(value))
	for idx := len(marks) - 1; idx >= 0; idx-- {
		b.WriteString("</" + marks[idx] + ">")
	}
}

// marksOf accepts marks as strings or as {type: "bold"} objects.
func marksOf(value any) []string {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	var tags []string
	for _, entry := range list {
		var name string
		switch v := entry.(type) {
		case string:
			name = v
		case map[string]any:
			name = node.Props(v).String("type")
		}
		if tag, ok := markTags[name]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
