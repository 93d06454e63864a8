package node

import (
	"strconv"
	"strings"
)

// Marker tag identifiers understood by the template composition engine.
const (
	TagTemplate         = "template"
	TagTemplateSlot     = "templateSlot"
	TagTemplateRepeat   = "templateRepeat"
	TagTemplateOptional = "templateOptional"
	TagTemplateNamed    = "templateNamed"
	TagTemplateBreak    = "templateBreak"
)

// Reserved keys of an authored node object. Everything else lands in Props.
const (
	KeyRenderType  = "renderType"
	KeyContentType = "contentType"
	KeyName        = "name"
	KeyMetadata    = "metadata"
	KeyTags        = "tags"
	KeyContent     = "content"
	KeyParents     = "parents"
)

// Tag is a marker annotation stored under metadata.tags.
type Tag struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Props is the free-form property bag of a node. Render functions document
// the keys they read.
type Props map[string]any

// Node is one element of the content tree.
type Node struct {
	// RenderType selects the render function.
	RenderType string
	// ContentType selects higher level handling such as template containers.
	ContentType string
	// Name addresses named template slots.
	Name string
	// Tags holds the metadata.tags markers.
	Tags []Tag
	// Props carries every other authored key.
	Props Props
	// Content is either leaf text or an ordered list of children.
	Content Content
}

// Content holds either leaf text or an ordered sequence of child nodes. Only
// list content is ever walked as children.
type Content struct {
	Text  string
	Nodes []*Node
	list  bool
}

// Text builds leaf text content.
func Text(value string) Content {
	return Content{Text: value}
}

// List builds list content. A call without nodes yields an empty list, which
// is still distinct from absent or text content.
func List(nodes ...*Node) Content {
	if nodes == nil {
		nodes = []*Node{}
	}
	return Content{Nodes: nodes, list: true}
}

// IsList reports whether the content is an ordered sequence of children.
func (c Content) IsList() bool {
	return c.list
}

// IsZero reports whether no content was authored at all.
func (c Content) IsZero() bool {
	return !c.list && c.Text == ""
}

// Break returns the stand-in node the extractor leaves where a template was.
func Break() *Node {
	return &Node{Tags: []Tag{{ID: TagTemplateBreak, Name: ""}}}
}

// Args returns the argument bag handed to render functions and hooks: a copy
// of Props plus the typed attributes that were set. Content is never part of
// it.
func (n *Node) Args() Props {
	if n == nil {
		return Props{}
	}
	args := cloneProps(n.Props)
	if args == nil {
		args = Props{}
	}
	if n.RenderType != "" {
		args[KeyRenderType] = n.RenderType
	}
	if n.ContentType != "" {
		args[KeyContentType] = n.ContentType
	}
	if n.Name != "" {
		args[KeyName] = n.Name
	}
	return args
}

// String returns the trimmed string value stored under key. Numbers and
// booleans are formatted; anything else yields "".
func (p Props) String(key string) string {
	if p == nil {
		return ""
	}
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Bool interprets the value under key as a boolean flag.
func (p Props) Bool(key string) bool {
	if p == nil {
		return false
	}
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && parsed
	default:
		return false
	}
}

// Float returns the numeric value under key. Strings holding numbers or
// simple fractions ("1/2") are parsed.
func (p Props) Float(key string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	switch v := p[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return parseFraction(v)
	default:
		return 0, false
	}
}

// Map returns the nested property bag stored under key.
func (p Props) Map(key string) Props {
	if p == nil {
		return nil
	}
	switch v := p[key].(type) {
	case Props:
		return v
	case map[string]any:
		return Props(v)
	default:
		return nil
	}
}

// Without returns a shallow copy of p omitting the listed keys.
func (p Props) Without(keys ...string) Props {
	out := make(Props, len(p))
	for key, value := range p {
		out[key] = value
	}
	for _, key := range keys {
		delete(out, key)
	}
	return out
}

func parseFraction(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}
	if num, den, ok := strings.Cut(value, "/"); ok {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
