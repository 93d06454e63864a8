package node

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotObject is returned when a node is decoded from something other than
// an object.
var ErrNotObject = errors.New("node: expected an object")

// FromValue converts a decoded JSON/YAML value into a node. Values that are
// not objects yield nil, which every stage of the pipeline skips.
func FromValue(value any) *Node {
	if n, ok := value.(*Node); ok {
		return n
	}
	raw, ok := asMap(value)
	if !ok {
		return nil
	}

	n := &Node{}
	for key, v := range raw {
		switch key {
		case KeyRenderType:
			n.RenderType = scalarString(v)
		case KeyContentType:
			n.ContentType = scalarString(v)
		case KeyName:
			n.Name = scalarString(v)
		case KeyMetadata:
			n.Tags = tagsFromMetadata(v)
		case KeyContent:
			n.Content = ContentFromValue(v)
		default:
			if n.Props == nil {
				n.Props = make(Props, len(raw))
			}
			n.Props[key] = normalizeValue(v)
		}
	}
	return n
}

// ContentFromValue converts a decoded content value. Strings become text,
// sequences become lists; entries that are not objects are kept as nil.
func ContentFromValue(value any) Content {
	switch v := value.(type) {
	case nil:
		return Content{}
	case Content:
		return v
	case string:
		return Text(v)
	case []*Node:
		return List(v...)
	case []any:
		nodes := make([]*Node, len(v))
		for idx, item := range v {
			nodes[idx] = FromValue(item)
		}
		return List(nodes...)
	case []map[string]any:
		nodes := make([]*Node, len(v))
		for idx, item := range v {
			nodes[idx] = FromValue(item)
		}
		return List(nodes...)
	default:
		return Text(fmt.Sprint(v))
	}
}

// UnmarshalJSON decodes an authored node object.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("node: decode json: %w", err)
	}
	decoded := FromValue(raw)
	if decoded == nil {
		return ErrNotObject
	}
	*n = *decoded
	return nil
}

// UnmarshalYAML decodes an authored node object.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("node: decode yaml: %w", err)
	}
	decoded := FromValue(raw)
	if decoded == nil {
		return ErrNotObject
	}
	*n = *decoded
	return nil
}

// UnmarshalJSON decodes text or list content.
func (c *Content) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("node: decode content json: %w", err)
	}
	*c = ContentFromValue(raw)
	return nil
}

// UnmarshalYAML decodes text or list content.
func (c *Content) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("node: decode content yaml: %w", err)
	}
	*c = ContentFromValue(raw)
	return nil
}

func tagsFromMetadata(value any) []Tag {
	meta, ok := asMap(value)
	if !ok {
		return nil
	}
	list, ok := meta[KeyTags].([]any)
	if !ok {
		return nil
	}
	tags := make([]Tag, 0, len(list))
	for _, entry := range list {
		switch v := entry.(type) {
		case string:
			if id := strings.TrimSpace(v); id != "" {
				tags = append(tags, Tag{ID: id})
			}
		default:
			fields, ok := asMap(v)
			if !ok {
				continue
			}
			id := scalarString(fields["id"])
			if id == "" {
				continue
			}
			tags = append(tags, Tag{ID: id, Name: scalarString(fields["name"])})
		}
	}
	return tags
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case Props:
		return map[string]any(v), true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = item
		}
		return out, true
	default:
		return nil, false
	}
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case map[string]any, map[any]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
