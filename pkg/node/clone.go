package node

// Clone returns a deep copy of n. Props values that are maps or slices are
// copied recursively so the copy never aliases the original.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		RenderType:  n.RenderType,
		ContentType: n.ContentType,
		Name:        n.Name,
		Props:       cloneProps(n.Props),
		Content:     cloneContent(n.Content),
	}
	if n.Tags != nil {
		out.Tags = make([]Tag, len(n.Tags))
		copy(out.Tags, n.Tags)
	}
	return out
}

// CloneAll deep copies every node of the slice, preserving nil entries.
func CloneAll(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for idx, n := range nodes {
		out[idx] = Clone(n)
	}
	return out
}

func cloneContent(c Content) Content {
	if !c.list {
		return Content{Text: c.Text}
	}
	nodes := CloneAll(c.Nodes)
	if nodes == nil {
		nodes = []*Node{}
	}
	return Content{Text: c.Text, Nodes: nodes, list: true}
}

func cloneProps(src Props) Props {
	if src == nil {
		return nil
	}
	out := make(Props, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Props:
		return cloneProps(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case *Node:
		return Clone(v)
	default:
		return v
	}
}
