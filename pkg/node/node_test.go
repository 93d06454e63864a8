package node_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contentkit/pkg/node"
)

func TestGetTag(t *testing.T) {
	n := &node.Node{Tags: []node.Tag{
		{ID: node.TagTemplate, Name: "first"},
		{ID: node.TagTemplate, Name: "second"},
		{ID: node.TagTemplateSlot},
	}}

	tag, ok := node.GetTag(n, node.TagTemplate)
	if !ok {
		t.Fatalf("expected template tag")
	}
	if tag.Name != "first" {
		t.Fatalf("expected first matching tag, got %q", tag.Name)
	}
	if !node.TagExists(n, node.TagTemplateSlot) {
		t.Fatalf("expected slot tag to exist")
	}
	if node.TagExists(n, node.TagTemplateRepeat) {
		t.Fatalf("unexpected repeat tag")
	}
	if node.TagExists(nil, node.TagTemplate) {
		t.Fatalf("nil node must not carry tags")
	}
	if node.TagExists(&node.Node{}, node.TagTemplate) {
		t.Fatalf("node without tags must not match")
	}
}

func TestFromValueSplitsReservedKeys(t *testing.T) {
	raw := map[string]any{
		"renderType":  "container",
		"contentType": "section",
		"name":        "hero",
		"tag":         "section",
		"metadata": map[string]any{
			"tags": []any{
				map[string]any{"id": "templateSlot", "name": "Slot"},
				"templateRepeat",
			},
		},
		"content": []any{
			map[string]any{"renderType": "test"},
			"not an object",
		},
	}

	n := node.FromValue(raw)
	if n == nil {
		t.Fatalf("expected node")
	}
	if n.RenderType != "container" || n.ContentType != "section" || n.Name != "hero" {
		t.Fatalf("unexpected typed attributes: %+v", n)
	}
	wantTags := []node.Tag{{ID: "templateSlot", Name: "Slot"}, {ID: "templateRepeat"}}
	if diff := cmp.Diff(wantTags, n.Tags); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(node.Props{"tag": "section"}, n.Props); diff != "" {
		t.Fatalf("props mismatch (-want +got):\n%s", diff)
	}
	if !n.Content.IsList() || len(n.Content.Nodes) != 2 {
		t.Fatalf("expected two list entries, got %+v", n.Content)
	}
	if n.Content.Nodes[0] == nil || n.Content.Nodes[0].RenderType != "test" {
		t.Fatalf("unexpected first child: %+v", n.Content.Nodes[0])
	}
	if n.Content.Nodes[1] != nil {
		t.Fatalf("non-object entry should decode to nil")
	}
}

func TestFromValueRejectsScalars(t *testing.T) {
	if node.FromValue("text") != nil {
		t.Fatalf("string must not decode to a node")
	}
	if node.FromValue(nil) != nil {
		t.Fatalf("nil must not decode to a node")
	}
}

func TestJSONAndYAMLDecodeIdentically(t *testing.T) {
	jsonDoc := []byte(`{"renderType":"column","width":"1/2","content":[{"renderType":"richText","content":"Hello"}]}`)
	yamlDoc := []byte("renderType: column\nwidth: 1/2\ncontent:\n  - renderType: richText\n    content: Hello\n")

	var fromJSON, fromYAML node.Node
	if err := json.Unmarshal(jsonDoc, &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if err := yaml.Unmarshal(yamlDoc, &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}

	if diff := cmp.Diff(fromJSON, fromYAML, cmp.AllowUnexported(node.Content{})); diff != "" {
		t.Fatalf("decoded trees differ (-json +yaml):\n%s", diff)
	}
	if got := fromJSON.Content.Nodes[0].Content.Text; got != "Hello" {
		t.Fatalf("expected leaf text, got %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := &node.Node{
		RenderType: "container",
		Tags:       []node.Tag{{ID: node.TagTemplate}},
		Props: node.Props{
			"classes": []any{"a", "b"},
			"style":   map[string]any{"gap": "1rem"},
		},
		Content: node.List(&node.Node{RenderType: "test"}),
	}

	copied := node.Clone(original)
	copied.Tags[0].ID = "changed"
	copied.Props["classes"].([]any)[0] = "z"
	copied.Props["style"].(map[string]any)["gap"] = "0"
	copied.Content.Nodes[0].RenderType = "other"

	if original.Tags[0].ID != node.TagTemplate {
		t.Fatalf("tags aliased")
	}
	if original.Props["classes"].([]any)[0] != "a" {
		t.Fatalf("slice props aliased")
	}
	if original.Props["style"].(map[string]any)["gap"] != "1rem" {
		t.Fatalf("map props aliased")
	}
	if original.Content.Nodes[0].RenderType != "test" {
		t.Fatalf("children aliased")
	}
}

func TestCloneKeepsEmptyList(t *testing.T) {
	copied := node.Clone(&node.Node{Content: node.List()})
	if !copied.Content.IsList() {
		t.Fatalf("empty list content must stay a list")
	}
	if copied.Content.Nodes == nil {
		t.Fatalf("expected non-nil empty slice")
	}
}

func TestArgsExcludesContent(t *testing.T) {
	n := &node.Node{
		RenderType: "field",
		Name:       "email",
		Props:      node.Props{"label": "Email"},
		Content:    node.Text("ignored"),
	}
	want := node.Props{"renderType": "field", "name": "email", "label": "Email"}
	if diff := cmp.Diff(want, n.Args()); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestPropsFloatParsesFractions(t *testing.T) {
	props := node.Props{"half": "1/2", "num": 0.25, "bad": "x/0"}
	if got, ok := props.Float("half"); !ok || got != 0.5 {
		t.Fatalf("expected 0.5, got %v (%v)", got, ok)
	}
	if got, ok := props.Float("num"); !ok || got != 0.25 {
		t.Fatalf("expected 0.25, got %v (%v)", got, ok)
	}
	if _, ok := props.Float("bad"); ok {
		t.Fatalf("division by zero must not parse")
	}
}
