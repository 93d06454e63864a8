package compose_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contentkit/pkg/compose"
	"github.com/goliatone/go-contentkit/pkg/node"
)

func tagged(n *node.Node, ids ...string) *node.Node {
	for _, id := range ids {
		n.Tags = append(n.Tags, node.Tag{ID: id})
	}
	return n
}

func leaf(renderType, text string) *node.Node {
	return &node.Node{RenderType: renderType, Content: node.Text(text)}
}

func slot() *node.Node {
	return tagged(&node.Node{}, node.TagTemplateSlot)
}

// summary flattens a tree into "renderType:text" tokens for comparisons.
func summary(nodes []*node.Node) []string {
	var out []string
	for _, n := range nodes {
		if n == nil {
			out = append(out, "<nil>")
			continue
		}
		label := n.RenderType
		if node.TagExists(n, node.TagTemplateSlot) {
			label = "slot"
		}
		if node.TagExists(n, node.TagTemplateBreak) {
			label = "break"
		}
		if n.Content.IsList() {
			out = append(out, label+"[")
			out = append(out, summary(n.Content.Nodes)...)
			out = append(out, "]")
			continue
		}
		out = append(out, label+":"+n.Content.Text)
	}
	return out
}

func TestExtractReplacesTemplatesWithBreaks(t *testing.T) {
	template := tagged(&node.Node{RenderType: "container", Content: node.List(slot())}, node.TagTemplate)
	content := node.List(leaf("a", "1"), template, leaf("b", "2"))

	got := compose.Extract(content, nil)

	if diff := cmp.Diff([]string{"a:1", "break:", "b:2"}, summary(got.Content)); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
	if len(got.Templates) != 1 {
		t.Fatalf("expected one template, got %d", len(got.Templates))
	}
	if got.Templates[0] == template {
		t.Fatalf("template must be cloned, not moved")
	}
	got.Templates[0].RenderType = "changed"
	if template.RenderType != "container" {
		t.Fatalf("extracted template aliases the original")
	}
}

func TestExtractSharesAccumulator(t *testing.T) {
	existing := []*node.Node{leaf("prior", "")}
	template := tagged(leaf("t", ""), node.TagTemplate)

	got := compose.Extract(node.List(template), existing)

	if diff := cmp.Diff([]string{"prior:", "t:"}, summary(got.Templates)); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNonListContent(t *testing.T) {
	got := compose.Extract(node.Text("hello"), nil)
	if got.Content == nil || len(got.Content) != 0 {
		t.Fatalf("expected empty content list, got %#v", got.Content)
	}
	if got.Templates == nil || len(got.Templates) != 0 {
		t.Fatalf("expected empty templates list, got %#v", got.Templates)
	}
}

func TestMapSubstitutesSlotsPositionally(t *testing.T) {
	skeleton := &node.Node{RenderType: "container", Content: node.List(slot(), leaf("static", "x"), slot())}

	got := compose.Map([]*node.Node{skeleton}, []*node.Node{leaf("a", "1"), leaf("b", "2")})

	want := []string{"container[", "a:1", "static:x", "b:2", "]"}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestMapLeavesSlotUnresolvedWhenQueueEmpty(t *testing.T) {
	skeleton := &node.Node{RenderType: "container", Content: node.List(slot(), slot())}

	got := compose.Map([]*node.Node{skeleton}, []*node.Node{leaf("a", "1")})

	want := []string{"container[", "a:1", "slot:", "]"}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestMapSlotIsReplacedNotMerged(t *testing.T) {
	withChildren := slot()
	withChildren.Content = node.List(slot())

	got := compose.Map([]*node.Node{{RenderType: "wrap", Content: node.List(withChildren)}},
		[]*node.Node{leaf("a", "1"), leaf("b", "2")})

	want := []string{"wrap[", "a:1", "]"}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestMapExpandsRepeatToQueueLength(t *testing.T) {
	column := tagged(&node.Node{RenderType: "column", Content: node.List(slot())}, node.TagTemplateRepeat)
	skeleton := &node.Node{RenderType: "container", Content: node.List(column)}

	queue := []*node.Node{leaf("a", "1"), leaf("b", "2"), leaf("c", "3")}
	got := compose.Map([]*node.Node{skeleton}, queue)

	want := []string{
		"container[",
		"column[", "a:1", "]",
		"column[", "b:2", "]",
		"column[", "c:3", "]",
		"]",
	}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}

	cols := got[0].Content.Nodes
	if cols[0] == cols[1] || cols[0].Content.Nodes[0] == cols[1].Content.Nodes[0] {
		t.Fatalf("repeat clones must not alias")
	}
}

func TestMapRepeatAccountsForLeadingSlots(t *testing.T) {
	heading := slot()
	column := tagged(&node.Node{RenderType: "column", Content: node.List(slot())}, node.TagTemplateRepeat)
	skeleton := &node.Node{RenderType: "container", Content: node.List(heading, column)}

	got := compose.Map([]*node.Node{skeleton}, []*node.Node{leaf("h", "t"), leaf("a", "1"), leaf("b", "2")})

	want := []string{"container[", "h:t", "column[", "a:1", "]", "column[", "b:2", "]", "]"}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestMapRepeatStopsAtBreak(t *testing.T) {
	column := tagged(&node.Node{RenderType: "column", Content: node.List(slot())}, node.TagTemplateRepeat)
	first := &node.Node{RenderType: "grid", Content: node.List(column)}
	second := &node.Node{RenderType: "aside", Content: node.List(slot())}

	queue := []*node.Node{node.Break(), leaf("a", "1"), leaf("b", "2"), node.Break(), leaf("c", "3")}
	got := compose.Map([]*node.Node{first, second}, queue)

	want := []string{
		"grid[", "column[", "a:1", "]", "column[", "b:2", "]", "]",
		"aside[", "c:3", "]",
	}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestMapDiscardsSingleLeadingBreak(t *testing.T) {
	queue := []*node.Node{node.Break(), node.Break(), leaf("a", "1")}
	got := compose.Map([]*node.Node{slot(), slot()}, queue)

	// one break is consumed per entry: the second break fills the first
	// slot and renders nothing
	want := []string{"break:", "a:1"}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestMapPrunesTrailingOptional(t *testing.T) {
	optional := tagged(slot(), node.TagTemplateOptional)
	skeleton := &node.Node{RenderType: "container", Content: node.List(slot(), optional)}

	got := compose.Map([]*node.Node{skeleton}, []*node.Node{leaf("a", "1")})

	if n := len(got[0].Content.Nodes); n != 1 {
		t.Fatalf("expected optional slot to be pruned, got %d children", n)
	}
	want := []string{"container[", "a:1", "]"}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestMapKeepsOptionalWhenFilled(t *testing.T) {
	optional := tagged(slot(), node.TagTemplateOptional)
	skeleton := &node.Node{RenderType: "container", Content: node.List(slot(), optional)}

	got := compose.Map([]*node.Node{skeleton}, []*node.Node{leaf("a", "1"), leaf("b", "2")})

	want := []string{"container[", "a:1", "b:2", "]"}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestMapKeepsNonTrailingOptional(t *testing.T) {
	optional := tagged(slot(), node.TagTemplateOptional)
	skeleton := &node.Node{RenderType: "container", Content: node.List(optional, leaf("static", "x"))}

	got := compose.Map([]*node.Node{skeleton}, nil)

	want := []string{"container[", "slot:", "static:x", "]"}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestMapNamedSlotsLastDuplicateWins(t *testing.T) {
	named := func(name string) *node.Node {
		s := slot()
		s.Name = name
		return s
	}
	fillEntry := func(name, text string) *node.Node {
		n := leaf("text", text)
		n.Name = name
		return n
	}
	newSkeleton := func() *node.Node {
		return tagged(&node.Node{
			RenderType: "container",
			Content:    node.List(named("title"), named("body")),
		}, node.TagTemplateNamed)
	}
	want := []string{"container[", "text:Second title", "text:Body", "]"}

	orders := [][]*node.Node{
		{fillEntry("title", "First title"), fillEntry("body", "Body"), fillEntry("title", "Second title")},
		{fillEntry("body", "Body"), fillEntry("title", "First title"), fillEntry("title", "Second title")},
	}
	for _, queue := range orders {
		got := compose.Map([]*node.Node{newSkeleton()}, queue)
		if diff := cmp.Diff(want, summary(got)); diff != "" {
			t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestMapNamedSlotMissingStaysUnresolved(t *testing.T) {
	s := slot()
	s.Name = "missing"
	skeleton := tagged(&node.Node{RenderType: "wrap", Content: node.List(s)}, node.TagTemplateNamed)

	got := compose.Map([]*node.Node{skeleton}, []*node.Node{leaf("anon", "1")})

	want := []string{"wrap[", "slot:", "]"}
	if diff := cmp.Diff(want, summary(got)); diff != "" {
		t.Fatalf("mapped mismatch (-want +got):\n%s", diff)
	}
}

func TestMapNilTemplates(t *testing.T) {
	if got := compose.Map(nil, []*node.Node{leaf("a", "1")}); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
}

func TestExpandComposesExtractAndMap(t *testing.T) {
	template := tagged(&node.Node{
		RenderType: "container",
		Content: node.List(
			tagged(&node.Node{RenderType: "column", Content: node.List(slot())}, node.TagTemplateRepeat),
		),
	}, node.TagTemplate)

	expanded := compose.Expand(node.List(template, leaf("a", "1"), leaf("b", "2")))

	want := []string{"container[", "column[", "a:1", "]", "column[", "b:2", "]", "]"}
	if diff := cmp.Diff(want, summary(expanded.Nodes)); diff != "" {
		t.Fatalf("expanded mismatch (-want +got):\n%s", diff)
	}
}
