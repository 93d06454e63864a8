package compose

import (
	"slices"

	"github.com/goliatone/go-contentkit/pkg/node"
)

// Map fills the template skeletons from the fill queue and returns the
// resulting list. Skeletons are mutated in place; callers must use the
// returned slice. A nil templates slice is returned unchanged.
//
// Per skeleton entry, in order: a templateBreak at the head of the queue is
// discarded (at most one); a trailing templateOptional entry with nothing left
// to fill it is dropped; a templateSlot is replaced wholesale by the next
// queue entry; otherwise a templateRepeat child is cloned so the number of
// repeats matches the entries left before the next break, and the entry's
// children are mapped recursively against the same queue.
//
// When a top-level skeleton carries templateNamed, queue entries that have a
// name are addressed by slot name instead of position. The last entry with a
// given name wins.
func Map(templates []*node.Node, content []*node.Node) []*node.Node {
	if templates == nil {
		return nil
	}
	f := newFill(templates, content)
	return f.mapTemplates(templates)
}

type fill struct {
	queue []*node.Node
	named map[string]*node.Node
}

func newFill(templates, content []*node.Node) *fill {
	f := &fill{}
	if !slices.ContainsFunc(templates, func(t *node.Node) bool {
		return node.TagExists(t, node.TagTemplateNamed)
	}) {
		f.queue = slices.Clone(content)
		return f
	}

	f.named = make(map[string]*node.Node)
	f.queue = make([]*node.Node, 0, len(content))
	for _, entry := range content {
		if entry != nil && entry.Name != "" && !node.TagExists(entry, node.TagTemplateBreak) {
			f.named[entry.Name] = entry
			continue
		}
		f.queue = append(f.queue, entry)
	}
	return f
}

func (f *fill) mapTemplates(templates []*node.Node) []*node.Node {
	lastIndex := len(templates) - 1
	prune := false

	for idx, t := range templates {
		if len(f.queue) > 0 && node.TagExists(f.queue[0], node.TagTemplateBreak) {
			f.shift()
		}

		if idx == lastIndex && node.TagExists(t, node.TagTemplateOptional) && f.exhaustedFor(t) {
			prune = true
			continue
		}

		if node.TagExists(t, node.TagTemplateSlot) {
			if replacement, ok := f.take(t); ok {
				templates[idx] = replacement
			}
			continue
		}

		if t == nil || !t.Content.IsList() {
			continue
		}
		f.expandRepeat(t)
		t.Content = node.List(f.mapTemplates(t.Content.Nodes)...)
	}

	if prune {
		templates = templates[:lastIndex]
	}
	return templates
}

// take returns the fill for a slot, or false to leave it unresolved.
func (f *fill) take(slot *node.Node) (*node.Node, bool) {
	if f.named != nil && slot.Name != "" {
		entry, ok := f.named[slot.Name]
		if !ok {
			return nil, false
		}
		return node.Clone(entry), true
	}
	if len(f.queue) == 0 {
		return nil, false
	}
	return f.shift(), true
}

func (f *fill) exhaustedFor(t *node.Node) bool {
	if f.named != nil && t.Name != "" && node.TagExists(t, node.TagTemplateSlot) {
		_, ok := f.named[t.Name]
		return !ok
	}
	return len(f.queue) == 0
}

func (f *fill) shift() *node.Node {
	head := f.queue[0]
	f.queue = f.queue[1:]
	return head
}

func (f *fill) expandRepeat(t *node.Node) {
	children := t.Content.Nodes
	repeatIndex := slices.IndexFunc(children, func(child *node.Node) bool {
		return node.TagExists(child, node.TagTemplateRepeat)
	})
	if repeatIndex < 0 {
		return
	}

	breakIndex := slices.IndexFunc(f.queue, func(entry *node.Node) bool {
		return node.TagExists(entry, node.TagTemplateBreak)
	})
	if breakIndex < 0 {
		breakIndex = len(f.queue)
	}

	extra := breakIndex - 1 - repeatIndex
	if extra <= 0 {
		return
	}
	clones := make([]*node.Node, extra)
	for idx := range clones {
		clones[idx] = node.Clone(children[repeatIndex])
	}
	t.Content = node.List(slices.Insert(children, repeatIndex+1, clones...)...)
}
