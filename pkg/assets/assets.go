// Package assets tracks the stylesheets and scripts a page needs while it is
// being rendered. A Tracker belongs to one item render and de-duplicates
// entries while keeping first-registration order.
package assets

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Script describes a JavaScript dependency emitted once per page.
type Script struct {
	Src    string
	Type   string
	Inline string
	Async  bool
	Defer  bool
	Module bool
	Footer bool
	Attrs  map[string]string
}

// Tracker collects page assets.
type Tracker struct {
	mu          sync.Mutex
	stylesheets []string
	inlineCSS   []string
	scripts     []Script
	seen        map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

// AddStylesheet registers a linked stylesheet.
func (t *Tracker) AddStylesheet(hrefs ...string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, href := range hrefs {
		href = strings.TrimSpace(href)
		if href == "" || !t.mark("css:"+href) {
			continue
		}
		t.stylesheets = append(t.stylesheets, href)
	}
}

// AddInlineCSS registers a CSS block embedded in the page head.
func (t *Tracker) AddInlineCSS(css string) {
	if t == nil {
		return
	}
	css = strings.TrimSpace(css)
	if css == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.mark("inline-css:" + css) {
		return
	}
	t.inlineCSS = append(t.inlineCSS, css)
}

// AddScript registers scripts. Scripts are keyed by src, or by their inline
// body when they have no src.
func (t *Tracker) AddScript(scripts ...Script) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, script := range scripts {
		if script.Src == "" && strings.TrimSpace(script.Inline) == "" {
			continue
		}
		if !t.mark(scriptKey(script)) {
			continue
		}
		t.scripts = append(t.scripts, cloneScript(script))
	}
}

// Stylesheets returns the linked stylesheets in registration order.
func (t *Tracker) Stylesheets() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.stylesheets)
}

// InlineCSS returns the embedded CSS blocks in registration order.
func (t *Tracker) InlineCSS() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.inlineCSS)
}

// Scripts returns the registered scripts in registration order.
func (t *Tracker) Scripts() []Script {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Script, len(t.scripts))
	for idx, script := range t.scripts {
		out[idx] = cloneScript(script)
	}
	return out
}

// Reset forgets everything registered so far.
func (t *Tracker) Reset() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stylesheets = nil
	t.inlineCSS = nil
	t.scripts = nil
	t.seen = make(map[string]struct{})
}

func (t *Tracker) mark(key string) bool {
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[key]; ok {
		return false
	}
	t.seen[key] = struct{}{}
	return true
}

func scriptKey(script Script) string {
	if script.Src != "" {
		return "src:" + script.Src
	}
	return "inline:" + script.Inline
}

func cloneScript(src Script) Script {
	out := src
	if len(src.Attrs) > 0 {
		out.Attrs = maps.Clone(src.Attrs)
	}
	return out
}
