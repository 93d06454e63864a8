package slug

import "github.com/goliatone/go-contentkit/pkg/content"

// Entry is the part of an item needed to address it from other items.
type Entry struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Parent string `json:"parent,omitempty"`
}

// Tables are the cross-item lookups built before rendering: Archives maps a
// content type to the page listing it, Parents maps a page id to its entry.
type Tables struct {
	Archives map[string]Entry `json:"archives"`
	Parents  map[string]Entry `json:"parents"`
}

// NewTables returns empty tables.
func NewTables() Tables {
	return Tables{Archives: map[string]Entry{}, Parents: map[string]Entry{}}
}

// Add records a page-type item. An item whose Archive names a content type
// becomes that type's archive page.
func (t *Tables) Add(item content.Item) {
	if item.ID == "" || item.Slug == "" {
		return
	}
	if t.Archives == nil {
		t.Archives = map[string]Entry{}
	}
	if t.Parents == nil {
		t.Parents = map[string]Entry{}
	}
	entry := Entry{ID: item.ID, Slug: item.Slug, Title: item.Title, Parent: item.Parent}
	t.Parents[item.ID] = entry
	if item.Archive != "" {
		t.Archives[item.Archive] = entry
	}
}
