// Package hooks holds the filters and lifecycle actions the renderer calls
// while it works. Filters transform a value and return it; actions are
// notified and may only fail. Every hook runs in registration order and its
// error aborts the render pass.
package hooks

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-contentkit/pkg/content"
	"github.com/goliatone/go-contentkit/pkg/node"
)

// Filter names.
const (
	RenderContent      = "renderContent"
	RenderContentStart = "renderContentStart"
	RenderContentEnd   = "renderContentEnd"
	RenderItem         = "renderItem"
	RenderItemData     = "renderItemData"
)

// Action names.
const (
	RenderStart     = "renderStart"
	RenderEnd       = "renderEnd"
	RenderItemStart = "renderItemStart"
	RenderItemEnd   = "renderItemEnd"
)

// ContentArgs identifies the node whose output a content filter receives.
type ContentArgs struct {
	RenderType string
	Args       node.Props
}

// ItemArgs identifies the item whose page output an item filter receives.
type ItemArgs struct {
	ID          string
	ContentType string
	Slug        string
	PageData    content.PageData
	Serverless  *content.ServerlessData
}

// Event is passed to lifecycle actions. Item is set for item events; Pages is
// set for RenderEnd and RenderItemEnd.
type Event struct {
	Name        string
	ContentType string
	Item        *content.Item
	Slug        string
	Pages       []content.Output
	Serverless  *content.ServerlessData
}

// ContentFilter transforms node output.
type ContentFilter func(ctx context.Context, output string, args ContentArgs) (string, error)

// ItemFilter transforms one item's page output.
type ItemFilter func(ctx context.Context, output string, args ItemArgs) (string, error)

// ItemDataFilter transforms an item before it is rendered.
type ItemDataFilter func(ctx context.Context, item content.Item, contentType string) (content.Item, error)

// Action is a lifecycle callback.
type Action func(ctx context.Context, event Event) error

// Registry stores hooks by name. The zero value is not usable; use New.
type Registry struct {
	mu       sync.RWMutex
	content  map[string][]ContentFilter
	item     []ItemFilter
	itemData []ItemDataFilter
	actions  map[string][]Action
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		content: make(map[string][]ContentFilter),
		actions: make(map[string][]Action),
	}
}

// AddContentFilter registers a filter for RenderContent, RenderContentStart
// or RenderContentEnd.
func (r *Registry) AddContentFilter(name string, fn ContentFilter) error {
	if fn == nil {
		return fmt.Errorf("hooks: filter %q is nil", name)
	}
	switch name {
	case RenderContent, RenderContentStart, RenderContentEnd:
	default:
		return fmt.Errorf("hooks: %q is not a content filter", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.content[name] = append(r.content[name], fn)
	return nil
}

// AddItemFilter registers a RenderItem filter.
func (r *Registry) AddItemFilter(fn ItemFilter) error {
	if fn == nil {
		return fmt.Errorf("hooks: filter %q is nil", RenderItem)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.item = append(r.item, fn)
	return nil
}

// AddItemDataFilter registers a RenderItemData filter.
func (r *Registry) AddItemDataFilter(fn ItemDataFilter) error {
	if fn == nil {
		return fmt.Errorf("hooks: filter %q is nil", RenderItemData)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.itemData = append(r.itemData, fn)
	return nil
}

// AddAction registers a lifecycle action.
func (r *Registry) AddAction(name string, fn Action) error {
	if fn == nil {
		return fmt.Errorf("hooks: action %q is nil", name)
	}
	switch name {
	case RenderStart, RenderEnd, RenderItemStart, RenderItemEnd:
	default:
		return fmt.Errorf("hooks: %q is not a lifecycle action", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = append(r.actions[name], fn)
	return nil
}

// ApplyContent runs the named content filters over output.
func (r *Registry) ApplyContent(ctx context.Context, name, output string, args ContentArgs) (string, error) {
	if r == nil {
		return output, nil
	}
	r.mu.RLock()
	filters := r.content[name]
	r.mu.RUnlock()

	var err error
	for _, fn := range filters {
		output, err = fn(ctx, output, args)
		if err != nil {
			return "", err
		}
	}
	return output, nil
}

// ApplyItem runs the RenderItem filters over a page output.
func (r *Registry) ApplyItem(ctx context.Context, output string, args ItemArgs) (string, error) {
	if r == nil {
		return output, nil
	}
	r.mu.RLock()
	filters := r.item
	r.mu.RUnlock()

	var err error
	for _, fn := range filters {
		output, err = fn(ctx, output, args)
		if err != nil {
			return "", err
		}
	}
	return output, nil
}

// ApplyItemData runs the RenderItemData filters over an item.
func (r *Registry) ApplyItemData(ctx context.Context, item content.Item, contentType string) (content.Item, error) {
	if r == nil {
		return item, nil
	}
	r.mu.RLock()
	filters := r.itemData
	r.mu.RUnlock()

	var err error
	for _, fn := range filters {
		item, err = fn(ctx, item, contentType)
		if err != nil {
			return content.Item{}, err
		}
	}
	return item, nil
}

// Do runs every action registered under event.Name.
func (r *Registry) Do(ctx context.Context, event Event) error {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	actions := r.actions[event.Name]
	r.mu.RUnlock()

	for _, fn := range actions {
		if err := fn(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
